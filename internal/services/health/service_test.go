package health

import "testing"

func TestStatusHealthy(t *testing.T) {
	svc := NewService(true, true, false)

	got := svc.Status()
	if got["status"] != "healthy" {
		t.Fatalf("status = %v", got["status"])
	}
	if got["cache_enabled"] != true || got["queue_enabled"] != false {
		t.Fatalf("component flags wrong: %v", got)
	}
}

func TestStatusDegradedWithoutLLM(t *testing.T) {
	svc := NewService(false, false, false)

	if got := svc.Status(); got["status"] != "degraded" {
		t.Fatalf("status = %v", got["status"])
	}
}
