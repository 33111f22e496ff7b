package health

import "time"

// Service encapsulates health-related checks.
type Service struct {
	LLMConfigured   bool
	CacheEnabled    bool
	QueueConfigured bool

	startedAt time.Time
}

// NewService constructs a new health service.
func NewService(llmConfigured, cacheEnabled, queueConfigured bool) *Service {
	return &Service{
		LLMConfigured:   llmConfigured,
		CacheEnabled:    cacheEnabled,
		QueueConfigured: queueConfigured,
		startedAt:       time.Now(),
	}
}

// Status reports component availability. The service is healthy as long as
// the inference client is configured; cache and queue are optional.
func (s *Service) Status() map[string]any {
	status := "healthy"
	if !s.LLMConfigured {
		status = "degraded"
	}
	return map[string]any{
		"status":         status,
		"llm_configured": s.LLMConfigured,
		"cache_enabled":  s.CacheEnabled,
		"queue_enabled":  s.QueueConfigured,
		"uptime_seconds": int(time.Since(s.startedAt).Seconds()),
	}
}
