package main

import (
	"context"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	sqstypes "github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"golang.org/x/time/rate"

	"proposal-analyzer/internal/analyses"
	"proposal-analyzer/internal/bootstrap"
	"proposal-analyzer/internal/queue"
	"proposal-analyzer/internal/scoring"
)

type fakeSQS struct {
	mu      sync.Mutex
	deleted []string
}

func (f *fakeSQS) ReceiveMessage(ctx context.Context, params *sqs.ReceiveMessageInput, optFns ...func(*sqs.Options)) (*sqs.ReceiveMessageOutput, error) {
	_ = ctx
	_ = params
	_ = optFns
	return &sqs.ReceiveMessageOutput{}, nil
}

func (f *fakeSQS) DeleteMessage(ctx context.Context, params *sqs.DeleteMessageInput, optFns ...func(*sqs.Options)) (*sqs.DeleteMessageOutput, error) {
	_ = ctx
	_ = optFns
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, aws.ToString(params.ReceiptHandle))
	return &sqs.DeleteMessageOutput{}, nil
}

type staticLLM struct{}

func (staticLLM) Analyze(ctx context.Context, prompt string) (string, error) {
	_ = ctx
	_ = prompt
	return `{"summary": "ok", "complexity_score": 5}`, nil
}

func (staticLLM) Complete(ctx context.Context, prompt string) (string, error) {
	_ = ctx
	_ = prompt
	return "ok", nil
}

type countingNotifier struct {
	mu    sync.Mutex
	calls int
}

func (n *countingNotifier) Notify(ctx context.Context, url string, payload any) bool {
	_ = ctx
	_ = url
	_ = payload
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls++
	return true
}

func testApp(t *testing.T, notifier analyses.Notifier) *bootstrap.App {
	t.Helper()
	engine, err := scoring.NewEngine()
	if err != nil {
		t.Fatalf("build engine: %v", err)
	}
	dispatcher := analyses.NewDispatcher(staticLLM{}, 3)
	dispatcher.Limiter = rate.NewLimiter(rate.Inf, 0)
	svc := analyses.NewService(dispatcher, nil, notifier, engine, 8000)
	return &bootstrap.App{AnalysisService: svc}
}

func encodeMessage(t *testing.T, msg queue.Message) string {
	t.Helper()
	body, err := queue.EncodeMessage(msg)
	if err != nil {
		t.Fatalf("encode message: %v", err)
	}
	return string(body)
}

func TestWorkerDeletesMessageAfterDelivery(t *testing.T) {
	client := &fakeSQS{}
	notifier := &countingNotifier{}
	app := testApp(t, notifier)

	body := encodeMessage(t, queue.Message{
		ProposalID: "prop-1",
		RequestID:  "req-1",
		WebhookURL: "https://example.com/hook",
		Documents: []queue.MessageDocument{
			{FileName: "plan.txt", StorageKey: "staging/prop-1/plan.txt", MimeType: "text/plain"},
		},
	})
	msg := sqstypes.Message{
		MessageId:     aws.String("m1"),
		ReceiptHandle: aws.String("r1"),
		Body:          aws.String(body),
		Attributes:    map[string]string{"ApproximateReceiveCount": "1"},
	}

	handleMessage(context.Background(), app, client, "queue", msg)

	if len(client.deleted) != 1 {
		t.Fatalf("expected delete, got %d", len(client.deleted))
	}
	if notifier.calls != 1 {
		t.Fatalf("expected one webhook delivery, got %d", notifier.calls)
	}
}

func TestWorkerDoesNotDeleteWithoutService(t *testing.T) {
	client := &fakeSQS{}
	app := &bootstrap.App{}

	body := encodeMessage(t, queue.Message{
		ProposalID: "prop-2",
		RequestID:  "req-2",
		WebhookURL: "https://example.com/hook",
		Documents: []queue.MessageDocument{
			{FileName: "plan.txt", StorageKey: "staging/prop-2/plan.txt"},
		},
	})
	msg := sqstypes.Message{
		MessageId:     aws.String("m2"),
		ReceiptHandle: aws.String("r2"),
		Body:          aws.String(body),
	}

	handleMessage(context.Background(), app, client, "queue", msg)

	if len(client.deleted) != 0 {
		t.Fatalf("expected no delete, got %d", len(client.deleted))
	}
}

func TestWorkerDeletesOnInvalidJSON(t *testing.T) {
	client := &fakeSQS{}
	app := testApp(t, &countingNotifier{})

	msg := sqstypes.Message{
		MessageId:     aws.String("m3"),
		ReceiptHandle: aws.String("r3"),
		Body:          aws.String("{bad-json"),
	}

	handleMessage(context.Background(), app, client, "queue", msg)

	if len(client.deleted) != 1 {
		t.Fatalf("expected delete, got %d", len(client.deleted))
	}
}

func TestWorkerDeletesOnEmptyBody(t *testing.T) {
	client := &fakeSQS{}
	app := testApp(t, &countingNotifier{})

	msg := sqstypes.Message{
		MessageId:     aws.String("m4"),
		ReceiptHandle: aws.String("r4"),
		Body:          aws.String("   "),
	}

	handleMessage(context.Background(), app, client, "queue", msg)

	if len(client.deleted) != 1 {
		t.Fatalf("expected delete, got %d", len(client.deleted))
	}
}

func TestWorkerDeletesOnMissingDocuments(t *testing.T) {
	client := &fakeSQS{}
	app := testApp(t, &countingNotifier{})

	body := encodeMessage(t, queue.Message{ProposalID: "prop-5", RequestID: "req-5"})
	msg := sqstypes.Message{
		MessageId:     aws.String("m5"),
		ReceiptHandle: aws.String("r5"),
		Body:          aws.String(body),
	}

	handleMessage(context.Background(), app, client, "queue", msg)

	if len(client.deleted) != 1 {
		t.Fatalf("expected delete, got %d", len(client.deleted))
	}
}
