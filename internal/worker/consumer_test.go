package worker

import (
	"context"
	"testing"

	"github.com/gemstone-shop/gemstone/internal/config"
	"github.com/gemstone-shop/gemstone/internal/queue"
	"github.com/gemstone-shop/gemstone/internal/service"

	"github.com/hibiken/asynq"
)

func TestHandleWelcomeEmailBadPayload(t *testing.T) {
	consumer := NewConsumer(service.NewEmailService(&config.EmailConfig{Enabled: false}))
	task := asynq.NewTask(queue.TaskWelcomeEmail, []byte("{not json"))
	if err := consumer.handleWelcomeEmail(context.Background(), task); err == nil {
		t.Fatal("malformed payload should fail the task")
	}
}

func TestHandleWelcomeEmailSkipsEmptyReceiver(t *testing.T) {
	consumer := NewConsumer(service.NewEmailService(&config.EmailConfig{Enabled: false}))
	task, err := queue.NewWelcomeEmailTask(queue.WelcomeEmailPayload{Email: "", FirstName: "Anna"})
	if err != nil {
		t.Fatalf("new task failed: %v", err)
	}
	if err := consumer.handleWelcomeEmail(context.Background(), task); err != nil {
		t.Fatalf("empty receiver should be skipped, got %v", err)
	}
}

func TestHandleWelcomeEmailDisabledMailIsNotRetried(t *testing.T) {
	consumer := NewConsumer(service.NewEmailService(&config.EmailConfig{Enabled: false}))
	task, err := queue.NewWelcomeEmailTask(queue.WelcomeEmailPayload{Email: "a@example.com", FirstName: "Anna"})
	if err != nil {
		t.Fatalf("new task failed: %v", err)
	}
	if err := consumer.handleWelcomeEmail(context.Background(), task); err != nil {
		t.Fatalf("disabled mail should not retry, got %v", err)
	}
}

func TestNewServiceRequiresEnabledQueue(t *testing.T) {
	consumer := NewConsumer(nil)
	if _, err := NewService(nil, consumer); err == nil {
		t.Fatal("nil config should be rejected")
	}
	if _, err := NewService(&config.QueueConfig{Enabled: false}, consumer); err == nil {
		t.Fatal("disabled queue should be rejected")
	}
	if _, err := NewService(&config.QueueConfig{Enabled: true}, nil); err == nil {
		t.Fatal("nil consumer should be rejected")
	}
}
