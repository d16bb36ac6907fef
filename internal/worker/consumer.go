package worker

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/gemstone-shop/gemstone/internal/logger"
	"github.com/gemstone-shop/gemstone/internal/queue"
	"github.com/gemstone-shop/gemstone/internal/service"

	"github.com/hibiken/asynq"
)

// Consumer handles queued tasks.
type Consumer struct {
	EmailService *service.EmailService
}

// NewConsumer creates a consumer.
func NewConsumer(emailService *service.EmailService) *Consumer {
	return &Consumer{EmailService: emailService}
}

// Register wires the task handlers into the mux.
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		return
	}
	mux.HandleFunc(queue.TaskWelcomeEmail, c.handleWelcomeEmail)
}

func (c *Consumer) handleWelcomeEmail(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		return nil
	}
	var payload queue.WelcomeEmailPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_welcome_email_unmarshal_failed", "error", err)
		return err
	}
	if payload.Email == "" {
		logger.Debugw("worker_welcome_email_skip_empty_receiver")
		return nil
	}
	if c.EmailService == nil {
		logger.Warnw("worker_welcome_email_skip_email_service_nil", "email", payload.Email)
		return nil
	}
	err := c.EmailService.SendWelcomeEmail(payload.Email, payload.FirstName)
	if err != nil {
		// Delivery is best-effort. Don't retry when mail is simply off.
		if errors.Is(err, service.ErrEmailDisabled) {
			logger.Debugw("worker_welcome_email_skip_disabled", "email", payload.Email)
			return nil
		}
		logger.Warnw("worker_welcome_email_send_failed", "email", payload.Email, "error", err)
		return err
	}
	logger.Infow("worker_welcome_email_sent", "email", payload.Email)
	return nil
}
