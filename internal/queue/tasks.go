package queue

import (
	"encoding/json"

	"github.com/gemstone-shop/gemstone/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskWelcomeEmail greets a newly registered user.
	TaskWelcomeEmail = constants.TaskWelcomeEmail
)

// WelcomeEmailPayload is the welcome email task body.
type WelcomeEmailPayload struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
}

// NewWelcomeEmailTask builds a welcome email task.
func NewWelcomeEmailTask(payload WelcomeEmailPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskWelcomeEmail, data), nil
}
