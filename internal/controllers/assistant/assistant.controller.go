package assistantController

import (
	"context"

	"fleetdesk/internal/errs"
	"fleetdesk/internal/services"
	"fleetdesk/pkg/logger"
)

type AssistantController struct {
	notification *services.NotificationService
	assistant    *services.AssistantService
	log          logger.Logger
}

type AssistantControllerInterface interface {
	Ask(ctx context.Context, question string) (*AskResponse, error)
}

type AskRequest struct {
	Question string `json:"question"`
}

type AskResponse struct {
	Answer string `json:"answer"`
}

func New(services services.Service) AssistantControllerInterface {
	return &AssistantController{
		notification: services.Notification,
		assistant:    services.Assistant,
		log:          logger.New("assistantController"),
	}
}

// Ask snapshots the fleet data and forwards the question to the assistant.
// Upstream failures come back as a degraded in-band answer, never an error.
func (c *AssistantController) Ask(ctx context.Context, question string) (*AskResponse, error) {
	log := c.log.Function("Ask")

	if question == "" {
		return nil, errs.Validation("question must not be empty")
	}

	snap, err := c.notification.Snapshot(ctx)
	if err != nil {
		return nil, log.Err("failed to load fleet snapshot", err)
	}

	answer, err := c.assistant.Answer(ctx, snap, question)
	if err != nil {
		return nil, err
	}

	return &AskResponse{Answer: answer}, nil
}
