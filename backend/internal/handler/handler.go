package handler

import (
	"context"

	"github.com/mergington/activities/backend/internal/service"
)

// HealthChecker reports whether the store can serve requests.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	activity    service.ActivityService
	health      HealthChecker
	frontendURL string
}

func New(activity service.ActivityService, health HealthChecker, frontendURL string) *Handler {
	return &Handler{activity: activity, health: health, frontendURL: frontendURL}
}
