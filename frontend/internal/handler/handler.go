package handler

import (
	"context"
	"html/template"

	"github.com/mergington/activities/frontend/internal/notifier"
	"github.com/mergington/activities/frontend/internal/renderer"
	"github.com/mergington/activities/shared/api"
)

// ActivitiesAPI is the part of the API client the pages use.
type ActivitiesAPI interface {
	GetActivities(ctx context.Context) (api.ActivityList, error)
	Signup(ctx context.Context, activity, email string) (api.MessageResponse, error)
	Unregister(ctx context.Context, activity, email string) (api.MessageResponse, error)
}

type Handler struct {
	Templates     map[string]*template.Template
	APIClient     ActivitiesAPI
	Renderer      *renderer.Renderer
	Notifier      *notifier.Notifier
	SecureCookies bool
}

func New(templates map[string]*template.Template, apiClient ActivitiesAPI, n *notifier.Notifier, secureCookies bool) *Handler {
	return &Handler{
		Templates:     templates,
		APIClient:     apiClient,
		Renderer:      renderer.New(apiClient),
		Notifier:      n,
		SecureCookies: secureCookies,
	}
}
