package setup

import (
	"fmt"
	"html/template"

	"github.com/mergington/activities/frontend/internal/apiclient"
	"github.com/mergington/activities/frontend/internal/handler"
	"github.com/mergington/activities/frontend/internal/notifier"
	"github.com/mergington/activities/frontend/internal/session"
	"github.com/mergington/activities/frontend/templates"
	"github.com/mergington/activities/shared/config"
)

type Dependencies struct {
	Handler  *handler.Handler
	Sessions *session.Manager
	Notifier *notifier.Notifier
	Public   config.Public
}

func SetupDependencies(cfg *config.Config) (*Dependencies, error) {
	fe := cfg.Public.Frontend

	sessions, err := session.New(cfg.Private.SessionSecret, fe.SessionTTL, fe.SecureCookies)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize sessions: %w", err)
	}

	templates := mustLoadTemplates()
	apiClient := apiclient.New(fe.APIBaseURL, fe.APITimeout)
	n := notifier.New(fe.NotifierWindow)

	return &Dependencies{
		Handler:  handler.New(templates, apiClient, n, fe.SecureCookies),
		Sessions: sessions,
		Notifier: n,
		Public:   cfg.Public,
	}, nil
}

// Close stops the notifier's pending timers.
func (d *Dependencies) Close() {
	d.Notifier.Close()
}

func mustLoadTemplates() map[string]*template.Template {
	tmpls, err := templates.Load(template.FuncMap{})
	if err != nil {
		panic(fmt.Sprintf("failed to load templates: %v", err))
	}
	return tmpls
}
