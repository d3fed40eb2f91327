// Package renderer turns the activity collection into the list and selector
// view models of the index page.
package renderer

import (
	"context"
	"errors"

	"github.com/mergington/activities/frontend/internal/apiclient"
	frontend_domain "github.com/mergington/activities/frontend/internal/domain"
	"github.com/mergington/activities/frontend/internal/sanitize"
	"github.com/mergington/activities/shared/api"
	"github.com/mergington/activities/shared/domain"
	"github.com/mergington/activities/shared/logger"
	"github.com/mergington/activities/shared/middleware/metrics"
)

const FailureNotice = "Failed to load activities. Please try again later."

type ActivityFetcher interface {
	GetActivities(ctx context.Context) (api.ActivityList, error)
}

type Renderer struct {
	api ActivityFetcher
}

func New(api ActivityFetcher) *Renderer {
	return &Renderer{api: api}
}

// Render fetches the activities and builds a fresh view. A failed fetch
// yields the failure notice and no selector options; it is logged, never
// returned.
func (r *Renderer) Render(ctx context.Context) *frontend_domain.ActivitiesView {
	activities, err := r.api.GetActivities(ctx)
	if err != nil {
		logger.Log.Error("error fetching activities", "error", err)
		metrics.RecordOperation("list", outcome(err))
		return &frontend_domain.ActivitiesView{Failed: true, FailureNotice: FailureNotice}
	}
	metrics.RecordOperation("list", metrics.OutcomeSuccess)

	view := &frontend_domain.ActivitiesView{
		Cards:   make([]frontend_domain.ActivityCard, 0, len(activities)),
		Options: make([]frontend_domain.SelectOption, 0, len(activities)),
	}
	for _, activity := range activities {
		view.Cards = append(view.Cards, card(activity))
		view.Options = append(view.Options, frontend_domain.SelectOption{Value: activity.Name, Label: activity.Name})
	}
	return view
}

func card(a domain.Activity) frontend_domain.ActivityCard {
	rows := make([]frontend_domain.ParticipantRow, 0, len(a.Participants))
	for _, email := range a.Participants {
		rows = append(rows, frontend_domain.ParticipantRow{
			Display:  sanitize.HTML(email),
			Activity: a.Name,
			Email:    email,
		})
	}
	return frontend_domain.ActivityCard{
		Name:            sanitize.HTML(a.Name),
		Description:     sanitize.HTML(a.Description),
		Schedule:        sanitize.HTML(a.Schedule),
		SpotsLeft:       a.SpotsLeft(),
		MaxParticipants: a.MaxParticipants,
		Participants:    rows,
	}
}

// SelectActivity marks the option matching name, if any.
func SelectActivity(options []frontend_domain.SelectOption, name string) {
	for i := range options {
		options[i].Selected = options[i].Value == name
	}
}

func outcome(err error) string {
	var apiErr *apiclient.APIError
	if errors.As(err, &apiErr) {
		return metrics.OutcomeRejected
	}
	return metrics.OutcomeUnavailable
}
