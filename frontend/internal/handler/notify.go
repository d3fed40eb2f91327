package handler

import (
	"errors"
	"net/http"

	"github.com/mergington/activities/frontend/internal/apiclient"
	"github.com/mergington/activities/frontend/internal/notifier"
	"github.com/mergington/activities/frontend/internal/session"
	"github.com/mergington/activities/shared/logger"
	"github.com/mergington/activities/shared/middleware/metrics"
)

const (
	signupFallback        = "An error occurred"
	signupUnavailable     = "Failed to sign up. Please try again."
	unregisterFallback    = "Failed to unregister participant"
	unregisterUnavailable = "Failed to unregister participant. Please try again."
	rateLimited           = "Too many requests. Please try again later."
)

func (h *Handler) notify(r *http.Request, text string, kind notifier.Kind) {
	h.Notifier.Show(session.FromContext(r.Context()), text, kind)
}

// notifyFailure shows the server's detail for a rejected call, fallback when
// it sent none, and unavailable for transport or decoding failures.
func (h *Handler) notifyFailure(r *http.Request, operation string, err error, fallback, unavailable string) {
	var apiErr *apiclient.APIError
	if errors.As(err, &apiErr) {
		metrics.RecordOperation(operation, metrics.OutcomeRejected)
		text := apiErr.Detail
		if text == "" {
			text = fallback
		}
		h.notify(r, text, notifier.KindError)
		return
	}

	logger.Log.Error("activities API call failed", "operation", operation, "error", err)
	metrics.RecordOperation(operation, metrics.OutcomeUnavailable)
	h.notify(r, unavailable, notifier.KindError)
}

// RateLimitedHandler answers a throttled form post with an error message on
// the index page.
func (h *Handler) RateLimitedHandler(w http.ResponseWriter, r *http.Request) {
	h.notify(r, rateLimited, notifier.KindError)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
