package handler

import (
	"html/template"
	"net/http"

	frontend_domain "github.com/mergington/activities/frontend/internal/domain"
	"github.com/mergington/activities/frontend/internal/notifier"
	"github.com/mergington/activities/frontend/internal/sanitize"
	"github.com/mergington/activities/shared/middleware/metrics"
)

// ConfirmUnregisterGetHandler asks before removing a participant. Nothing is
// changed until the confirmation form is posted.
func (h *Handler) ConfirmUnregisterGetHandler(w http.ResponseWriter, r *http.Request) {
	activity := r.URL.Query().Get("activity")
	email := r.URL.Query().Get("email")
	if activity == "" || email == "" {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	prompt := "Are you sure you want to unregister " + sanitize.Escape(email) +
		" from " + sanitize.Escape(activity) + "?"

	h.renderTemplate(w, r, "confirm_unregister.html", frontend_domain.ConfirmUnregisterPageData{
		Prompt:   template.HTML(prompt),
		Activity: activity,
		Email:    email,
	})
}

// UnregisterPostHandler removes the participant. On success the redirect
// target fetches the list again before the message is shown.
func (h *Handler) UnregisterPostHandler(w http.ResponseWriter, r *http.Request) {
	activity := r.PostFormValue("activity")
	email := r.PostFormValue("email")
	if activity == "" || email == "" {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	res, err := h.APIClient.Unregister(r.Context(), activity, email)
	if err != nil {
		h.notifyFailure(r, "unregister", err, unregisterFallback, unregisterUnavailable)
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	metrics.RecordOperation("unregister", metrics.OutcomeSuccess)
	h.notify(r, res.Message, notifier.KindSuccess)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
