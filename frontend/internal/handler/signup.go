package handler

import (
	"net/http"

	frontend_domain "github.com/mergington/activities/frontend/internal/domain"
	"github.com/mergington/activities/frontend/internal/notifier"
	"github.com/mergington/activities/shared/middleware/metrics"
)

func (h *Handler) SignupPostHandler(w http.ResponseWriter, r *http.Request) {
	form := frontend_domain.SignupForm{
		Email:    r.PostFormValue("email"),
		Activity: r.PostFormValue("activity"),
	}

	res, err := h.APIClient.Signup(r.Context(), form.Activity, form.Email)
	if err != nil {
		h.notifyFailure(r, "signup", err, signupFallback, signupUnavailable)
		h.saveSignupForm(w, form)
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	metrics.RecordOperation("signup", metrics.OutcomeSuccess)
	h.notify(r, res.Message, notifier.KindSuccess)
	h.clearSignupForm(w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
