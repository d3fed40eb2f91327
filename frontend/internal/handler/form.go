package handler

import (
	"encoding/base64"
	"net/http"
	"net/url"
	"time"

	frontend_domain "github.com/mergington/activities/frontend/internal/domain"
)

// signupFormCookie keeps the signup form values across the redirect that
// follows a failed attempt.
const (
	signupFormCookie = "signup_form"
	signupFormTTL    = time.Hour
)

func (h *Handler) saveSignupForm(w http.ResponseWriter, form frontend_domain.SignupForm) {
	values := url.Values{"email": {form.Email}, "activity": {form.Activity}}
	http.SetCookie(w, &http.Cookie{
		Name:     signupFormCookie,
		Value:    base64.RawURLEncoding.EncodeToString([]byte(values.Encode())),
		Path:     "/",
		HttpOnly: true,
		Secure:   h.SecureCookies,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(signupFormTTL.Seconds()),
	})
}

func (h *Handler) clearSignupForm(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     signupFormCookie,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   h.SecureCookies,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}

// readSignupForm returns the saved form, or an empty one when the cookie is
// missing or unreadable.
func readSignupForm(r *http.Request) frontend_domain.SignupForm {
	cookie, err := r.Cookie(signupFormCookie)
	if err != nil || cookie.Value == "" {
		return frontend_domain.SignupForm{}
	}
	raw, err := base64.RawURLEncoding.DecodeString(cookie.Value)
	if err != nil {
		return frontend_domain.SignupForm{}
	}
	values, err := url.ParseQuery(string(raw))
	if err != nil {
		return frontend_domain.SignupForm{}
	}
	return frontend_domain.SignupForm{Email: values.Get("email"), Activity: values.Get("activity")}
}
