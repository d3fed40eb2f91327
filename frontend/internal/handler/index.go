package handler

import (
	"net/http"

	frontend_domain "github.com/mergington/activities/frontend/internal/domain"
	"github.com/mergington/activities/frontend/internal/renderer"
)

// IndexGetHandler renders the activity list, the selector and the signup
// form, prefilled after a failed signup.
func (h *Handler) IndexGetHandler(w http.ResponseWriter, r *http.Request) {
	view := h.Renderer.Render(r.Context())
	form := readSignupForm(r)
	renderer.SelectActivity(view.Options, form.Activity)

	h.renderTemplate(w, r, "index.html", frontend_domain.IndexPageData{
		Activities: view,
		Form:       form,
	})
}
