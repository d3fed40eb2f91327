package handler

import (
	"bytes"
	"fmt"
	"html/template"
	"net/http"

	frontend_domain "github.com/mergington/activities/frontend/internal/domain"
	"github.com/mergington/activities/frontend/internal/middleware"
	"github.com/mergington/activities/frontend/internal/session"
	"github.com/mergington/activities/shared/logger"
)

// TemplateData wraps page-specific data with common template data.
// Templates access page data via .Data and common data via .Common.
type TemplateData struct {
	Data   any
	Common frontend_domain.CommonTemplateData
}

func (h *Handler) getTemplate(name string) (*template.Template, bool) {
	t, ok := h.Templates[name]
	return t, ok
}

func (h *Handler) renderTemplate(w http.ResponseWriter, r *http.Request, name string, data any) {
	tmpl, ok := h.getTemplate(name)
	if !ok {
		http.Error(w, fmt.Sprintf("Template %s not found", name), http.StatusInternalServerError)
		return
	}

	// common data is read after the page data is built, so a list that was
	// just re-fetched is on the page before the status message shows up
	wrapped := TemplateData{
		Data:   data,
		Common: h.initCommonTemplateData(r),
	}

	buf := new(bytes.Buffer)
	if err := tmpl.Execute(buf, wrapped); err != nil {
		logger.Log.Error("error executing template", "template", name, "error", err)
		http.Error(w, "Internal Server Error rendering template", http.StatusInternalServerError)
		return
	}

	// status messages are per visitor
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

func (h *Handler) initCommonTemplateData(r *http.Request) frontend_domain.CommonTemplateData {
	common := frontend_domain.CommonTemplateData{
		CSRFToken: middleware.GetCSRFTokenFromContext(r),
	}
	if msg, remaining, ok := h.Notifier.Current(session.FromContext(r.Context())); ok {
		common.Notice = &frontend_domain.Notice{
			Text:        msg.Text,
			Kind:        msg.Kind,
			HideAfterMs: remaining.Milliseconds(),
		}
	}
	return common
}
