package frontend_domain

import "github.com/mergington/activities/frontend/internal/notifier"

// CommonTemplateData holds fields that are common to all page templates.
// Available in templates as .Common via the TemplateData wrapper.
type CommonTemplateData struct {
	CSRFToken string
	Notice    *Notice
}

// Notice is the visible status message of the current session.
type Notice struct {
	Text        string // shown verbatim, escaped by html/template
	Kind        notifier.Kind
	HideAfterMs int64 // remaining display time, for the CSS fade-out
}
