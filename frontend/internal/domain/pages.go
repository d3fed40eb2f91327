package frontend_domain

import "html/template"

// ActivitiesView is one complete render of the activity list and the
// activity selector.
type ActivitiesView struct {
	Cards         []ActivityCard
	Options       []SelectOption
	Failed        bool
	FailureNotice string
}

// ActivityCard fields typed template.HTML are already escaped.
type ActivityCard struct {
	Name            template.HTML
	Description     template.HTML
	Schedule        template.HTML
	SpotsLeft       int
	MaxParticipants int
	Participants    []ParticipantRow
}

// ParticipantRow carries the escaped email for display and the raw values
// for the removal control's data attributes and form fields, which
// html/template escapes for their own context.
type ParticipantRow struct {
	Display  template.HTML
	Activity string
	Email    string
}

type SelectOption struct {
	Value    string
	Label    string
	Selected bool
}

// SignupForm is what the signup form shows; it survives a failed attempt.
type SignupForm struct {
	Email    string
	Activity string
}

type IndexPageData struct {
	Activities *ActivitiesView
	Form       SignupForm
}

type ConfirmUnregisterPageData struct {
	Prompt   template.HTML
	Activity string
	Email    string
}
