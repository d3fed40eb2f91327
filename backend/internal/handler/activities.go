package handler

import (
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/mergington/activities/shared/api"
	internal_errors "github.com/mergington/activities/shared/errors"
	"github.com/mergington/activities/shared/middleware/metrics"
	"github.com/mergington/activities/shared/utils"
)

func (h *Handler) GetActivities(w http.ResponseWriter, r *http.Request) {
	activities, err := h.activity.List(r.Context())
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, api.ActivityList(activities))
}

func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	activity, err := activityParam(r)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	msg, err := h.activity.Signup(r.Context(), activity, r.URL.Query().Get("email"))
	if err != nil {
		metrics.RecordOperation("signup", outcome(err))
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	metrics.RecordOperation("signup", metrics.OutcomeSuccess)
	utils.WriteJSON(w, http.StatusOK, api.MessageResponse{Message: msg})
}

func (h *Handler) Unregister(w http.ResponseWriter, r *http.Request) {
	activity, err := activityParam(r)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	msg, err := h.activity.Unregister(r.Context(), activity, r.URL.Query().Get("email"))
	if err != nil {
		metrics.RecordOperation("unregister", outcome(err))
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	metrics.RecordOperation("unregister", metrics.OutcomeSuccess)
	utils.WriteJSON(w, http.StatusOK, api.MessageResponse{Message: msg})
}

// Root sends browsers to the frontend.
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, h.frontendURL, http.StatusTemporaryRedirect)
}

// activityParam returns the decoded {activity} segment. chi matches on the
// raw path when the request carried escapes such as %2F, and then leaves
// them in the parameter.
func activityParam(r *http.Request) (string, error) {
	activity := chi.URLParam(r, "activity")
	if r.URL.RawPath == "" {
		return activity, nil
	}
	decoded, err := url.PathUnescape(activity)
	if err != nil {
		return "", internal_errors.BadRequest("Invalid activity name")
	}
	return decoded, nil
}

func outcome(err error) string {
	if internal_errors.IsClientError(err) {
		return metrics.OutcomeRejected
	}
	return metrics.OutcomeUnavailable
}
