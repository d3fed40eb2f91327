package apiclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/mergington/activities/shared/api"
)

// maxBodySize bounds what we read from the API.
const maxBodySize = 1 << 20

// GetActivities fetches the activity collection in the server's key order.
func (c *APIClient) GetActivities(ctx context.Context) (api.ActivityList, error) {
	resp, err := c.do(ctx, http.MethodGet, "/activities", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, apiError(resp)
	}

	var list api.ActivityList
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodySize)).Decode(&list); err != nil {
		return nil, fmt.Errorf("%w: activities: %v", ErrMalformedResponse, err)
	}
	return list, nil
}

// Signup registers email for activity.
func (c *APIClient) Signup(ctx context.Context, activity, email string) (api.MessageResponse, error) {
	return c.mutate(ctx, http.MethodPost, participantPath(activity, "signup", email))
}

// Unregister removes email from activity.
func (c *APIClient) Unregister(ctx context.Context, activity, email string) (api.MessageResponse, error) {
	return c.mutate(ctx, http.MethodDelete, participantPath(activity, "unregister", email))
}

// participantPath escapes the activity as a path segment and the email as a
// query value.
func participantPath(activity, action, email string) string {
	return "/activities/" + url.PathEscape(activity) + "/" + action + "?" + url.Values{"email": {email}}.Encode()
}

func (c *APIClient) mutate(ctx context.Context, method, path string) (api.MessageResponse, error) {
	var result api.MessageResponse

	resp, err := c.do(ctx, method, path, nil)
	if err != nil {
		return result, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return result, apiError(resp)
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodySize)).Decode(&result); err != nil {
		return result, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if err := api.Validate(result); err != nil {
		return result, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return result, nil
}

// apiError reads the {"detail": ...} body of a failed call. A body that is
// not JSON leaves Detail empty.
func apiError(resp *http.Response) *APIError {
	apiErr := &APIError{StatusCode: resp.StatusCode}
	var body api.ErrorResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodySize)).Decode(&body); err == nil {
		apiErr.Detail = body.Detail
	}
	return apiErr
}
