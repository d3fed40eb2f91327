package handler

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/mergington/activities/frontend/internal/apiclient"
	"github.com/mergington/activities/frontend/internal/notifier"
	"github.com/mergington/activities/frontend/templates"
	"github.com/mergington/activities/shared/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const activitiesJSON = `{
	"Chess Club": {"description": "Learn strategies", "schedule": "Fridays, 3:30 PM", "max_participants": 2, "participants": ["a@x.com"]},
	"Art Club": {"description": "Paint & draw", "schedule": "Thursdays", "max_participants": 12, "participants": []}
}`

// fakeBackend stands in for the activities API.
type fakeBackend struct {
	mu         sync.Mutex
	list       string
	listStatus int
	fetches    int
	mutations  []*http.Request
	mutate     http.HandlerFunc
}

func (b *fakeBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if r.Method == http.MethodGet && r.URL.Path == "/activities" {
		b.fetches++
		if b.listStatus != 0 {
			w.WriteHeader(b.listStatus)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(b.list))
		return
	}

	b.mutations = append(b.mutations, r)
	if b.mutate == nil {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	b.mutate(w, r)
}

func (b *fakeBackend) fetchCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.fetches
}

func (b *fakeBackend) mutationCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.mutations)
}

func (b *fakeBackend) mutation(i int) *http.Request {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.mutations[i]
}

func respond(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}
}

func newTestHandler(t *testing.T, backend *fakeBackend) (*Handler, *httptest.Server) {
	t.Helper()
	logger.Silence()

	srv := httptest.NewServer(backend)
	t.Cleanup(srv.Close)

	tmpls, err := templates.Load(nil)
	require.NoError(t, err)

	n := notifier.New(time.Minute)
	t.Cleanup(n.Close)

	return New(tmpls, apiclient.New(srv.URL, time.Second), n, false), srv
}

func get(h http.HandlerFunc, target string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	h(w, req)
	return w
}

func post(h http.HandlerFunc, target string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	h(w, req)
	return w
}

func findCookie(w *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func currentMessage(t *testing.T, h *Handler) notifier.Message {
	t.Helper()
	msg, _, ok := h.Notifier.Current("")
	require.True(t, ok, "expected a visible message")
	return msg
}

func TestIndexRendersActivities(t *testing.T) {
	h, _ := newTestHandler(t, &fakeBackend{list: activitiesJSON})

	w := get(h.IndexGetHandler, "/")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()

	assert.Contains(t, body, "<h4>Chess Club</h4>")
	assert.Contains(t, body, "1 spots left")
	assert.Contains(t, body, "Current Participants (1/2):")
	assert.Contains(t, body, `data-activity="Chess Club"`)
	assert.Contains(t, body, `data-email="a@x.com"`)
	assert.Contains(t, body, "Paint &amp; draw")

	assert.Contains(t, body, "Current Participants (0/12):")
	assert.Contains(t, body, `<p class="no-participants">No participants yet. Be the first to sign up!</p>`)

	assert.Equal(t, 3, strings.Count(body, "<option"), "placeholder plus one option per activity")
	assert.Less(t, strings.Index(body, `<option value="Chess Club"`), strings.Index(body, `<option value="Art Club"`))
	assert.Contains(t, body, `<div id="message" class="hidden">`)
	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
}

func TestIndexEscapesActivityData(t *testing.T) {
	h, _ := newTestHandler(t, &fakeBackend{list: `{
		"<script>alert(1)</script>": {"description": "<img src=x>", "schedule": "Mon's", "max_participants": 1, "participants": ["<b>@x.com"]}
	}`})

	body := get(h.IndexGetHandler, "/").Body.String()

	assert.NotContains(t, body, "<script>")
	assert.NotContains(t, body, "<img")
	assert.NotContains(t, body, "<b>@")
	assert.Contains(t, body, "<h4>&lt;script&gt;alert(1)&lt;/script&gt;</h4>")
	assert.Contains(t, body, "<span>&lt;b&gt;@x.com</span>")
	assert.Contains(t, body, "Mon&#39;s")
}

func TestIndexFetchFailure(t *testing.T) {
	tests := []struct {
		name    string
		backend *fakeBackend
	}{
		{"server error", &fakeBackend{listStatus: http.StatusInternalServerError}},
		{"malformed body", &fakeBackend{list: `{"Chess Club": {"description": "d"}}`}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _ := newTestHandler(t, tt.backend)

			w := get(h.IndexGetHandler, "/")
			require.Equal(t, http.StatusOK, w.Code)
			body := w.Body.String()

			assert.Contains(t, body, "<p>Failed to load activities. Please try again later.</p>")
			assert.NotContains(t, body, "activity-card")
			assert.Equal(t, 1, strings.Count(body, "<option"), "only the placeholder option")
		})
	}

	t.Run("backend unreachable", func(t *testing.T) {
		h, srv := newTestHandler(t, &fakeBackend{list: activitiesJSON})
		srv.Close()

		body := get(h.IndexGetHandler, "/").Body.String()
		assert.Contains(t, body, "Failed to load activities. Please try again later.")
	})
}

func TestSignupSuccess(t *testing.T) {
	backend := &fakeBackend{list: activitiesJSON, mutate: respond(http.StatusOK, `{"message":"Signed up new@x.com for Art Club"}`)}
	h, _ := newTestHandler(t, backend)

	w := post(h.SignupPostHandler, "/signup", url.Values{"email": {"new@x.com"}, "activity": {"Art Club"}})

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))

	require.Equal(t, 1, backend.mutationCount())
	sent := backend.mutation(0)
	assert.Equal(t, http.MethodPost, sent.Method)
	assert.Equal(t, "/activities/Art Club/signup", sent.URL.Path)
	assert.Equal(t, "new@x.com", sent.URL.Query().Get("email"))

	assert.Equal(t, notifier.Message{Text: "Signed up new@x.com for Art Club", Kind: notifier.KindSuccess}, currentMessage(t, h))

	cleared := findCookie(w, signupFormCookie)
	require.NotNil(t, cleared, "form state must be reset")
	assert.Equal(t, -1, cleared.MaxAge)

	body := get(h.IndexGetHandler, "/").Body.String()
	assert.Contains(t, body, `class="success timed"`)
	assert.Contains(t, body, "Signed up new@x.com for Art Club")
}

func TestSignupRejectedKeepsForm(t *testing.T) {
	backend := &fakeBackend{list: activitiesJSON, mutate: respond(http.StatusBadRequest, `{"detail":"Student is already signed up"}`)}
	h, _ := newTestHandler(t, backend)

	w := post(h.SignupPostHandler, "/signup", url.Values{"email": {"new@x.com"}, "activity": {"Chess Club"}})
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, notifier.Message{Text: "Student is already signed up", Kind: notifier.KindError}, currentMessage(t, h))

	saved := findCookie(w, signupFormCookie)
	require.NotNil(t, saved)

	body := get(h.IndexGetHandler, "/", saved).Body.String()
	assert.Contains(t, body, `name="email" required placeholder="your-email@mergington.edu" value="new@x.com"`)
	assert.Contains(t, body, `<option value="Chess Club" selected>`)
	assert.Contains(t, body, `class="error timed"`)
}

func TestSignupFailureMessages(t *testing.T) {
	tests := []struct {
		name   string
		mutate http.HandlerFunc
		want   string
	}{
		{"detail", respond(http.StatusNotFound, `{"detail":"Activity not found"}`), "Activity not found"},
		{"no detail", respond(http.StatusBadRequest, `{}`), "An error occurred"},
		{"html error page", respond(http.StatusBadGateway, `<html>bad gateway</html>`), "An error occurred"},
		{"malformed success", respond(http.StatusOK, `not json`), "Failed to sign up. Please try again."},
		{"markup in detail", respond(http.StatusBadRequest, `{"detail":"<b>Activity</b> is full"}`), "<b>Activity</b> is full"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := &fakeBackend{list: activitiesJSON, mutate: tt.mutate}
			h, _ := newTestHandler(t, backend)

			w := post(h.SignupPostHandler, "/signup", url.Values{"email": {"a@x.com"}, "activity": {"Chess Club"}})

			assert.Equal(t, http.StatusSeeOther, w.Code)
			assert.Equal(t, notifier.Message{Text: tt.want, Kind: notifier.KindError}, currentMessage(t, h))
			assert.NotNil(t, findCookie(w, signupFormCookie))
			assert.Zero(t, backend.fetchCount(), "failures do not refresh the list")
		})
	}

	t.Run("detail is shown verbatim", func(t *testing.T) {
		h, _ := newTestHandler(t, &fakeBackend{list: activitiesJSON, mutate: respond(http.StatusBadRequest, `{"detail":"Email must look like <name>@mergington.edu"}`)})
		post(h.SignupPostHandler, "/signup", url.Values{"email": {"a@x.com"}, "activity": {"Chess Club"}})

		body := get(h.IndexGetHandler, "/").Body.String()
		assert.Contains(t, body, "Email must look like &lt;name&gt;@mergington.edu</div>")
		assert.NotContains(t, body, "<name>")
	})

	t.Run("backend unreachable", func(t *testing.T) {
		h, srv := newTestHandler(t, &fakeBackend{list: activitiesJSON})
		srv.Close()

		post(h.SignupPostHandler, "/signup", url.Values{"email": {"a@x.com"}, "activity": {"Chess Club"}})
		assert.Equal(t, notifier.Message{Text: "Failed to sign up. Please try again.", Kind: notifier.KindError}, currentMessage(t, h))
	})
}

func TestConfirmUnregister(t *testing.T) {
	backend := &fakeBackend{list: activitiesJSON}
	h, _ := newTestHandler(t, backend)

	w := get(h.ConfirmUnregisterGetHandler, "/unregister?"+url.Values{"activity": {"Chess Club"}, "email": {"<b>@x.com"}}.Encode())
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()

	assert.Contains(t, body, "Are you sure you want to unregister &lt;b&gt;@x.com from Chess Club?")
	assert.Contains(t, body, `<form id="unregister-form" method="post" action="/unregister">`)
	assert.Zero(t, backend.mutationCount(), "asking must not remove anyone")

	t.Run("missing parameters", func(t *testing.T) {
		w := get(h.ConfirmUnregisterGetHandler, "/unregister?activity=Chess+Club")
		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/", w.Header().Get("Location"))
	})
}

func TestUnregisterSuccessRefreshesBeforeMessage(t *testing.T) {
	backend := &fakeBackend{list: activitiesJSON, mutate: respond(http.StatusOK, `{"message":"Unregistered a@x.com from Chess Club"}`)}
	h, _ := newTestHandler(t, backend)

	w := post(h.UnregisterPostHandler, "/unregister", url.Values{"activity": {"Chess Club"}, "email": {"a@x.com"}})
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))

	require.Equal(t, 1, backend.mutationCount())
	sent := backend.mutation(0)
	assert.Equal(t, http.MethodDelete, sent.Method)
	assert.Equal(t, "/activities/Chess Club/unregister", sent.URL.Path)
	assert.Equal(t, "a@x.com", sent.URL.Query().Get("email"))

	before := backend.fetchCount()
	body := get(h.IndexGetHandler, "/").Body.String()
	assert.Equal(t, before+1, backend.fetchCount())
	assert.Contains(t, body, "Unregistered a@x.com from Chess Club")
	assert.Contains(t, body, `class="success timed"`)
}

func TestUnregisterFailureMessages(t *testing.T) {
	tests := []struct {
		name   string
		mutate http.HandlerFunc
		want   string
	}{
		{"detail", respond(http.StatusBadRequest, `{"detail":"Student is not registered for this activity"}`), "Student is not registered for this activity"},
		{"no detail", respond(http.StatusNotFound, `{}`), "Failed to unregister participant"},
		{"malformed success", respond(http.StatusOK, `{"msg":"ok"}`), "Failed to unregister participant. Please try again."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := &fakeBackend{list: activitiesJSON, mutate: tt.mutate}
			h, _ := newTestHandler(t, backend)

			w := post(h.UnregisterPostHandler, "/unregister", url.Values{"activity": {"Chess Club"}, "email": {"a@x.com"}})

			assert.Equal(t, http.StatusSeeOther, w.Code)
			assert.Equal(t, notifier.Message{Text: tt.want, Kind: notifier.KindError}, currentMessage(t, h))
			assert.Zero(t, backend.fetchCount())
		})
	}

	t.Run("backend unreachable", func(t *testing.T) {
		h, srv := newTestHandler(t, &fakeBackend{list: activitiesJSON})
		srv.Close()

		post(h.UnregisterPostHandler, "/unregister", url.Values{"activity": {"Chess Club"}, "email": {"a@x.com"}})
		assert.Equal(t, notifier.Message{Text: "Failed to unregister participant. Please try again.", Kind: notifier.KindError}, currentMessage(t, h))
	})

	t.Run("missing parameters", func(t *testing.T) {
		backend := &fakeBackend{list: activitiesJSON}
		h, _ := newTestHandler(t, backend)

		w := post(h.UnregisterPostHandler, "/unregister", url.Values{"activity": {"Chess Club"}})
		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Zero(t, backend.mutationCount())
	})
}

func TestLatestMessageWins(t *testing.T) {
	backend := &fakeBackend{list: activitiesJSON, mutate: respond(http.StatusBadRequest, `{"detail":"Activity is full"}`)}
	h, _ := newTestHandler(t, backend)

	post(h.SignupPostHandler, "/signup", url.Values{"email": {"a@x.com"}, "activity": {"Chess Club"}})
	backend.mu.Lock()
	backend.mutate = respond(http.StatusOK, `{"message":"Signed up b@x.com for Art Club"}`)
	backend.mu.Unlock()
	post(h.SignupPostHandler, "/signup", url.Values{"email": {"b@x.com"}, "activity": {"Art Club"}})

	assert.Equal(t, notifier.Message{Text: "Signed up b@x.com for Art Club", Kind: notifier.KindSuccess}, currentMessage(t, h))
}

func TestRateLimitedHandler(t *testing.T) {
	h, _ := newTestHandler(t, &fakeBackend{list: activitiesJSON})

	w := post(h.RateLimitedHandler, "/signup", nil)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, notifier.Message{Text: rateLimited, Kind: notifier.KindError}, currentMessage(t, h))
}

func TestHealthHandler(t *testing.T) {
	w := get(HealthHandler, "/health")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestReadSignupFormIgnoresGarbage(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: signupFormCookie, Value: "!!not-base64!!"})
	assert.Empty(t, readSignupForm(req))

	assert.Empty(t, readSignupForm(httptest.NewRequest(http.MethodGet, "/", nil)))
}
