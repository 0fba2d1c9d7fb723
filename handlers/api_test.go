package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"shiphaus-platform/handlers"
	"shiphaus-platform/middleware"
	"shiphaus-platform/models"
	"shiphaus-platform/services"
	"shiphaus-platform/store"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubResolver struct {
	user *services.SessionUser
	err  error
}

func (s *stubResolver) ResolveSession(string) (*services.SessionUser, error) {
	return s.user, s.err
}

// newTestApp wires the full route surface against a MemStore, with the
// identity provider stubbed out. Blob uploads get a nil client; upload
// tests only exercise the validation paths in front of it.
func newTestApp(resolver *stubResolver) (*fiber.App, *store.MemStore) {
	st := store.NewMemStore()

	app := fiber.New()
	admin := app.Group("/api/admin", middleware.AccessGate(resolver))

	handlers.SetupProjectRoutes(app, admin, services.NewProjectService(st), resolver)
	handlers.SetupSubmissionRoutes(app, admin, services.NewSubmissionService(st))
	handlers.SetupEventRoutes(app, admin, services.NewEventService(st))
	cli := services.NewCliService(st, "https://shiphaus.org")
	handlers.SetupCliRoutes(app, cli, nil, resolver)
	handlers.SetupUploadRoutes(app, nil, resolver)
	handlers.SetupLeadRoutes(app, admin, services.NewLeadService(st), cli)

	return app, st
}

func jsonReq(method, path string, body any) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func adminReq(method, path string, body any) *http.Request {
	req := jsonReq(method, path, body)
	req.Header.Set("Cookie", "authjs.session-token=admin")
	return req
}

func decode(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

var adminSession = &services.SessionUser{Email: "admin@shiphaus.org", Name: "Admin", IsAdmin: true}

func TestWebSubmitValidationError(t *testing.T) {
	app, st := newTestApp(&stubResolver{})

	resp, err := app.Test(jsonReq("POST", "/api/submit", fiber.Map{
		"title":       "ab",
		"description": "A tool that schedules weekend trips for friends",
		"builderName": "Jo Lee",
	}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body map[string]string
	decode(t, resp, &body)
	assert.Equal(t, "Title must be 3-100 characters.", body["error"])

	pending, err := st.PendingSubmissions()
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestSubmitApproveScenario(t *testing.T) {
	// Submit {title:"Weekend App", ...} with no chapter, then approve with
	// chapterId "nyc": project lands with chapterId nyc and builder uid
	// "jo-lee".
	app, _ := newTestApp(&stubResolver{user: adminSession})

	resp, err := app.Test(jsonReq("POST", "/api/submit", fiber.Map{
		"title":       "Weekend App",
		"description": "A tool that schedules weekend trips for friends",
		"deployedUrl": "https://example.com",
		"type":        "application",
		"builderName": "Jo Lee",
	}))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var submitted struct {
		Success bool   `json:"success"`
		ID      string `json:"id"`
	}
	decode(t, resp, &submitted)
	assert.True(t, submitted.Success)

	// The queue shows it pending.
	resp, err = app.Test(adminReq("GET", "/api/admin/submissions", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var pending []models.Submission
	decode(t, resp, &pending)
	require.Len(t, pending, 1)
	assert.Equal(t, models.SubmissionStatusPending, pending[0].Status)

	resp, err = app.Test(adminReq("PATCH", "/api/admin/submissions/"+submitted.ID, fiber.Map{
		"action":    "approve",
		"chapterId": "nyc",
	}))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var project models.Project
	decode(t, resp, &project)
	assert.Equal(t, "nyc", project.ChapterID)
	assert.Equal(t, "jo-lee", project.Builder.UID)
	assert.Equal(t, "Weekend App", project.Title)

	// Published and filterable by chapter.
	resp, err = app.Test(httptest.NewRequest("GET", "/api/projects?chapter=nyc", nil))
	require.NoError(t, err)
	var projects []models.Project
	decode(t, resp, &projects)
	require.Len(t, projects, 1)
	assert.Equal(t, project.ID, projects[0].ID)

	// Queue is empty again.
	resp, err = app.Test(adminReq("GET", "/api/admin/submissions", nil))
	require.NoError(t, err)
	decode(t, resp, &pending)
	assert.Empty(t, pending)
}

func TestRejectRemovesSubmission(t *testing.T) {
	app, st := newTestApp(&stubResolver{user: adminSession})

	require.NoError(t, st.CreateSubmission(&models.Submission{
		ID: "sub-1", Title: "Weekend App", Status: models.SubmissionStatusPending,
	}))

	resp, err := app.Test(adminReq("PATCH", "/api/admin/submissions/sub-1", fiber.Map{"action": "reject"}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	pending, err := st.PendingSubmissions()
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestAdminRoutesRequireAdmin(t *testing.T) {
	app, _ := newTestApp(&stubResolver{user: &services.SessionUser{Email: "jo@example.com"}})

	for _, path := range []string{
		"/api/admin/submissions",
		"/api/admin/projects",
		"/api/admin/events",
		"/api/admin/subscribers",
		"/api/admin/stats",
	} {
		req := httptest.NewRequest("GET", path, nil)
		req.Header.Set("Cookie", "authjs.session-token=abc")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, path)
	}
}

func TestCliTokenRequiresSession(t *testing.T) {
	app, _ := newTestApp(&stubResolver{})

	resp, err := app.Test(jsonReq("POST", "/api/cli/token", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	var body map[string]string
	decode(t, resp, &body)
	assert.Equal(t, "Sign in required.", body["error"])
}

func mintToken(t *testing.T, app *fiber.App) string {
	t.Helper()
	req := jsonReq("POST", "/api/cli/token", fiber.Map{"chapterId": "nyc"})
	req.Header.Set("Cookie", "authjs.session-token=jo")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var minted struct {
		Token     string `json:"token"`
		ExpiresAt string `json:"expiresAt"`
		Prompt    string `json:"prompt"`
	}
	decode(t, resp, &minted)
	require.NotEmpty(t, minted.Token)
	require.Contains(t, minted.Prompt, minted.Token)
	return minted.Token
}

func cliSubmitReq(token, ip string) *http.Request {
	req := jsonReq("POST", "/api/cli/submit", fiber.Map{
		"title":       "Weekend App",
		"description": "A tool that schedules weekend trips for friends",
		"deployedUrl": "https://example.com",
		"chapterId":   "nyc",
	})
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("X-Forwarded-For", ip)
	return req
}

func TestCliTokenIsSingleUse(t *testing.T) {
	app, _ := newTestApp(&stubResolver{user: &services.SessionUser{Email: "jo@example.com", Name: "Jo Lee"}})
	token := mintToken(t, app)

	resp, err := app.Test(cliSubmitReq(token, "1.1.1.1"))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result struct {
		Success bool           `json:"success"`
		Project models.Project `json:"project"`
		URL     string         `json:"url"`
	}
	decode(t, resp, &result)
	assert.True(t, result.Success)
	assert.Equal(t, "https://shiphaus.org/chapter/nyc", result.URL)
	assert.Equal(t, "jo-lee", result.Project.Builder.UID)

	// Same token again: 401, indistinguishable from a bad token.
	resp, err = app.Test(cliSubmitReq(token, "1.1.1.1"))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestCliSubmitRateLimit(t *testing.T) {
	app, _ := newTestApp(&stubResolver{user: &services.SessionUser{Email: "jo@example.com", Name: "Jo Lee"}})

	for i := 0; i < 3; i++ {
		resp, err := app.Test(cliSubmitReq(mintToken(t, app), "2.2.2.2"))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode, "submit %d", i+1)
	}

	resp, err := app.Test(cliSubmitReq(mintToken(t, app), "2.2.2.2"))
	require.NoError(t, err)
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)

	var body map[string]string
	decode(t, resp, &body)
	assert.Equal(t, "Too many submissions. Try again later.", body["error"])
}

func TestCliSubmitMissingToken(t *testing.T) {
	app, _ := newTestApp(&stubResolver{})

	resp, err := app.Test(jsonReq("POST", "/api/cli/submit", fiber.Map{"title": "Weekend App"}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	var body map[string]string
	decode(t, resp, &body)
	assert.Equal(t, "Missing token.", body["error"])
}

func TestCliUploadValidation(t *testing.T) {
	app, _ := newTestApp(&stubResolver{user: &services.SessionUser{Email: "jo@example.com", Name: "Jo Lee"}})
	token := mintToken(t, app)

	// No file part at all.
	req := httptest.NewRequest("POST", "/api/cli/upload", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Wrong content type.
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreatePart(textproto.MIMEHeader{
		"Content-Disposition": {`form-data; name="file"; filename="notes.txt"`},
		"Content-Type":        {"text/plain"},
	})
	require.NoError(t, err)
	_, err = io.WriteString(part, "not an image")
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req = httptest.NewRequest("POST", "/api/cli/upload", &buf)
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", w.FormDataContentType())
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body map[string]string
	decode(t, resp, &body)
	assert.Equal(t, "File must be JPEG, PNG, or WebP.", body["error"])
}

func TestProjectOwnerEdit(t *testing.T) {
	resolver := &stubResolver{user: &services.SessionUser{Email: "jo@example.com", Name: "Jo Lee"}}
	app, st := newTestApp(resolver)

	require.NoError(t, st.CreateProject(&models.Project{
		ID: "proj-1", Title: "Weekend App", ChapterID: "nyc", SubmittedBy: "jo@example.com",
	}))

	// Anonymous: 401.
	resp, err := app.Test(jsonReq("PATCH", "/api/projects/proj-1", fiber.Map{"title": "Renamed"}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// Owner: 200.
	req := jsonReq("PATCH", "/api/projects/proj-1", fiber.Map{"title": "Renamed"})
	req.Header.Set("Cookie", "authjs.session-token=jo")
	resp, err = app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var project models.Project
	decode(t, resp, &project)
	assert.Equal(t, "Renamed", project.Title)

	// Someone else: 403.
	resolver.user = &services.SessionUser{Email: "sam@example.com"}
	req = jsonReq("PATCH", "/api/projects/proj-1", fiber.Map{"title": "Hijacked"})
	req.Header.Set("Cookie", "authjs.session-token=sam")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestLeadValidation(t *testing.T) {
	app, st := newTestApp(&stubResolver{})

	resp, err := app.Test(jsonReq("POST", "/api/lead", fiber.Map{
		"name":         "Jo Lee",
		"email":        "not-an-email",
		"city":         "New York",
		"whatYouBuild": "Weekend planners",
		"why":          "More builders",
	}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body map[string]string
	decode(t, resp, &body)
	assert.Equal(t, "Invalid email address", body["error"])
	assert.Empty(t, st.Leads())
}

func TestEventLifecycleRoutes(t *testing.T) {
	app, _ := newTestApp(&stubResolver{user: adminSession})

	resp, err := app.Test(adminReq("POST", "/api/admin/events", fiber.Map{
		"name":      "Build Day #4",
		"chapterId": "nyc",
		"date":      "2026-09-12",
		"location":  "Brooklyn",
	}))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var event models.Event
	decode(t, resp, &event)
	assert.Equal(t, models.EventStatusUpcoming, event.Status)

	resp, err = app.Test(adminReq("PATCH", "/api/admin/events/"+event.ID, fiber.Map{"status": "active"}))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &event)
	assert.Equal(t, models.EventStatusActive, event.Status)

	// Publicly visible.
	resp, err = app.Test(httptest.NewRequest("GET", "/api/events", nil))
	require.NoError(t, err)
	var events []models.Event
	decode(t, resp, &events)
	require.Len(t, events, 1)

	resp, err = app.Test(adminReq("DELETE", fmt.Sprintf("/api/admin/events/%s", event.ID), nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = app.Test(adminReq("DELETE", fmt.Sprintf("/api/admin/events/%s", event.ID), nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
