package controller

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"mathclicks-be/internal/pkg/serverutils"
	"mathclicks-be/pkg/upstream"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(up *upstream.Client, embedded bool) *fiber.App {
	app := fiber.New()
	app.Use(serverutils.ErrorHandlerMiddleware())
	api := app.Group("/api")
	NewPracticeController(nil, nil, nil, up, embedded).RegisterRoutes(api)
	NewClassController(nil, up, embedded).RegisterRoutes(api)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path, body string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	res, err := app.Test(req)
	require.NoError(t, err)
	return res
}

func TestRoutesAnswer501WithoutBackend(t *testing.T) {
	app := newTestApp(upstream.NewClient(""), false)

	tests := []struct {
		path string
		body string
	}{
		{"/api/generate-problems", `{"topic":"Fractions","tier":2,"count":5}`},
		{"/api/check-answer", `{"session_id":"b3a4a9e2-9a3f-4a57-9a5f-0f1d0c9d8e7f","problem_id":"p1","answer":"4"}`},
		{"/api/analyze-work", `{"work_text":"2+2=4"}`},
		{"/api/evaluate-response", `{"question":"why?","response":"because"}`},
		{"/api/class/create", `{"teacher_name":"Ms. Lee","class_name":"Period 3","pin":"1234"}`},
		{"/api/class/update", `{"class_code":"ABC234","student_id":"s1","student_name":"Sam"}`},
		{"/api/class/achievement", `{"class_code":"ABC234","student_id":"s1","code":"FIRST_CORRECT"}`},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			res := postJSON(t, app, tt.path, tt.body)
			assert.Equal(t, fiber.StatusNotImplemented, res.StatusCode)
		})
	}
}

func TestValidationRunsBeforeModeDispatch(t *testing.T) {
	// Even with no backend at all, a bad request is a 400, never a 501.
	app := newTestApp(upstream.NewClient(""), false)

	tests := []struct {
		path string
		body string
	}{
		{"/api/generate-problems", `{"tier":2}`},
		{"/api/generate-problems", `{"topic":"Fractions","tier":9}`},
		{"/api/check-answer", `{"problem_id":"p1"}`},
		{"/api/analyze-work", `{}`},
		{"/api/class/create", `{"teacher_name":"Ms. Lee","class_name":"Period 3","pin":"12"}`},
		{"/api/class/update", `{"class_code":"ABC234"}`},
	}

	for _, tt := range tests {
		t.Run(tt.path+tt.body, func(t *testing.T) {
			res := postJSON(t, app, tt.path, tt.body)
			assert.Equal(t, fiber.StatusBadRequest, res.StatusCode)
		})
	}
}

func TestProxyModeRelaysBackendReplyVerbatim(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/generate-problems", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTeapot)
		w.Write([]byte(`{"from":"backend"}`))
	}))
	defer backend.Close()

	app := newTestApp(upstream.NewClient(backend.URL), false)

	res := postJSON(t, app, "/api/generate-problems", `{"topic":"Fractions"}`)
	assert.Equal(t, http.StatusTeapot, res.StatusCode)
}

func TestProxyModeRelaysProgressWithAuthHeader(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/class/ABC234/progress", r.URL.Path)
		assert.Equal(t, "Bearer upstream-token", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTeapot)
		w.Write([]byte(`{"from":"backend"}`))
	}))
	defer backend.Close()

	app := newTestApp(upstream.NewClient(backend.URL), false)

	// The backend minted the token, so it validates it: no local JWT check.
	req := httptest.NewRequest(http.MethodGet, "/api/class/abc234/progress", nil)
	req.Header.Set("Authorization", "Bearer upstream-token")
	res, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusTeapot, res.StatusCode)
}

func TestProcessImageRejectsBadUploads(t *testing.T) {
	app := newTestApp(upstream.NewClient(""), false)

	// No multipart body at all.
	req := httptest.NewRequest(http.MethodPost, "/api/process-image", nil)
	res, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, res.StatusCode)
}
