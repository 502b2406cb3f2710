package upstream

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestForwardJSONRelaysStatusAndBody(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		assert.Equal(t, "/api/check-answer", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.JSONEq(t, `{"answer":"12"}`, string(body))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTeapot) // relayed verbatim, whatever it is
		w.Write([]byte(`{"correct":true}`))
	}))
	defer backend.Close()

	client := NewClient(backend.URL)
	res, err := client.ForwardJSON(context.Background(), "/api/check-answer", []byte(`{"answer":"12"}`))

	assert.NoError(t, err)
	assert.Equal(t, http.StatusTeapot, res.StatusCode)
	assert.Equal(t, `{"correct":true}`, string(res.Body))
	assert.Equal(t, "application/json", res.ContentType)
}

func TestForwardGetPassesHeadersThrough(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/class/ABC234/progress", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		assert.Empty(t, r.Header.Get("X-Skip")) // blank header values are not forwarded

		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"members":[]}`))
	}))
	defer backend.Close()

	client := NewClient(backend.URL)
	res, err := client.ForwardGet(context.Background(), "/api/class/ABC234/progress", map[string]string{
		"Authorization": "Bearer tok",
		"X-Skip":        "",
	})

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, `{"members":[]}`, string(res.Body))
}

func TestForwardMultipartRebuildsForm(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("backend could not parse form: %v", err)
		}
		assert.Equal(t, "stu_123", r.FormValue("student_id"))

		file, header, err := r.FormFile("image")
		assert.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "work.png", header.Filename)

		content, _ := io.ReadAll(file)
		assert.Equal(t, "fake-png-bytes", string(content))

		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"session_id":"abc"}`))
	}))
	defer backend.Close()

	client := NewClient(backend.URL)
	res, err := client.ForwardMultipart(
		context.Background(),
		"/api/process-image",
		map[string]string{"student_id": "stu_123"},
		"image", "work.png",
		strings.NewReader("fake-png-bytes"),
	)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, `{"session_id":"abc"}`, string(res.Body))
}

func TestConfigured(t *testing.T) {
	assert.False(t, NewClient("").Configured())
	assert.True(t, NewClient("http://localhost:8080/").Configured())

	var nilClient *Client
	assert.False(t, nilClient.Configured())
}

func TestForwardJSONNetworkError(t *testing.T) {
	client := NewClient("http://127.0.0.1:1") // nothing listens here
	_, err := client.ForwardJSON(context.Background(), "/api/check-answer", []byte(`{}`))
	assert.Error(t, err)
}
