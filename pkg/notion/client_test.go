package notion

import (
	"context"
	"encoding/json"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
)

var noPacing = time.Duration(0)

func newTestClient(t *testing.T, handler http.Handler) (Client, *httptest.Server) {
	server := httptest.NewServer(handler)
	client, err := New("test-token", Options{
		BaseURL:       server.URL,
		WriteInterval: &noPacing,
	})
	assert.NoError(t, err)
	return client, server
}

func TestNewRequiresToken(t *testing.T) {
	_, err := New("", Options{})
	assert.Error(t, err)
}

func TestCreatePage(t *testing.T) {
	var gotPath, gotAuth, gotVersion string
	var gotBody map[string]interface{}
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.Method + " " + r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotVersion = r.Header.Get("Notion-Version")

		body, err := ioutil.ReadAll(r.Body)
		assert.NoError(t, err)
		assert.NoError(t, json.Unmarshal(body, &gotBody))

		w.Write([]byte(`{"id": "new-page-id"}`))
	})

	client, server := newTestClient(t, handler)
	defer server.Close()

	pageID, err := client.CreatePage(context.Background(), "parent-id", "My Notes")
	assert.NoError(t, err)
	assert.Equal(t, "new-page-id", pageID)

	assert.Equal(t, "POST /v1/pages", gotPath)
	assert.Equal(t, "Bearer test-token", gotAuth)
	assert.Equal(t, apiVersion, gotVersion)

	exp := map[string]interface{}{
		"parent": map[string]interface{}{"page_id": "parent-id"},
		"properties": map[string]interface{}{
			"title": []interface{}{
				map[string]interface{}{
					"type": "text",
					"text": map[string]interface{}{"content": "My Notes"},
				},
			},
		},
	}
	assert.Equal(t, exp, gotBody)
}

func TestAppendBlocks(t *testing.T) {
	var gotPath string
	var gotBody map[string]interface{}
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.Method + " " + r.URL.Path

		body, err := ioutil.ReadAll(r.Body)
		assert.NoError(t, err)
		assert.NoError(t, json.Unmarshal(body, &gotBody))

		w.Write([]byte(`{}`))
	})

	client, server := newTestClient(t, handler)
	defer server.Close()

	blocks := []Block{
		Paragraph("hello"),
		ExternalFile("https://example.com/files/photo.png"),
	}
	assert.NoError(t, client.AppendBlocks(context.Background(), "page-id", blocks))
	assert.Equal(t, "PATCH /v1/blocks/page-id/children", gotPath)

	children := gotBody["children"].([]interface{})
	assert.Len(t, children, 2)

	paragraph := children[0].(map[string]interface{})
	assert.Equal(t, "paragraph", paragraph["type"])

	file := children[1].(map[string]interface{})
	assert.Equal(t, "file", file["type"])
	assert.Equal(t, map[string]interface{}{
		"type":     "external",
		"external": map[string]interface{}{"url": "https://example.com/files/photo.png"},
	}, file["file"])
}

func TestAppendBlocksGuards(t *testing.T) {
	called := false
	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		called = true
		w.Write([]byte(`{}`))
	})

	client, server := newTestClient(t, handler)
	defer server.Close()

	// Neither an empty batch nor an oversized one should reach the server.
	assert.Error(t, client.AppendBlocks(context.Background(), "page-id", nil))

	oversized := make([]Block, maxBlocksPerRequest+1)
	for i := range oversized {
		oversized[i] = Paragraph("x")
	}
	assert.Error(t, client.AppendBlocks(context.Background(), "page-id", oversized))

	assert.False(t, called)
}

func TestAPIErrors(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"code": "validation_error", "message": "parent not found"}`))
	})

	client, server := newTestClient(t, handler)
	defer server.Close()

	_, err := client.CreatePage(context.Background(), "bad-parent", "title")
	assert.Equal(t, APIError{
		StatusCode: http.StatusBadRequest,
		Code:       "validation_error",
		Message:    "parent not found",
	}, err)

	err = client.AppendBlocks(context.Background(), "page-id", []Block{Paragraph("x")})
	apiErr, ok := err.(APIError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
}

func TestWritePacing(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, _ *http.Request) {
			w.Write([]byte(`{"id": "page-id"}`))
		}))
	defer server.Close()

	clock := clockwork.NewFakeClock()
	client, err := New("test-token", Options{
		BaseURL: server.URL,
		Clock:   clock,
	})
	assert.NoError(t, err)

	// The first write goes straight through.
	_, err = client.CreatePage(context.Background(), "parent", "first")
	assert.NoError(t, err)

	// The second write sleeps until the pacing interval has passed.
	done := make(chan error)
	go func() {
		_, err := client.CreatePage(context.Background(), "parent", "second")
		done <- err
	}()

	clock.BlockUntil(1)
	clock.Advance(defaultWriteInterval)
	assert.NoError(t, <-done)

	// Once the interval has already elapsed, the next write goes straight
	// through without sleeping (the fake clock would block it forever
	// otherwise).
	clock.Advance(defaultWriteInterval)
	_, err = client.CreatePage(context.Background(), "parent", "third")
	assert.NoError(t, err)
}
