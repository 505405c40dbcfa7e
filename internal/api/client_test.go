package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moodnest-cli/internal/model"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL+"/api/", 5*time.Second)
}

func TestNewClientTrimsSlash(t *testing.T) {
	c := NewClient("http://localhost:3000/api/", 0)

	assert.Equal(t, "http://localhost:3000/api", c.BaseURL())
}

func TestHistory(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/history", r.URL.Path)
		assert.Equal(t, "1", r.URL.Query().Get("user_id"))
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))
		_, _ = io.WriteString(w, `[{"role":"user","content":"hi"},{"role":"model","content":"hello"}]`)
	})

	messages, err := c.History(context.Background(), 1)

	require.NoError(t, err)
	assert.Equal(t, []model.Message{
		{Role: model.RoleUser, Content: "hi"},
		{Role: model.RoleModel, Content: "hello"},
	}, messages)
}

func TestChatPostsBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"user_id":1,"message":"I feel ok"}`, string(body))
		_, _ = io.WriteString(w, `{"response":"Glad to hear","source":"fallback"}`)
	})

	reply, err := c.Chat(context.Background(), 1, "I feel ok")

	require.NoError(t, err)
	assert.Equal(t, "Glad to hear", reply)
}

func TestAgentBodies(t *testing.T) {
	var mu sync.Mutex
	bodies := map[string]string{}
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		mu.Lock()
		bodies[r.URL.Path] = string(body)
		mu.Unlock()
		_, _ = io.WriteString(w, `{"response":"ok"}`)
	})

	_, err := c.Planner(context.Background())
	require.NoError(t, err)
	_, err = c.Resource(context.Background(), "stress")
	require.NoError(t, err)

	mu.Lock()
	defer mu.Unlock()
	assert.JSONEq(t, `{}`, bodies["/api/agent/planner"])
	assert.JSONEq(t, `{"mood":"stress"}`, bodies["/api/agent/resource"])
}

func TestReplyMissingResponseField(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"source":"fallback"}`)
	})

	_, err := c.Chat(context.Background(), 1, "hello")

	assert.Error(t, err)
}

func TestStatusError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	_, err := c.Chat(context.Background(), 1, "hello")

	require.Error(t, err)
	assert.True(t, IsStatus(err, http.StatusInternalServerError))
	assert.False(t, IsStatus(err, http.StatusNotFound))
	assert.Contains(t, err.Error(), "boom")
}

func TestMalformedBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `<html>`)
	})

	_, err := c.History(context.Background(), 1)

	require.Error(t, err)
	assert.False(t, IsStatus(err, http.StatusOK))
}

func TestAnalyticsParsesTimestamps(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `[{"timestamp":"2025-03-01 10:00:00","score":0.5},{"timestamp":"2025-03-02T10:00:00Z","score":-0.2,"magnitude":0.4}]`)
	})

	records, err := c.Analytics(context.Background(), 1)

	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, 0.5, records[0].Score)
	assert.Nil(t, records[0].Magnitude)
	require.NotNil(t, records[1].Magnitude)
	assert.Equal(t, 0.4, *records[1].Magnitude)
}

func TestSystemAndExport(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/system":
			_, _ = io.WriteString(w, `{"status":"online","platform":"Linux","cpu_percent":3.5,"memory_percent":41.2}`)
		case "/api/export":
			_, _ = io.WriteString(w, `{"user_id":1,"chats":[]}`)
		default:
			http.NotFound(w, r)
		}
	})

	status, err := c.System(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Linux", status.Platform)
	assert.Equal(t, 41.2, status.MemoryPercent)

	doc, err := c.Export(context.Background(), 1)
	require.NoError(t, err)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(doc, &decoded))
	assert.EqualValues(t, 1, decoded["user_id"])
}

func TestContextCancel(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Chat(ctx, 1, "hello")

	assert.Error(t, err)
}
