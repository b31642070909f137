package service_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MinhMaxx/personal-website-backend/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResendMailDispatcher_Send(t *testing.T) {
	var received map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/emails", r.URL.Path)
		assert.Equal(t, "Bearer re_test", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"email-1"}`))
	}))
	defer server.Close()

	dispatcher := service.NewResendMailDispatcher("re_test", "noreply@example.com", "Personal Site")
	require.NoError(t, dispatcher.WithBaseURL(server.URL))

	err := dispatcher.Send(context.Background(), service.Message{
		To:      "jane@example.com",
		Subject: "Hello",
		Text:    "plain",
		HTML:    "<p>html</p>",
	})

	require.NoError(t, err)
	assert.Equal(t, "Personal Site <noreply@example.com>", received["from"])
	assert.Equal(t, []any{"jane@example.com"}, received["to"])
	assert.Equal(t, "Hello", received["subject"])
	assert.Equal(t, "plain", received["text"])
	assert.Equal(t, "<p>html</p>", received["html"])
}

func TestResendMailDispatcher_SendRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"statusCode":422,"name":"validation_error","message":"invalid from"}`))
	}))
	defer server.Close()

	dispatcher := service.NewResendMailDispatcher("re_test", "noreply@example.com", "")
	require.NoError(t, dispatcher.WithBaseURL(server.URL))

	err := dispatcher.Send(context.Background(), service.Message{To: "jane@example.com", Subject: "Hello", Text: "plain"})

	assert.Error(t, err)
}

func TestResendMailDispatcher_NotConfigured(t *testing.T) {
	dispatcher := service.NewResendMailDispatcher("", "noreply@example.com", "")

	err := dispatcher.Send(context.Background(), service.Message{To: "jane@example.com"})

	assert.ErrorIs(t, err, service.ErrMailNotConfigured)
}
