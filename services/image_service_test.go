// file: services/image_service_test.go
package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImageEdit_RoundTrip(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.NotEmpty(t, r.Header.Get("X-Request-Id"))

		var req EditRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "make it glow", req.Prompt)

		_ = json.NewEncoder(w).Encode(map[string]string{"image": "edited_" + req.Image})
	}))
	defer server.Close()

	svc := NewImageServiceWithEndpoint(server.URL, server.Client())
	result, err := svc.Edit(context.Background(), EditRequest{
		Image:    "blob",
		Prompt:   "make it glow",
		MimeType: "image/png",
	})

	require.NoError(t, err)
	assert.Equal(t, "edited_blob", result.Image)
	assert.NotEmpty(t, result.RequestID)
}

func TestImageEdit_EditorError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "unsupported mime type"})
	}))
	defer server.Close()

	svc := NewImageServiceWithEndpoint(server.URL, server.Client())
	_, err := svc.Edit(context.Background(), EditRequest{Image: "blob", Prompt: "p"})

	require.Error(t, err)
	assert.Equal(t, "unsupported mime type", err.Error())
}

func TestImageEdit_DisabledWithoutEndpoint(t *testing.T) {
	svc := NewImageServiceWithEndpoint("", nil)

	_, err := svc.Edit(context.Background(), EditRequest{Image: "blob", Prompt: "p"})

	assert.ErrorIs(t, err, ErrEditorUnavailable)
}
