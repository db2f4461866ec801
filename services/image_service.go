// Package services: services/image_service.go
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"

	"go-holo-council/logger"
)

// EditRequest is the image-edit side feature's input: an inline image blob,
// a prompt, and the blob's mime type. It shares no state with the voting core.
type EditRequest struct {
	Image    string `json:"image"`
	Prompt   string `json:"prompt"`
	MimeType string `json:"mimeType"`
}

// EditResult carries the edited image blob back to the caller.
type EditResult struct {
	RequestID string `json:"requestId"`
	Image     string `json:"image"`
}

// ErrEditorUnavailable is returned when no editor endpoint is configured.
var ErrEditorUnavailable = errors.New("image editor endpoint not configured")

// ImageService forwards edit requests to an external editor over plain
// request/response HTTP. Failures surface as an error message attached to
// the request's result, nothing more.
type ImageService struct {
	endpoint string
	client   *http.Client
}

// NewImageService reads the editor endpoint from IMAGE_EDIT_URL. An empty
// endpoint leaves the feature disabled.
func NewImageService() *ImageService {
	return &ImageService{
		endpoint: os.Getenv("IMAGE_EDIT_URL"),
		client:   &http.Client{Timeout: 60 * time.Second},
	}
}

// NewImageServiceWithEndpoint is used by tests to point at a local server.
func NewImageServiceWithEndpoint(endpoint string, client *http.Client) *ImageService {
	if client == nil {
		client = &http.Client{Timeout: 60 * time.Second}
	}
	return &ImageService{endpoint: endpoint, client: client}
}

// Edit submits the request and returns the edited blob, or an error whose
// message is safe to show the operator.
func (s *ImageService) Edit(ctx context.Context, req EditRequest) (EditResult, error) {
	if s.endpoint == "" {
		return EditResult{}, ErrEditorUnavailable
	}
	requestID := uuid.NewString()

	body, err := json.Marshal(req)
	if err != nil {
		return EditResult{}, err
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return EditResult{}, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-Request-Id", requestID)

	resp, err := s.client.Do(httpReq)
	if err != nil {
		logger.Error.Printf("[image] Edit request %s failed: %v", requestID, err)
		return EditResult{}, err
	}
	defer func() { _ = resp.Body.Close() }()

	var payload struct {
		Image string `json:"image"`
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return EditResult{}, fmt.Errorf("editor returned unreadable response: %w", err)
	}
	if resp.StatusCode != http.StatusOK || payload.Error != "" {
		msg := payload.Error
		if msg == "" {
			msg = resp.Status
		}
		logger.Warn.Printf("[image] Edit request %s rejected: %s", requestID, msg)
		return EditResult{}, errors.New(msg)
	}

	return EditResult{RequestID: requestID, Image: payload.Image}, nil
}
