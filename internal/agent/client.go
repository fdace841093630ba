package agent

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Client posts captured frames to the ingest endpoint. There is no retry
// or buffering; a failed send loses the event by design.
type Client struct {
	backendURL string
	source     string
	httpClient *http.Client
}

// NewClient creates an ingest client with the configured request timeout.
func NewClient(backendURL, source string, timeout time.Duration) *Client {
	return &Client{
		backendURL: backendURL,
		source:     source,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// SendCapture uploads one frame as a multipart form to /pi_capture.
// Fields: timestamp (ISO-8601), source, faces_detected, face_count; the
// JPEG payload travels in the "file" field.
func (c *Client) SendCapture(imagePath string, facesDetected bool, faceCount int) error {
	file, err := os.Open(imagePath)
	if err != nil {
		return fmt.Errorf("failed to open capture %s: %w", imagePath, err)
	}
	defer file.Close()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", filepath.Base(imagePath))
	if err != nil {
		return fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return fmt.Errorf("failed to copy capture data: %w", err)
	}

	fields := map[string]string{
		"timestamp":      time.Now().Format(time.RFC3339),
		"source":         c.source,
		"faces_detected": strconv.FormatBool(facesDetected),
		"face_count":     strconv.Itoa(faceCount),
	}
	for name, value := range fields {
		if err := writer.WriteField(name, value); err != nil {
			return fmt.Errorf("failed to write form field %s: %w", name, err)
		}
	}

	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize form: %w", err)
	}

	resp, err := c.httpClient.Post(c.backendURL+"/pi_capture", writer.FormDataContentType(), &body)
	if err != nil {
		return fmt.Errorf("failed to send capture: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("backend rejected capture: %d %s", resp.StatusCode, string(msg))
	}

	return nil
}
