// Package submit carries the wire types of the submission endpoint and the
// client that posts a completed form to it.
package submit

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	stderrors "admissions-forms/internal/common/errors"
	"admissions-forms/internal/common/logger"
	"admissions-forms/internal/forms/schema"
)

// Request is the submission payload: the form type discriminator plus the
// complete accumulated form data.
type Request struct {
	FormType string          `json:"formType"`
	Data     schema.FormData `json:"data"`
}

// Response mirrors the backend's reply. Validation failures arrive as data
// in FieldErrors, never as a transport error.
type Response struct {
	Success     bool              `json:"success"`
	Message     string            `json:"message,omitempty"`
	Error       string            `json:"error,omitempty"`
	FieldErrors map[string]string `json:"details,omitempty"`
	EmailID     string            `json:"emailId,omitempty"`
}

// Client posts submissions to the backend endpoint.
type Client struct {
	httpClient *http.Client
	endpoint   string
	logger     logger.Logger
}

func NewClient(endpoint string, timeout time.Duration, log logger.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		endpoint:   endpoint,
		logger:     log.WithFields(map[string]interface{}{"component": "submit-client"}),
	}
}

// Submit serializes the whole form and issues a single POST. The backend's
// verdict is authoritative: any well-formed response body is returned as a
// Response, whatever the HTTP status; only network-level failures and
// unreadable bodies become errors.
func (c *Client) Submit(ctx context.Context, formType string, data schema.FormData) (*Response, error) {
	body, err := json.Marshal(Request{FormType: formType, Data: data})
	if err != nil {
		return nil, stderrors.NewSubmissionTransportError(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, stderrors.NewSubmissionTransportError(err)
	}
	req.Header.Set("Content-Type", "application/json")

	c.logger.Info("submitting form", map[string]interface{}{
		"formType": formType,
		"endpoint": c.endpoint,
	})

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("submission request failed", map[string]interface{}{"error": err})
		return nil, stderrors.NewSubmissionTransportError(err)
	}
	defer resp.Body.Close()

	var out Response
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		c.logger.Error("malformed submission response", map[string]interface{}{
			"status": resp.StatusCode,
			"error":  err,
		})
		return nil, stderrors.NewSubmissionTransportError(
			fmt.Errorf("malformed response (status %d): %w", resp.StatusCode, err))
	}

	return &out, nil
}
