package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/blackwell-systems/sem-cli/internal/resource"
)

// classify maps the outcome of one request onto the resource error taxonomy.
// It returns nil for successful responses.
func classify(op string, resp *resty.Response, err error) error {
	if err != nil {
		return &resource.TransportError{Op: op, Err: err}
	}
	if resp == nil {
		return &resource.TransportError{Op: op, Err: errors.New("no response")}
	}
	if !resp.IsError() {
		return nil
	}

	status := resp.StatusCode()
	msg := extractError(resp.Body())
	switch status {
	case http.StatusNotFound:
		return fmt.Errorf("%s: %w", op, resource.ErrNotFound)
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		if msg == "" {
			msg = http.StatusText(status)
		}
		return &resource.ValidationError{Message: msg}
	}

	var cause error
	if msg != "" {
		cause = errors.New(msg)
	}
	return &resource.TransportError{Op: op, Status: status, Err: cause}
}

// extractError pulls a human readable message out of an error body. The API
// answers {"message": "..."}; some proxies answer {"error": "..."} or plain
// text.
func extractError(body []byte) string {
	if len(body) == 0 {
		return ""
	}
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
		Errors  []struct {
			Field   string `json:"field"`
			Message string `json:"message"`
		} `json:"errors"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return strings.TrimSpace(string(body))
	}

	msg := strings.TrimSpace(payload.Message)
	if msg == "" {
		msg = strings.TrimSpace(payload.Error)
	}
	if len(payload.Errors) > 0 {
		details := make([]string, 0, len(payload.Errors))
		for _, e := range payload.Errors {
			if e.Field != "" {
				details = append(details, e.Field+" "+e.Message)
			} else {
				details = append(details, e.Message)
			}
		}
		if msg == "" {
			return strings.Join(details, "; ")
		}
		return msg + ": " + strings.Join(details, "; ")
	}
	return msg
}
