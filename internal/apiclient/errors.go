package apiclient

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/urlio/urlio-web/internal/model"
)

// Error is a non-2xx answer from the backend.
type Error struct {
	Operation  string
	StatusCode int
	Message    model.Message
}

func (e *Error) Error() string {
	text := e.Message.Resolve("en")
	if text == "" {
		text = http.StatusText(e.StatusCode)
	}
	return fmt.Sprintf("%s: backend returned %d: %s", e.Operation, e.StatusCode, text)
}

// IsStatus reports whether err is a backend error with the given status.
func IsStatus(err error, status int) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.StatusCode == status
}

// IsForbidden reports a 403 from the backend.
func IsForbidden(err error) bool {
	return IsStatus(err, http.StatusForbidden)
}

// IsUnauthorized reports a 401 from the backend.
func IsUnauthorized(err error) bool {
	return IsStatus(err, http.StatusUnauthorized)
}

// MessageOf returns the backend-provided message carried by err, if any.
// Transport failures carry none.
func MessageOf(err error) (model.Message, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) && !apiErr.Message.IsZero() {
		return apiErr.Message, true
	}
	return model.Message{}, false
}

// errorBody covers the error envelopes the backend produces:
// {"detail":{"message":…}}, {"detail":"…"}, {"detail":[{"msg":…}]} and {"message":…}.
type errorBody struct {
	Detail  json.RawMessage `json:"detail"`
	Message model.Message   `json:"message"`
}

type validationIssue struct {
	Msg string `json:"msg"`
}

func decodeErrorMessage(body []byte) model.Message {
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err != nil {
		return model.Message{}
	}

	detail := bytes.TrimSpace(eb.Detail)
	if len(detail) > 0 {
		switch detail[0] {
		case '{':
			var d struct {
				Message model.Message `json:"message"`
			}
			if err := json.Unmarshal(detail, &d); err == nil && !d.Message.IsZero() {
				return d.Message
			}
		case '"':
			var text string
			if err := json.Unmarshal(detail, &text); err == nil {
				return model.Plain(text)
			}
		case '[':
			var issues []validationIssue
			if err := json.Unmarshal(detail, &issues); err == nil && len(issues) > 0 {
				return model.Plain(issues[0].Msg)
			}
		}
	}
	return eb.Message
}
