package dispatch

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// Handler is the default response processing of the wrapped transport.
type Handler interface {
	HandleResponse(ctx context.Context, status int, headers http.Header, payload []byte) (any, error)
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(ctx context.Context, status int, headers http.Header, payload []byte) (any, error)

func (f HandlerFunc) HandleResponse(ctx context.Context, status int, headers http.Header, payload []byte) (any, error) {
	return f(ctx, status, headers, payload)
}

// ResponseError is returned by JSONHandler for unsuccessful responses.
type ResponseError struct {
	Status  int
	Payload any
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("request failed with status %d %s", e.Status, http.StatusText(e.Status))
}

// JSONHandler treats 2xx and 304 as success and decodes JSON payloads.
// Payloads that are not JSON are passed on as strings.
type JSONHandler struct{}

var _ Handler = JSONHandler{}

func (JSONHandler) HandleResponse(_ context.Context, status int, _ http.Header, payload []byte) (any, error) {
	body := decodePayload(payload)
	if isSuccess(status) {
		return body, nil
	}
	return nil, &ResponseError{Status: status, Payload: body}
}

func isSuccess(status int) bool {
	return (status >= 200 && status < 300) || status == http.StatusNotModified
}

func decodePayload(payload []byte) any {
	if len(payload) == 0 {
		return nil
	}
	var v any
	if err := json.Unmarshal(payload, &v); err != nil {
		return string(payload)
	}
	return v
}
