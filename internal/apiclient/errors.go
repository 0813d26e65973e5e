package apiclient

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

const DefaultErrorMessage = "Request failed"

// RequestError is a non-success response or a transport failure (Status == 0).
type RequestError struct {
	Method  string
	Path    string
	Status  int
	Message string
	Err     error
}

func (e *RequestError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("%s %s: %s", e.Method, e.Path, e.Message)
	}
	return fmt.Sprintf("%s %s: %d: %s", e.Method, e.Path, e.Status, e.Message)
}

func (e *RequestError) Unwrap() error { return e.Err }

func (e *RequestError) Unauthorized() bool {
	return e.Status == http.StatusUnauthorized
}

type errorBody struct {
	Error  json.RawMessage `json:"error"`
	Detail json.RawMessage `json:"detail"`
}

// messageFromBody extracts the server message: "error" first, then "detail",
// else the generic fallback.
func messageFromBody(body []byte) string {
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err != nil {
		return DefaultErrorMessage
	}
	if m := rawMessage(eb.Error); m != "" {
		return m
	}
	if m := rawMessage(eb.Detail); m != "" {
		return m
	}
	return DefaultErrorMessage
}

func rawMessage(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}

	// validation failures arrive as a list of {"msg": ...}
	var list []struct {
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(raw, &list); err == nil {
		msgs := make([]string, 0, len(list))
		for _, it := range list {
			if it.Msg != "" {
				msgs = append(msgs, it.Msg)
			}
		}
		return strings.Join(msgs, "; ")
	}
	return ""
}
