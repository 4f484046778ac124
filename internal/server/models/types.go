package models

import (
	"encoding/json"
	"net"
	"net/url"

	"github.com/rostart/rostart/internal/log"
)

type Request struct {
	ID     interface{}            `json:"id,omitempty"`
	Method string                 `json:"method"`
	Params map[string]interface{} `json:"params,omitempty"`
}

type Response[T any] struct {
	ID     interface{} `json:"id,omitempty"`
	Result *T          `json:"result,omitempty"`
	Error  string      `json:"error,omitempty"`
}

type SuccessResult struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// IntentEvent is streamed to wizard.subscribe clients for every dispatched
// intent.
type IntentEvent struct {
	ID     string     `json:"id"`
	Action string     `json:"action"`
	URL    string     `json:"url"`
	Params url.Values `json:"params,omitempty"`
}

func RespondError(conn net.Conn, id interface{}, errMsg string) {
	log.Errorf("API Error: id=%v error=%s", id, errMsg)
	resp := Response[any]{ID: id, Error: errMsg}
	json.NewEncoder(conn).Encode(resp)
}

func Respond[T any](conn net.Conn, id interface{}, result T) error {
	resp := Response[T]{ID: id, Result: &result}
	return json.NewEncoder(conn).Encode(resp)
}
