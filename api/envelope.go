package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/zahabco/gold-dashboard/shared"
)

// envelope is the response contract the pricing service follows: a success
// flag plus a data field on success, or an error code and message.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Message string          `json:"message"`
}

// unwrap decodes the success/data envelope into out. A payload carrying
// success=false is surfaced as an APIError even though the HTTP exchange
// itself succeeded.
func unwrap(payload json.RawMessage, out interface{}) error {
	if payload == nil {
		return fmt.Errorf("empty response payload")
	}

	var env envelope
	if err := json.Unmarshal(payload, &env); err != nil {
		return fmt.Errorf("decode response envelope: %w", err)
	}

	if !env.Success {
		message := env.Message
		if message == "" {
			message = "request was not successful"
		}
		return shared.NewAPIError(http.StatusOK, env.Error, message, payload)
	}

	if out == nil || len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("decode response data: %w", err)
	}
	return nil
}
