// Package httputil holds the JSON envelope helpers shared by HTTP handlers.
package httputil

import (
	"encoding/json"
	"net/http"

	dErrors "famcard/pkg/domain-errors"
)

// SuccessEnvelope wraps successful responses.
type SuccessEnvelope struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

// ErrorEnvelope wraps failed responses. ErrorMsg is the stable end-user text.
type ErrorEnvelope struct {
	Success  bool   `json:"success"`
	Error    string `json:"error"`
	ErrorMsg string `json:"error_msg"`
}

// WriteJSON writes v with the given status code.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteData writes a success envelope.
func WriteData(w http.ResponseWriter, data any) {
	WriteJSON(w, http.StatusOK, SuccessEnvelope{Success: true, Data: data})
}

// WriteError classifies err and writes the matching error envelope.
// Operator detail never reaches the body; only the code and stable message do.
func WriteError(w http.ResponseWriter, err error) {
	de := dErrors.Classify(err)
	WriteJSON(w, dErrors.ToHTTPStatus(de.Code), ErrorEnvelope{
		Success:  false,
		Error:    string(de.Code),
		ErrorMsg: de.UserMessage(),
	})
}
