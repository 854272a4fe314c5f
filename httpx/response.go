package httpx

import (
	"encoding/json"
	"net/http"
)

// ErrorResponse is the envelope returned for every failed API call: a success
// flag plus a human-readable message the frontend can show directly.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

func JSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	var body []byte
	var err error
	if payload != nil {
		body, err = json.Marshal(payload)
		if err != nil {
			// best-effort error response; avoid writing partial JSON
			http.Error(w, `{"success":false,"message":"encode error"}`, http.StatusInternalServerError)
			return
		}
	} else {
		body = []byte("null")
	}
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		// nothing we can do at this point
		_ = err
	}
}

// Error writes the standard failure envelope.
func Error(w http.ResponseWriter, status int, msg string, details any) {
	JSON(w, status, ErrorResponse{Success: false, Message: msg, Details: details})
}
