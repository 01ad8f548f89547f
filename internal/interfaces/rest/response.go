package rest

import (
	"encoding/json"
	"net/http"
)

// errorText carries the default error descriptions for the failure codes
// the service emits.
var errorText = map[int]string{
	http.StatusBadRequest:          "Bad Request",
	http.StatusForbidden:           "Forbidden",
	http.StatusNotFound:            "Not Found",
	http.StatusUnprocessableEntity: "Invalid Request",
	http.StatusInternalServerError: "Internal Server Error",
}

// WriteResponse emits the wire envelope: {"response": ..., "code": N} on
// success, {"error": ..., "code": N} on failure. A nil resp on a failure
// code falls back to the default error text.
func WriteResponse(w http.ResponseWriter, resp any, code int) {
	var payload map[string]any
	if text, failed := errorText[code]; failed {
		msg := resp
		if msg == nil {
			msg = text
		}
		payload = map[string]any{"error": msg, "code": code}
	} else {
		payload = map[string]any{"response": resp, "code": code}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(payload)
}
