package handlers

import (
	"encoding/json"
	"net/http"
)

// ErrorResponse writes the standard error envelope, {"error": code,
// "message": text}. Encoding failures are returned so callers can log them.
func ErrorResponse(w http.ResponseWriter, statusCode int, errorCode, message string) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	return json.NewEncoder(w).Encode(map[string]string{
		"error":   errorCode,
		"message": message,
	})
}

// WriteJSON encodes data as the JSON response body. For 200 the status line
// comes from the first write; anything else is set explicitly.
func WriteJSON(w http.ResponseWriter, statusCode int, data interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	if statusCode != http.StatusOK {
		w.WriteHeader(statusCode)
	}
	return json.NewEncoder(w).Encode(data)
}
