package handlers

import (
	"encoding/json"
	"net/http"
	"net/mail"
)

// FieldError is a single field-level validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type fieldErrors []FieldError

func (e fieldErrors) add(field, message string) fieldErrors {
	return append(e, FieldError{Field: field, Message: message})
}

// write sends the collected errors as a 400 and reports whether any were
// written. Validation always rejects before any store access.
func (e fieldErrors) write(w http.ResponseWriter) bool {
	if len(e) == 0 {
		return false
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	json.NewEncoder(w).Encode(map[string]fieldErrors{"errors": e})
	return true
}

func validEmail(email string) bool {
	_, err := mail.ParseAddress(email)
	return err == nil
}
