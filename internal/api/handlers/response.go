package handlers

import (
	"encoding/json"
	"net/http"
)

const (
	msgInternalError      = "internal server error"
	msgServiceUnavailable = "service temporarily unavailable, retry later"
)

// ErrorResponse is the body of every non-2xx response
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// ConflictResponse is returned when requested slots are already booked
type ConflictResponse struct {
	Code             int      `json:"code"`
	Message          string   `json:"message"`
	ConflictingSlots []string `json:"conflictingSlots"`
}

// RespondJSON writes payload as JSON with the given status
func RespondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}

// RespondError writes an ErrorResponse
func RespondError(w http.ResponseWriter, status int, message string) {
	RespondJSON(w, status, ErrorResponse{Code: status, Message: message})
}

func RespondBadRequest(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusBadRequest, message)
}

func RespondUnauthorized(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusUnauthorized, message)
}

func RespondForbidden(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusForbidden, message)
}

func RespondNotFound(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusNotFound, message)
}

func RespondConflict(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusConflict, message)
}

// RespondUnprocessable is used for well-formed requests the current state rejects (inactive turf)
func RespondUnprocessable(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusUnprocessableEntity, message)
}

// RespondSlotConflict writes 409 with the slots that were already taken
func RespondSlotConflict(w http.ResponseWriter, message string, slots []string) {
	if slots == nil {
		slots = []string{}
	}
	RespondJSON(w, http.StatusConflict, ConflictResponse{
		Code:             http.StatusConflict,
		Message:          message,
		ConflictingSlots: slots,
	})
}

// RespondServiceUnavailable tells the client the storage cannot commit right now
func RespondServiceUnavailable(w http.ResponseWriter) {
	w.Header().Set("Retry-After", "1")
	RespondError(w, http.StatusServiceUnavailable, msgServiceUnavailable)
}

func RespondInternalError(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError, msgInternalError)
}
