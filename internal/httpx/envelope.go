package httpx

import (
	"encoding/json"
	"net/http"
)

// Envelope es la forma uniforme de toda respuesta de la API.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

func write(w http.ResponseWriter, status int, e Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(e)
}

// OK responde 200 (u otro status 2xx) con success=true.
func OK(w http.ResponseWriter, status int, message string, data any) {
	write(w, status, Envelope{Success: true, Message: message, Data: data})
}

// Created responde 201 con success=true.
func Created(w http.ResponseWriter, message string, data any) {
	OK(w, http.StatusCreated, message, data)
}

// EmptyList responde 200 con data=[] para listados vacíos.
func EmptyList(w http.ResponseWriter, message string) {
	write(w, http.StatusOK, Envelope{Success: true, Message: message, Data: []any{}})
}

// Error responde con success=false y data=null.
func Error(w http.ResponseWriter, status int, message string) {
	write(w, status, Envelope{Success: false, Message: message, Data: nil})
}

func ValidationError(w http.ResponseWriter, message string) {
	Error(w, http.StatusBadRequest, message)
}

func Unauthorized(w http.ResponseWriter, message string) {
	Error(w, http.StatusUnauthorized, message)
}

func Forbidden(w http.ResponseWriter, message string) {
	Error(w, http.StatusForbidden, message)
}

func NotFound(w http.ResponseWriter, message string) {
	Error(w, http.StatusNotFound, message)
}

func Internal(w http.ResponseWriter) {
	Error(w, http.StatusInternalServerError, "Error interno del servidor")
}
