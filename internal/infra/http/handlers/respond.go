package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/yuxdigital/yux-crm/internal/usecase"
)

// APIError é o bloco de erro do envelope.
type APIError struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// APIResponse é o envelope uniforme de todas as respostas JSON.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(APIResponse{Success: true, Data: data})
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondErrorDetails(w, status, code, message, nil)
}

func respondErrorDetails(w http.ResponseWriter, status int, code, message string, details interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: message, Details: details},
	})
}

// respondUsecaseError traduz o erro do usecase pro envelope: DomainError
// vira o código dele, o resto vira 500 genérico.
func respondUsecaseError(w http.ResponseWriter, err error) {
	if derr, ok := err.(*usecase.DomainError); ok {
		respondError(w, statusForCode(derr.Code), derr.Code, derr.Message)
		return
	}
	respondError(w, http.StatusInternalServerError, usecase.CodeInternal, "Erro interno do servidor")
}

func statusForCode(code string) int {
	switch code {
	case usecase.CodeValidation, usecase.CodeInvalidJSON:
		return http.StatusBadRequest
	case usecase.CodeAuthDenied:
		return http.StatusForbidden
	case usecase.CodeNotFound:
		return http.StatusNotFound
	case usecase.CodeDuplicate:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
