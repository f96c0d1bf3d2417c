package statusapi

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// ErrorResponse: структура ответа с ошибкой.
type ErrorResponse struct {
	Error string `json:"error"`
}

// DataResponse: структура успешного ответа.
type DataResponse struct {
	Data any `json:"data"`
}

// JSON отправляет JSON ответ.
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// Success отправляет успешный ответ с данными.
func Success(w http.ResponseWriter, data any) {
	JSON(w, http.StatusOK, DataResponse{Data: data})
}

// NotFound отправляет ошибку 404.
func NotFound(w http.ResponseWriter, message string) {
	JSON(w, http.StatusNotFound, ErrorResponse{Error: message})
}

// InternalError отправляет ошибку 500.
func InternalError(w http.ResponseWriter, logger *slog.Logger, err any) {
	logger.Error("internal error", "error", err)
	JSON(w, http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
}
