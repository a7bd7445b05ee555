package stubapi

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// errorResponse тело ответа об ошибке
type errorResponse struct {
	Message string `json:"message"`
}

// decodeJSON декодирует тело запроса в модель
func decodeJSON(r *http.Request, dst interface{}) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("decode request body: %w", err)
	}
	return nil
}

// respondJSON отправляет ответ с JSON телом
func respondJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		_ = json.NewEncoder(w).Encode(body)
	}
}

// respondError отправляет ответ об ошибке с сообщением
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, errorResponse{Message: message})
}

func respondBadRequest(w http.ResponseWriter, message string) {
	respondError(w, http.StatusBadRequest, message)
}

func respondUnauthorized(w http.ResponseWriter) {
	respondError(w, http.StatusUnauthorized, "authentication required")
}

func respondForbidden(w http.ResponseWriter, message string) {
	respondError(w, http.StatusForbidden, message)
}

func respondNotFound(w http.ResponseWriter, message string) {
	respondError(w, http.StatusNotFound, message)
}

func respondConflict(w http.ResponseWriter, message string) {
	respondError(w, http.StatusConflict, message)
}

func respondInternalError(w http.ResponseWriter) {
	respondError(w, http.StatusInternalServerError, "internal server error")
}
