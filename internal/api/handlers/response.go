package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

const msgInternalError = "Internal server error"

// ErrorResponse тело ответа с ошибкой. Code заполняется для ошибок валидации.
type ErrorResponse struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// DecodeJSON разбирает тело запроса в v. Пустое тело не считается ошибкой:
// отсутствующие поля проверяет валидатор.
func DecodeJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return nil
	}
	err := json.NewDecoder(r.Body).Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

// RespondJSON пишет v в ответ с указанным статусом
func RespondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

// RespondError пишет {message} с указанным статусом
func RespondError(w http.ResponseWriter, status int, message string) {
	RespondJSON(w, status, ErrorResponse{Message: message})
}

// RespondErrorWithCode пишет {message, code} с указанным статусом
func RespondErrorWithCode(w http.ResponseWriter, status int, code, message string) {
	RespondJSON(w, status, ErrorResponse{Message: message, Code: code})
}

// RespondValidationError пишет 400 {message, code}
func RespondValidationError(w http.ResponseWriter, err *domain.ValidationError) {
	RespondErrorWithCode(w, http.StatusBadRequest, err.Code, err.Message)
}

func RespondBadRequest(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusBadRequest, message)
}

func RespondNotFound(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusNotFound, message)
}

func RespondConflict(w http.ResponseWriter, code, message string) {
	RespondErrorWithCode(w, http.StatusConflict, code, message)
}

func RespondTooManyRequests(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusTooManyRequests, message)
}

func RespondServiceUnavailable(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusServiceUnavailable, message)
}

func RespondInternalError(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError, msgInternalError)
}
