package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// Машиночитаемые виды ошибок в ответах API
const (
	KindValidation    = "validation_error"
	KindNotFound      = "not_found"
	KindPriceMismatch = "price_mismatch"
	KindSlotFull      = "slot_full"
	KindConflict      = "conflict"
	KindBookingFailed = "booking_failed"
	KindInternal      = "internal_error"
)

const (
	maxBodyBytes       = 1 << 20
	msgInternalError   = "внутренняя ошибка сервера"
	contentTypeJSON    = "application/json"
	headerContentType  = "Content-Type"
	errEmptyBodyString = "request body is empty"
)

// ErrorResponse тело ответа с ошибкой
type ErrorResponse struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// RespondJSON пишет ответ в JSON
func RespondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set(headerContentType, contentTypeJSON)
	w.WriteHeader(status)
	if data == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(data)
}

// RespondError пишет ошибку с видом и сообщением
func RespondError(w http.ResponseWriter, status int, kind, message string) {
	RespondJSON(w, status, ErrorResponse{Kind: kind, Message: message})
}

// RespondBadRequest 400 validation_error
func RespondBadRequest(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusBadRequest, KindValidation, message)
}

// RespondNotFound 404 not_found
func RespondNotFound(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusNotFound, KindNotFound, message)
}

// RespondConflict 409 с указанным видом ошибки
func RespondConflict(w http.ResponseWriter, kind, message string) {
	RespondError(w, http.StatusConflict, kind, message)
}

// RespondServiceUnavailable 503 booking_failed
func RespondServiceUnavailable(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusServiceUnavailable, KindBookingFailed, message)
}

// RespondInternalError 500 internal_error
func RespondInternalError(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError, KindInternal, msgInternalError)
}

// DecodeJSON читает тело запроса в v. Неизвестные поля и лишние данные после объекта считаются ошибкой.
func DecodeJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return errors.New(errEmptyBodyString)
	}

	decoder := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New(errEmptyBodyString)
		}
		return err
	}

	if decoder.More() {
		return fmt.Errorf("unexpected data after JSON object")
	}

	return nil
}
