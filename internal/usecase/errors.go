package usecase

import (
	"errors"
	"fmt"
	"net/http"
)

// handlerがそのままステータスとメッセージに変換するエラー
type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}

// 400 入力不正（保存前に弾く）
func NewValidationError(message string) error {
	return NewHTTPError(http.StatusBadRequest, message)
}

// 401 認証失敗
func NewAuthError(message string) error {
	return NewHTTPError(http.StatusUnauthorized, message)
}

// 403 権限
func NewForbiddenError(message string) error {
	return NewHTTPError(http.StatusForbidden, message)
}

// 404
func NewNotFoundError(message string) error {
	return NewHTTPError(http.StatusNotFound, message)
}

// 409 一意制約
func NewConflictError(message string) error {
	return NewHTTPError(http.StatusConflict, message)
}

// 500
func newInternalError() error {
	return NewHTTPError(http.StatusInternalServerError, "db error")
}

func hasStatus(err error, status int) bool {
	he, ok := AsHTTPError(err)
	return ok && he.Status == status
}

func IsNotFound(err error) bool   { return hasStatus(err, http.StatusNotFound) }
func IsConflict(err error) bool   { return hasStatus(err, http.StatusConflict) }
func IsValidation(err error) bool { return hasStatus(err, http.StatusBadRequest) }
