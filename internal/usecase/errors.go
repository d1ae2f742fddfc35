package usecase

import (
	"errors"
	"fmt"
	"net/http"
)

// handlerがそのままステータスとメッセージに使うエラー
type HTTPError struct {
	Status  int
	Message string
	Err     error
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func (e *HTTPError) Unwrap() error {
	return e.Err
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

// リモート操作の失敗（原因はErrに残す）
func opFailed(op string, cause error) *HTTPError {
	return &HTTPError{
		Status:  http.StatusBadGateway,
		Message: "cart operation failed: " + op,
		Err:     cause,
	}
}

var (
	errInvalidQuantity = NewHTTPError(http.StatusBadRequest, "invalid quantity")
	errInvalidBookID   = NewHTTPError(http.StatusBadRequest, "invalid book id")
	errNoCartRemove    = NewHTTPError(http.StatusNotFound, "Cart does not exist. Cannot remove item.")
	errNoCartUpdate    = NewHTTPError(http.StatusNotFound, "Cart does not exist. Cannot update item.")
	errUnauthorized    = NewHTTPError(http.StatusUnauthorized, "unauthorized")
)
