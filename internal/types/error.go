package types

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// CustomError is an error carrying the HTTP status and error type reported
// to the client by the server's error handler.
type CustomError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Type    string `json:"type"`
}

func (e *CustomError) Error() string {
	return fmt.Sprintf("%d: %s [type: %s]", e.Code, e.Message, e.Type)
}

// NewBadRequest builds a 400 CustomError.
func NewBadRequest(errorType, format string, args ...interface{}) *CustomError {
	return &CustomError{Code: fiber.StatusBadRequest, Message: fmt.Sprintf(format, args...), Type: errorType}
}
