package models

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// Error codes for the application error taxonomy.
const (
	CodeValidation   = "VALIDATION_ERROR"
	CodeConflict     = "CONFLICT"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"
	CodeNotFound     = "NOT_FOUND"
	CodeInternal     = "INTERNAL_ERROR"
)

// AppError is a custom application error carrying a taxonomy code.
type AppError struct {
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Predefined error constructors

func NewValidationError(message string) *AppError {
	return &AppError{Code: CodeValidation, Message: message}
}

func NewConflictError(message string) *AppError {
	return &AppError{Code: CodeConflict, Message: message}
}

func NewUnauthorizedError(message string) *AppError {
	return &AppError{Code: CodeUnauthorized, Message: message}
}

func NewForbiddenError(message string) *AppError {
	return &AppError{Code: CodeForbidden, Message: message}
}

func NewNotFoundError(resource string) *AppError {
	return &AppError{Code: CodeNotFound, Message: resource + " not found"}
}

func NewInternalError(err error) *AppError {
	return &AppError{Code: CodeInternal, Message: "Server Error", Err: err}
}

// StatusForError maps an error onto the HTTP status required by the API
// contract. Conflicts surface as 400 rather than 409 to preserve parity
// with the public register endpoint.
func StatusForError(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		switch appErr.Code {
		case CodeValidation, CodeConflict:
			return fiber.StatusBadRequest
		case CodeUnauthorized:
			return fiber.StatusUnauthorized
		case CodeForbidden:
			return fiber.StatusForbidden
		case CodeNotFound:
			return fiber.StatusNotFound
		}
	}
	return fiber.StatusInternalServerError
}

// RespondWithError writes the uniform failure envelope. Internal error
// details stay server-side; only the message string reaches the client.
func RespondWithError(c *fiber.Ctx, status int, err error) error {
	msg := err.Error()
	var appErr *AppError
	if errors.As(err, &appErr) {
		msg = appErr.Message
	}
	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"msg":     msg,
	})
}

// RespondWithAppError resolves the status from the error taxonomy and writes
// the failure envelope.
func RespondWithAppError(c *fiber.Ctx, err error) error {
	return RespondWithError(c, StatusForError(err), err)
}
