package services

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// ApiError is a business-rule violation carrying the HTTP status it
// should be serialized with at the request boundary.
type ApiError struct {
	Status  int
	Message string
}

func (e *ApiError) Error() string {
	return e.Message
}

func NotFoundError(message string) *ApiError {
	return &ApiError{Status: fiber.StatusNotFound, Message: message}
}

func BadRequestError(message string) *ApiError {
	return &ApiError{Status: fiber.StatusBadRequest, Message: message}
}

func UnauthorizedError(message string) *ApiError {
	return &ApiError{Status: fiber.StatusUnauthorized, Message: message}
}

func InternalError(message string) *ApiError {
	return &ApiError{Status: fiber.StatusInternalServerError, Message: message}
}

// HttpStatus maps an error to the status code and message to send to
// the client. Unexpected errors are reduced to a generic 500 so
// internals never leak.
func HttpStatus(err error) (int, string) {
	var apiErr *ApiError
	if errors.As(err, &apiErr) {
		return apiErr.Status, apiErr.Message
	}
	return fiber.StatusInternalServerError, "Something went wrong!"
}
