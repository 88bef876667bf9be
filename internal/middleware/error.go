package middleware

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	TraceID string `json:"trace_id,omitempty"`
}

var errorCodes = map[int]string{
	fiber.StatusBadRequest:          "BAD_REQUEST",
	fiber.StatusUnauthorized:        "UNAUTHORIZED",
	fiber.StatusForbidden:           "FORBIDDEN",
	fiber.StatusNotFound:            "NOT_FOUND",
	fiber.StatusConflict:            "CONFLICT",
	fiber.StatusUnprocessableEntity: "VALIDATION_ERROR",
}

// ErrorHandler turns every error escaping a handler into the JSON
// error envelope. Unexpected errors are logged with the trace ID that
// the client receives, so reports can be matched to server logs.
func ErrorHandler(c *fiber.Ctx, err error) error {
	traceID := uuid.New().String()[:8]

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		code, ok := errorCodes[fiberErr.Code]
		if !ok {
			code = "ERROR"
		}
		return c.Status(fiberErr.Code).JSON(ErrorResponse{
			Code:    code,
			Message: fiberErr.Message,
			TraceID: traceID,
		})
	}

	log.Printf("[%s] %s %s: %v", traceID, c.Method(), c.Path(), err)

	return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
		Code:    "INTERNAL_ERROR",
		Message: "Internal server error",
		TraceID: traceID,
	})
}

func BadRequest(message string) *fiber.Error {
	return fiber.NewError(fiber.StatusBadRequest, message)
}

func Unauthorized(message string) *fiber.Error {
	return fiber.NewError(fiber.StatusUnauthorized, message)
}

func Forbidden(message string) *fiber.Error {
	return fiber.NewError(fiber.StatusForbidden, message)
}

func NotFound(message string) *fiber.Error {
	return fiber.NewError(fiber.StatusNotFound, message)
}

func Conflict(message string) *fiber.Error {
	return fiber.NewError(fiber.StatusConflict, message)
}
