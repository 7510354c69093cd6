package middleware

import (
	"errors"
	"log/slog"
	"net/http"

	"productapi/internal/apperrors"

	"github.com/gofiber/fiber/v2"
)

// ErrorBody is the inner object of a normalized error response.
type ErrorBody struct {
	Name    string `json:"name"`
	Message string `json:"message"`
}

// ErrorResponse is the wire shape of every normalized error.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

const internalErrorMessage = "Internal Server Error"

// Normalize maps err to a status code and response body.
// Errors the application does not recognise become a bare 500; their text is never exposed.
func Normalize(err error) (int, ErrorResponse) {
	if typed, ok := apperrors.AsTyped(err); ok {
		return typed.StatusCode(), ErrorResponse{Error: ErrorBody{Name: typed.Name(), Message: typed.Error()}}
	}

	var fe *fiber.Error
	if errors.As(err, &fe) && fe.Code < http.StatusInternalServerError {
		return fe.Code, ErrorResponse{Error: ErrorBody{Name: fiberErrorName(fe.Code), Message: fe.Message}}
	}

	return http.StatusInternalServerError, ErrorResponse{Error: ErrorBody{Name: "Error", Message: internalErrorMessage}}
}

func fiberErrorName(code int) string {
	switch code {
	case http.StatusNotFound:
		return "NotFoundError"
	case http.StatusBadRequest:
		return "ValidationError"
	default:
		return "Error"
	}
}

// ErrorHandler returns the Fiber error handler that renders every error returned
// by a handler. Server-side faults are logged with their original message.
func ErrorHandler(logger *slog.Logger) fiber.ErrorHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return func(c *fiber.Ctx, err error) error {
		status, body := Normalize(err)
		if status >= http.StatusInternalServerError {
			logger.Error("request failed",
				"method", c.Method(),
				"path", c.Path(),
				"error", err,
			)
		}
		return c.Status(status).JSON(body)
	}
}
