package util

import (
	"errors"
	"fmt"
	"runtime/debug"

	"github.com/gofiber/fiber/v2"
	"github.com/lifewood/careers-api/internal/config"
)

// FormError carries per-field validation messages alongside a summary.
type FormError struct {
	Errors  map[string]string
	Message string
}

func (e *FormError) Error() string {
	return fmt.Sprintf("form error: %s", e.Message)
}

func NewFormError(message string, errs map[string]string) *FormError {
	return &FormError{
		Message: message,
		Errors:  errs,
	}
}

type errorBody struct {
	Error      string            `json:"error"`
	Fields     map[string]string `json:"fields,omitempty"`
	DevMessage string            `json:"dev_message,omitempty"`
	Trace      string            `json:"trace,omitempty"`
}

// ErrorResponse sends the {"error": ...} envelope the dashboard client
// expects. Internal detail and a stack trace ride along outside
// production only.
func ErrorResponse(c *fiber.Ctx, code int, message string, errs ...error) error {
	body := errorBody{Error: message}
	if len(errs) > 0 && errs[0] != nil {
		var formErr *FormError
		if errors.As(errs[0], &formErr) {
			body.Fields = formErr.Errors
		} else if config.LoadAppConfig().Env != "production" {
			body.DevMessage = errs[0].Error()
			body.Trace = string(debug.Stack())
		}
	}
	if code == 0 {
		code = fiber.StatusInternalServerError
	}
	return c.Status(code).JSON(body)
}
