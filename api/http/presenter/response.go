package presenter

import "github.com/gofiber/fiber/v2"

// Failure kinds serialized to clients. Internal error details never are.
const (
	KindValidation      = "validation"
	KindNotFound        = "not_found"
	KindConflict        = "conflict"
	KindUnauthenticated = "unauthenticated"
	KindUnauthorized    = "unauthorized"
	KindInternal        = "internal"
)

type ErrorResponse struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

func JSON(c *fiber.Ctx, status int, v any) error {
	return c.Status(status).JSON(v)
}

func Error(c *fiber.Ctx, status int, kind, message string) error {
	return JSON(c, status, ErrorResponse{Kind: kind, Message: message})
}
