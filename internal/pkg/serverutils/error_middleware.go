package serverutils

import (
	"log"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware converts errors that escape the controllers into a
// uniform JSON body instead of Fiber's default plain-text response.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		code := fiber.StatusInternalServerError
		if fiberErr, ok := err.(*fiber.Error); ok {
			code = fiberErr.Code
		}

		log.Printf("[HTTP] %s %s -> %d: %v", ctx.Method(), ctx.Path(), code, err)
		return ctx.Status(code).JSON(ErrorResponse(code, err.Error()))
	}
}
