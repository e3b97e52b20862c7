package routes

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/dialtag/dialtag/internal/tag"
)

// RegisterTagRoutes wires token resolution and the simulated scanner.
func RegisterTagRoutes(r fiber.Router, tags *tag.Service, scanner tag.TokenSource) {
	r.Get("/tags/:token", func(c *fiber.Ctx) error {
		view, err := tags.Resolve(c.UserContext(), c.Params("token"))
		if err != nil {
			return fiber.NewError(http.StatusInternalServerError, err.Error())
		}
		status := http.StatusOK
		if view.Kind == tag.KindNotFound {
			status = http.StatusNotFound
		}
		return c.Status(status).JSON(view)
	})

	// A scan attempt yields zero or one token; the token then goes through
	// the same resolution path as a directly supplied one.
	r.Post("/tags/scan", func(c *fiber.Ctx) error {
		token, err := scanner.Next(c.UserContext())
		if err != nil {
			switch {
			case errors.Is(err, tag.ErrNoTokenFound):
				return fiber.NewError(http.StatusNotFound, err.Error())
			case errors.Is(err, tag.ErrPermissionDenied):
				return fiber.NewError(http.StatusForbidden, err.Error())
			default:
				return fiber.NewError(http.StatusInternalServerError, err.Error())
			}
		}
		view, err := tags.Resolve(c.UserContext(), token)
		if err != nil {
			return fiber.NewError(http.StatusInternalServerError, err.Error())
		}
		return c.Status(http.StatusOK).JSON(fiber.Map{"token": token, "view": view})
	})
}
