package routes

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/dialtag/dialtag/internal/profile"
	"github.com/dialtag/dialtag/internal/session"
)

type loginRequest struct {
	ContactNumber string `json:"contactNumber"`
	Password      string `json:"password"`
}

// RegisterAuthRoutes wires login, logout and the session probe.
func RegisterAuthRoutes(r fiber.Router, profiles *profile.Service, sessions *session.Holder, rateLimiter fiber.Handler) {
	group := r.Group("/auth")

	login := func(c *fiber.Ctx) error {
		var req loginRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(http.StatusBadRequest, err.Error())
		}
		authed, err := profiles.Authenticate(c.UserContext(), req.ContactNumber, req.Password)
		if err != nil {
			if errors.Is(err, profile.ErrInvalidCredentials) {
				return fiber.NewError(http.StatusUnauthorized, err.Error())
			}
			return fiber.NewError(http.StatusInternalServerError, err.Error())
		}
		if err := sessions.Start(c.UserContext(), authed); err != nil {
			return fiber.NewError(http.StatusInternalServerError, err.Error())
		}
		return c.Status(http.StatusOK).JSON(toProfileResponse(authed))
	}

	if rateLimiter != nil {
		group.Post("/login", rateLimiter, login)
	} else {
		group.Post("/login", login)
	}

	group.Post("/logout", func(c *fiber.Ctx) error {
		if err := sessions.End(c.UserContext()); err != nil {
			return fiber.NewError(http.StatusInternalServerError, err.Error())
		}
		return c.Status(http.StatusOK).JSON(fiber.Map{"status": "logged_out"})
	})

	r.Get("/session", func(c *fiber.Ctx) error {
		current, active := sessions.Current()
		if !active {
			return c.Status(http.StatusOK).JSON(fiber.Map{"authenticated": false})
		}
		return c.Status(http.StatusOK).JSON(fiber.Map{
			"authenticated": true,
			"profile":       toProfileResponse(current),
		})
	})
}
