package routes

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/dialtag/dialtag/internal/profile"
	"github.com/dialtag/dialtag/internal/session"
)

type registerRequest struct {
	FullName           string `json:"fullName"`
	ContactNumber      string `json:"contactNumber"`
	EmergencyNumber    string `json:"emergencyNumber"`
	Password           string `json:"password"`
	ConfirmPassword    string `json:"confirmPassword"`
	AllowEmergencyCall bool   `json:"allowEmergencyCall"`
}

// profileResponse is the public shape of a profile. The secret hash never
// leaves the storage layer.
type profileResponse struct {
	ID                 string `json:"id"`
	FullName           string `json:"fullName"`
	ContactNumber      string `json:"contactNumber"`
	EmergencyNumber    string `json:"emergencyNumber"`
	AllowEmergencyCall bool   `json:"allowEmergencyCall"`
}

func toProfileResponse(p profile.Profile) profileResponse {
	return profileResponse{
		ID:                 p.ID,
		FullName:           p.FullName,
		ContactNumber:      p.ContactNumber,
		EmergencyNumber:    p.EmergencyNumber,
		AllowEmergencyCall: p.AllowEmergencyCall,
	}
}

// RegisterProfileRoutes wires registration and the owner's profile view.
// Registration starts a session right away, matching the mobile client's
// register-then-land-on-profile flow.
func RegisterProfileRoutes(r fiber.Router, profiles *profile.Service, sessions *session.Holder, logger *slog.Logger) {
	r.Post("/profiles/register", func(c *fiber.Ctx) error {
		var req registerRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(http.StatusBadRequest, err.Error())
		}
		created, err := profiles.Register(c.UserContext(), profile.RegisterInput{
			FullName:           req.FullName,
			ContactNumber:      req.ContactNumber,
			EmergencyNumber:    req.EmergencyNumber,
			Secret:             req.Password,
			ConfirmSecret:      req.ConfirmPassword,
			AllowEmergencyCall: req.AllowEmergencyCall,
		})
		if err != nil {
			if errors.Is(err, profile.ErrDuplicateContact) {
				return fiber.NewError(http.StatusConflict, err.Error())
			}
			return fiber.NewError(http.StatusBadRequest, err.Error())
		}
		if err := sessions.Start(c.UserContext(), created); err != nil {
			return fiber.NewError(http.StatusInternalServerError, err.Error())
		}
		if logger != nil {
			logger.Info("profile registered",
				slog.String("profile_id", created.ID),
				slog.Int("status", http.StatusCreated),
			)
		}
		return c.Status(http.StatusCreated).JSON(toProfileResponse(created))
	})

	r.Get("/profiles/me", func(c *fiber.Ctx) error {
		current, active := sessions.Current()
		if !active {
			return fiber.NewError(http.StatusUnauthorized, "no active session")
		}
		return c.Status(http.StatusOK).JSON(toProfileResponse(current))
	})
}
