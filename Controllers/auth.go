package Controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"Checklist/Models"
	"Checklist/middleware"
)

// AuthController opens and closes observer sessions.
type AuthController struct {
	Secret string
	TTL    time.Duration
	Now    func() time.Time
}

func NewAuthController(secret string, ttl time.Duration) *AuthController {
	return &AuthController{Secret: secret, TTL: ttl, Now: time.Now}
}

// Login requires both the observer and the supervisor name.
func (c *AuthController) Login(ctx *fiber.Ctx) error {
	var input Models.Session
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Por favor, preencha todos os campos.", "error": err.Error()})
	}
	session, err := Models.NewSession(input.Observer, input.Supervisor)
	if err != nil {
		return respondError(ctx, err)
	}

	now := c.Now()
	token, err := middleware.IssueToken(session, c.Secret, now, c.TTL)
	if err != nil {
		return respondError(ctx, err)
	}
	ctx.Cookie(&fiber.Cookie{
		Name:     middleware.CookieName,
		Value:    token,
		Expires:  now.Add(c.TTL),
		HTTPOnly: true,
		SameSite: "Lax",
	})
	return ctx.JSON(fiber.Map{"message": "success", "session": session})
}

func (c *AuthController) Logout(ctx *fiber.Ctx) error {
	ctx.Cookie(&fiber.Cookie{
		Name:     middleware.CookieName,
		Value:    "",
		Expires:  c.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: "Lax",
	})
	return ctx.JSON(fiber.Map{"message": "success"})
}

// Session returns the logged-in observer and supervisor.
func (c *AuthController) Session(ctx *fiber.Ctx) error {
	s, err := middleware.CurrentSession(ctx)
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.JSON(s)
}
