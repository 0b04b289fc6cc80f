package Controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"Checklist/Drafts"
	"Checklist/Models"
	"Checklist/Report"
	"Checklist/Upload"
	"Checklist/middleware"
)

// respondError maps domain errors to a status and a message the form can
// show as is.
func respondError(ctx *fiber.Ctx, err error) error {
	status, message := fiber.StatusInternalServerError, "Erro interno ao processar a requisição."

	var (
		validation *Models.ValidationError
		malformed  *Models.MalformedDraftError
		transport  *Upload.TransportError
	)
	switch {
	case errors.As(err, &validation):
		status, message = fiber.StatusBadRequest, validation.Message()
	case errors.Is(err, middleware.ErrNotLoggedIn):
		status, message = fiber.StatusUnauthorized, "Not Logged In."
	case errors.Is(err, Drafts.ErrDraftNotFound):
		status, message = fiber.StatusNotFound, "Rascunho não encontrado."
	case errors.As(err, &malformed):
		status, message = fiber.StatusUnprocessableEntity, "Não foi possível carregar o rascunho."
	case errors.Is(err, Report.ErrInvalidImage):
		status, message = fiber.StatusUnprocessableEntity, "Imagem inválida."
	case errors.As(err, &transport):
		status, message = fiber.StatusBadGateway, transport.Message
	}

	return ctx.Status(status).JSON(fiber.Map{
		"message": message,
		"error":   err.Error(),
	})
}

// parseRecord decodes the request body into a checklist record.
func parseRecord(ctx *fiber.Ctx) (*Models.ChecklistRecord, error) {
	var rec Models.ChecklistRecord
	if err := ctx.BodyParser(&rec); err != nil {
		return nil, &Models.ValidationError{Fields: map[string]string{
			"body": "Dados do checklist inválidos.",
		}}
	}
	return &rec, nil
}
