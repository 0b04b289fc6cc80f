package Controllers

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"Checklist/Models"
	"Checklist/Upload"
	"Checklist/middleware"
)

type PDFRenderer interface {
	RenderPDF(rec *Models.ChecklistRecord) ([]byte, error)
}

type Submitter interface {
	Submit(ctx context.Context, p Upload.Payload) (*Upload.Response, error)
}

// ChecklistController renders checklists and hands them to the Drive
// upload.
type ChecklistController struct {
	Renderer PDFRenderer
	Uploader Submitter
	Log      *zap.Logger
	Now      func() time.Time
}

func NewChecklistController(renderer PDFRenderer, uploader Submitter, log *zap.Logger) *ChecklistController {
	return &ChecklistController{Renderer: renderer, Uploader: uploader, Log: log, Now: time.Now}
}

// load parses a record and applies the caller's session to it.
func (c *ChecklistController) load(ctx *fiber.Ctx) (*Models.ChecklistRecord, error) {
	session, err := middleware.CurrentSession(ctx)
	if err != nil {
		return nil, err
	}
	rec, err := parseRecord(ctx)
	if err != nil {
		return nil, err
	}
	rec.ApplySession(session)
	return rec, nil
}

// prepare stamps and validates a loaded record for rendering.
func prepare(rec *Models.ChecklistRecord, now time.Time) error {
	if rec.InspectedAt.IsZero() {
		rec.InspectedAt = now
	}
	if !rec.HasChecklistType() {
		return Models.MissingChecklistType()
	}
	return Models.Validate(rec)
}

// Preview returns the PDF without uploading it.
func (c *ChecklistController) Preview(ctx *fiber.Ctx) error {
	rec, err := c.load(ctx)
	if err != nil {
		return respondError(ctx, err)
	}
	if err := prepare(rec, c.Now()); err != nil {
		return respondError(ctx, err)
	}
	pdf, err := c.Renderer.RenderPDF(rec)
	if err != nil {
		c.Log.Warn("rendering preview", zap.String("placa", rec.Plate), zap.Error(err))
		return respondError(ctx, err)
	}
	ctx.Set(fiber.HeaderContentType, "application/pdf")
	ctx.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`inline; filename="%s.pdf"`, orDefault(rec.Plate, "checklist")))
	return ctx.Send(pdf)
}

// Submit renders the checklist and uploads it.
func (c *ChecklistController) Submit(ctx *fiber.Ctx) error {
	rec, err := c.load(ctx)
	if err != nil {
		return respondError(ctx, err)
	}
	key := Upload.SubmissionKey(rec)
	now := c.Now()
	if err := prepare(rec, now); err != nil {
		return respondError(ctx, err)
	}
	pdf, err := c.Renderer.RenderPDF(rec)
	if err != nil {
		c.Log.Warn("rendering checklist", zap.String("placa", rec.Plate), zap.Error(err))
		return respondError(ctx, err)
	}

	payload := Upload.BuildPayload(rec, pdf, now)
	payload.Key = key
	if _, err := c.Uploader.Submit(ctx.UserContext(), payload); err != nil {
		c.Log.Error("uploading checklist", zap.String("file", payload.FileName), zap.Error(err))
		return respondError(ctx, err)
	}

	c.Log.Info("checklist uploaded",
		zap.String("file", payload.FileName),
		zap.String("observer", rec.Observer),
		zap.Int("bytes", len(pdf)))
	return ctx.JSON(fiber.Map{
		"message":  "Checklist salvo no Google Drive com sucesso!",
		"fileName": payload.FileName,
	})
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
