package Controllers

import (
	"bytes"
	"context"
	"io"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"Checklist/Drafts"
	"Checklist/Models"
	"Checklist/middleware"
)

// DraftStore is the part of Drafts.Store the handlers use.
type DraftStore interface {
	Save(ctx context.Context, owner string, rec *Models.ChecklistRecord, now time.Time) (string, error)
	Get(ctx context.Context, owner, key string) (*Models.ChecklistRecord, error)
	List(ctx context.Context, owner string) ([]Drafts.Summary, error)
	Delete(ctx context.Context, owner, key string) error
	Export(ctx context.Context, owner string, loc *time.Location, w io.Writer) error
}

type DraftController struct {
	Store DraftStore
	Log   *zap.Logger
	Now   func() time.Time
}

func NewDraftController(store DraftStore, log *zap.Logger) *DraftController {
	return &DraftController{Store: store, Log: log, Now: time.Now}
}

// SaveDraft stores the posted form. The checklist type is not required yet.
func (c *DraftController) SaveDraft(ctx *fiber.Ctx) error {
	session, err := middleware.CurrentSession(ctx)
	if err != nil {
		return respondError(ctx, err)
	}
	rec, err := parseRecord(ctx)
	if err != nil {
		return respondError(ctx, err)
	}
	rec.ApplySession(session)
	if err := Models.Validate(rec); err != nil {
		return respondError(ctx, err)
	}

	key, err := c.Store.Save(ctx.UserContext(), session.Observer, rec, c.Now())
	if err != nil {
		c.Log.Error("saving draft", zap.Error(err))
		return respondError(ctx, err)
	}
	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Rascunho salvo!", "key": key})
}

// ListDrafts returns the session's drafts, newest first.
func (c *DraftController) ListDrafts(ctx *fiber.Ctx) error {
	session, err := middleware.CurrentSession(ctx)
	if err != nil {
		return respondError(ctx, err)
	}
	list, err := c.Store.List(ctx.UserContext(), session.Observer)
	if err != nil {
		c.Log.Error("listing drafts", zap.Error(err))
		return respondError(ctx, err)
	}
	return ctx.JSON(list)
}

func (c *DraftController) GetDraft(ctx *fiber.Ctx) error {
	session, err := middleware.CurrentSession(ctx)
	if err != nil {
		return respondError(ctx, err)
	}
	rec, err := c.Store.Get(ctx.UserContext(), session.Observer, ctx.Params("key"))
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.JSON(rec)
}

func (c *DraftController) DeleteDraft(ctx *fiber.Ctx) error {
	session, err := middleware.CurrentSession(ctx)
	if err != nil {
		return respondError(ctx, err)
	}
	if err := c.Store.Delete(ctx.UserContext(), session.Observer, ctx.Params("key")); err != nil {
		return respondError(ctx, err)
	}
	return ctx.JSON(fiber.Map{"message": "Rascunho excluído."})
}

// ExportDrafts downloads the session's drafts as a spreadsheet.
func (c *DraftController) ExportDrafts(ctx *fiber.Ctx) error {
	session, err := middleware.CurrentSession(ctx)
	if err != nil {
		return respondError(ctx, err)
	}
	var buf bytes.Buffer
	if err := c.Store.Export(ctx.UserContext(), session.Observer, time.Local, &buf); err != nil {
		c.Log.Error("exporting drafts", zap.Error(err))
		return respondError(ctx, err)
	}
	ctx.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="rascunhos.xlsx"`)
	return ctx.Send(buf.Bytes())
}
