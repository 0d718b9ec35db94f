package controller

import (
	"io"

	"docassist/internal/dto"
	"docassist/internal/entity"
	"docassist/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IDocumentController interface {
	RegisterRoutes(r fiber.Router)
	List(ctx *fiber.Ctx) error
	Upload(ctx *fiber.Ctx) error
	IngestDrive(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	Clear(ctx *fiber.Ctx) error
}

type documentController struct {
	documentService service.IDocumentService
}

func NewDocumentController(documentService service.IDocumentService) IDocumentController {
	return &documentController{
		documentService: documentService,
	}
}

func (c *documentController) RegisterRoutes(r fiber.Router) {
	r.Get("/documents", c.List)
	r.Post("/documents/clear", c.Clear)
	r.Delete("/documents/:id", c.Delete)
	r.Post("/upload", c.Upload)
	r.Post("/ingest/drive", c.IngestDrive)
}

func (c *documentController) List(ctx *fiber.Ctx) error {
	docs, err := c.documentService.List(ctx.UserContext())
	if err != nil {
		return err
	}
	return ctx.JSON(dto.ListDocumentsResponse{Documents: docs})
}

func (c *documentController) Upload(ctx *fiber.Ctx) error {
	form, err := ctx.MultipartForm()
	if err != nil {
		return fiber.NewError(fiber.StatusUnprocessableEntity, "files are required")
	}
	files := form.File["files"]
	if len(files) == 0 {
		return fiber.NewError(fiber.StatusUnprocessableEntity, "files are required")
	}

	uploaded := make([]dto.IngestedFileDTO, 0, len(files))
	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			return err
		}
		content, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return err
		}
		meta, err := c.documentService.Ingest(ctx.UserContext(), fh.Filename, content, entity.DocumentSourceUpload, "")
		if err != nil {
			return err
		}
		uploaded = append(uploaded, *meta)
	}
	return ctx.JSON(dto.UploadResponse{Uploaded: uploaded})
}

func (c *documentController) IngestDrive(ctx *fiber.Ctx) error {
	ingested, err := c.documentService.IngestDrive(ctx.UserContext())
	if err != nil {
		return err
	}
	return ctx.JSON(dto.IngestResponse{Ingested: ingested})
}

// Delete answers 200 with an error body for unknown ids, as the clients only refresh afterwards.
func (c *documentController) Delete(ctx *fiber.Ctx) error {
	removed, err := c.documentService.Delete(ctx.UserContext(), ctx.Params("id"))
	if err != nil {
		return err
	}
	if removed == nil {
		return ctx.JSON(dto.DeleteDocumentResponse{Error: "Document not found"})
	}
	return ctx.JSON(dto.DeleteDocumentResponse{Deleted: removed})
}

func (c *documentController) Clear(ctx *fiber.Ctx) error {
	n, err := c.documentService.Clear(ctx.UserContext())
	if err != nil {
		return err
	}
	return ctx.JSON(dto.ClearDocumentsResponse{Cleared: n})
}
