package controller

import (
	"docassist/internal/dto"
	"docassist/internal/pkg/serverutils"
	"docassist/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IReportController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	Download(ctx *fiber.Ctx) error
}

type reportController struct {
	reportService service.IReportService
}

func NewReportController(reportService service.IReportService) IReportController {
	return &reportController{
		reportService: reportService,
	}
}

func (c *reportController) RegisterRoutes(r fiber.Router) {
	r.Post("/report", c.Create)
	r.Get("/reports/:id", c.Download)
}

func (c *reportController) Create(ctx *fiber.Ctx) error {
	var req dto.ReportRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.reportService.Build(ctx.UserContext(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *reportController) Download(ctx *fiber.Ctx) error {
	path, ok := c.reportService.Path(ctx.Params("id"))
	if !ok {
		return fiber.NewError(fiber.StatusNotFound, "Report not found")
	}
	return ctx.Download(path)
}
