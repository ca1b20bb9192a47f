package handlers

import (
	"errors"
	"net/url"

	"github.com/ahmetcoskunkizilkaya/water-leak-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/water-leak-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type ReportHandler struct {
	reportService *services.ReportService
}

func NewReportHandler(reportService *services.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// CreateReport handles POST /api/reports.
func (h *ReportHandler) CreateReport(c *fiber.Ctx) error {
	// Bodies that are not JSON are treated as an empty form.
	var req dto.CreateReportRequest
	if len(c.Body()) > 0 && c.Is("json") {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: "Invalid request body",
			})
		}
	}

	result, err := h.reportService.Submit(c.UserContext(), &req)
	if err != nil {
		if services.IsValidation(err) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: err.Error(),
			})
		}
		captureError(c, err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: "Failed to submit report",
		})
	}

	return c.JSON(dto.CreateReportResponse{
		Message:  "Report submitted successfully and notification sent",
		ReportID: result.Report.ID,
	})
}

// GetStatus handles GET /api/reports/status/:contact.
func (h *ReportHandler) GetStatus(c *fiber.Ctx) error {
	contact := c.Params("contact")
	if decoded, err := url.PathUnescape(contact); err == nil {
		contact = decoded
	}

	report, err := h.reportService.Status(c.UserContext(), contact)
	switch {
	case err == nil:
	case services.IsValidation(err):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: err.Error(),
		})
	case errors.Is(err, services.ErrNoReport):
		return c.JSON(dto.StatusResponse{
			Status:  "No report found",
			Message: "No report found for this contact number",
		})
	default:
		captureError(c, err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: "Database error",
		})
	}

	return c.JSON(dto.StatusResponse{
		ID:        report.ID,
		Status:    report.Status,
		CreatedAt: report.CreatedAtString(),
		Message:   "Report status: " + report.Status,
	})
}
