package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/SCMGuru254/tenderbridge-sub003/internal/models"
	"github.com/SCMGuru254/tenderbridge-sub003/internal/services"
)

type AnalyzeHandler struct {
	analyzer services.AnalyzerService
	logger   *zap.Logger
}

func NewAnalyzeHandler(analyzer services.AnalyzerService, logger *zap.Logger) *AnalyzeHandler {
	return &AnalyzeHandler{
		analyzer: analyzer,
		logger:   logger,
	}
}

// HandleAnalyze handles POST /ats/analyze
func (h *AnalyzeHandler) HandleAnalyze(c *fiber.Ctx) error {
	var req models.AnalyzeRequest

	// the body is JSON whatever the Content-Type header says
	if err := c.App().Config().JSONDecoder(c.Body(), &req); err != nil {
		return writeError(c, fiber.StatusBadRequest, "invalid request payload")
	}

	filePath := strings.TrimSpace(req.FilePath)
	if filePath == "" {
		return writeError(c, fiber.StatusBadRequest, "filePath is required")
	}

	var jobDescription string
	if req.JobDescription != nil {
		jobDescription = *req.JobDescription
	}

	outcome, err := h.analyzer.Analyze(c.UserContext(), services.AnalyzeInput{
		FilePath:       filePath,
		JobDescription: jobDescription,
	})
	if err != nil {
		status, message := analysisStatus(err)
		h.logger.Warn("analysis failed",
			zap.String("file_path", filePath),
			zap.Int("status", status),
			zap.String("request_id", requestID(c)),
			zap.Error(err),
		)
		return writeError(c, status, message)
	}

	if outcome.PersistErr != nil {
		h.logger.Warn("analysis returned without audit record",
			zap.String("file_path", filePath),
			zap.Bool("queued", outcome.PersistQueued),
			zap.String("request_id", requestID(c)),
		)
	}

	return c.Status(fiber.StatusOK).JSON(outcome.Result)
}

func requestID(c *fiber.Ctx) string {
	if id, ok := c.Locals("requestid").(string); ok {
		return id
	}
	return ""
}
