package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/SCMGuru254/tenderbridge-sub003/internal/models"
	"github.com/SCMGuru254/tenderbridge-sub003/internal/repositories"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

type ResultHandler struct {
	analysisRepo repositories.AnalysisRepository
	logger       *zap.Logger
}

func NewResultHandler(analysisRepo repositories.AnalysisRepository, logger *zap.Logger) *ResultHandler {
	return &ResultHandler{
		analysisRepo: analysisRepo,
		logger:       logger,
	}
}

// HandleGetAnalysis handles GET /analyses/:id
func (h *ResultHandler) HandleGetAnalysis(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, "Invalid analysis ID format")
	}

	record, err := h.analysisRepo.FindByID(c.UserContext(), id)
	if err != nil {
		if errors.Is(err, repositories.ErrAnalysisNotFound) {
			return writeError(c, fiber.StatusNotFound, "Analysis not found")
		}
		h.logger.Error("failed to load analysis", zap.String("analysis_id", id.String()), zap.Error(err))
		return writeError(c, fiber.StatusInternalServerError, "failed to load analysis")
	}

	response, err := toAnalysisResponse(record)
	if err != nil {
		h.logger.Error("stored analysis is corrupt", zap.String("analysis_id", id.String()), zap.Error(err))
		return writeError(c, fiber.StatusInternalServerError, "failed to load analysis")
	}

	return c.JSON(response)
}

// HandleListAnalyses handles GET /analyses?filePath=&limit=
func (h *ResultHandler) HandleListAnalyses(c *fiber.Ctx) error {
	filePath := strings.TrimSpace(c.Query("filePath"))
	if filePath == "" {
		return writeError(c, fiber.StatusBadRequest, "filePath query parameter is required")
	}

	limit := c.QueryInt("limit", defaultListLimit)
	if limit < 1 {
		return writeError(c, fiber.StatusBadRequest, "limit must be a positive integer")
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	records, err := h.analysisRepo.ListByFilePath(c.UserContext(), filePath, limit)
	if err != nil {
		h.logger.Error("failed to list analyses", zap.String("file_path", filePath), zap.Error(err))
		return writeError(c, fiber.StatusInternalServerError, "failed to list analyses")
	}

	items := make([]models.AnalysisResponse, 0, len(records))
	for i := range records {
		item, err := toAnalysisResponse(&records[i])
		if err != nil {
			h.logger.Warn("skipping corrupt analysis record",
				zap.String("analysis_id", records[i].ID.String()),
				zap.Error(err),
			)
			continue
		}
		items = append(items, item)
	}

	return c.JSON(models.AnalysisListResponse{
		FilePath: filePath,
		Count:    len(items),
		Items:    items,
	})
}

func toAnalysisResponse(record *models.Analysis) (models.AnalysisResponse, error) {
	result, err := record.Result()
	if err != nil {
		return models.AnalysisResponse{}, err
	}

	return models.AnalysisResponse{
		ID:                record.ID.String(),
		FilePath:          record.FilePath,
		Format:            record.Format,
		HasJobDescription: record.HasJobDescription,
		CreatedAt:         record.CreatedAt,
		Result:            &result,
	}, nil
}
