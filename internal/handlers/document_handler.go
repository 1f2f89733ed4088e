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

type DocumentHandler struct {
	docRepo repositories.DocumentRepository
	logger  *zap.Logger
}

func NewDocumentHandler(docRepo repositories.DocumentRepository, logger *zap.Logger) *DocumentHandler {
	return &DocumentHandler{
		docRepo: docRepo,
		logger:  logger,
	}
}

// HandleGetDocument handles GET /documents/:id
func (h *DocumentHandler) HandleGetDocument(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, "Invalid document ID format")
	}

	doc, err := h.docRepo.FindByID(c.UserContext(), id)
	return h.respond(c, doc, err, zap.String("document_id", id.String()))
}

// HandleFindDocument handles GET /documents?filePath=
func (h *DocumentHandler) HandleFindDocument(c *fiber.Ctx) error {
	filePath := strings.TrimSpace(c.Query("filePath"))
	if filePath == "" {
		return writeError(c, fiber.StatusBadRequest, "filePath query parameter is required")
	}

	doc, err := h.docRepo.FindByPath(c.UserContext(), filePath)
	return h.respond(c, doc, err, zap.String("file_path", filePath))
}

func (h *DocumentHandler) respond(c *fiber.Ctx, doc *models.Document, err error, field zap.Field) error {
	if err != nil {
		if errors.Is(err, repositories.ErrDocumentNotFound) {
			return writeError(c, fiber.StatusNotFound, "Document not found")
		}
		h.logger.Error("failed to load document", field, zap.Error(err))
		return writeError(c, fiber.StatusInternalServerError, "failed to load document")
	}

	return c.JSON(doc)
}
