package handlers

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/SCMGuru254/tenderbridge-sub003/internal/models"
	"github.com/SCMGuru254/tenderbridge-sub003/internal/repositories"
	"github.com/SCMGuru254/tenderbridge-sub003/internal/services"
)

type UploadHandler struct {
	docRepo        repositories.DocumentRepository
	storageService services.StorageService
	maxFileSize    int64
	logger         *zap.Logger
}

func NewUploadHandler(
	docRepo repositories.DocumentRepository,
	storageService services.StorageService,
	maxFileSize int64,
	logger *zap.Logger,
) *UploadHandler {
	return &UploadHandler{
		docRepo:        docRepo,
		storageService: storageService,
		maxFileSize:    maxFileSize,
		logger:         logger,
	}
}

// HandleUpload handles POST /documents
func (h *UploadHandler) HandleUpload(c *fiber.Ctx) error {
	cvFile, err := c.FormFile("cv")
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, "no CV uploaded. Please upload a PDF, DOCX or TXT file as 'cv'")
	}

	if cvFile.Size > h.maxFileSize {
		return writeError(c, fiber.StatusBadRequest,
			fmt.Sprintf("CV file too large. Max size: %d bytes", h.maxFileSize))
	}

	key, err := h.storageService.SaveFile(cvFile, "cv")
	if err != nil {
		if errors.Is(err, services.ErrUnsupportedFileType) {
			return writeError(c, fiber.StatusBadRequest, err.Error())
		}
		h.logger.Error("failed to save CV file", zap.String("original_name", cvFile.Filename), zap.Error(err))
		return writeError(c, fiber.StatusInternalServerError, "failed to save CV file")
	}

	now := time.Now()
	doc := models.Document{
		ID:               uuid.New(),
		Filename:         key,
		OriginalFileName: cvFile.Filename,
		FileType:         "cv",
		FilePath:         key,
		Size:             cvFile.Size,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := h.docRepo.Create(c.UserContext(), &doc); err != nil {
		// Cleanup uploaded file if database insert fails
		if delErr := h.storageService.DeleteFile(key); delErr != nil {
			h.logger.Warn("failed to remove orphaned upload", zap.String("file_path", key), zap.Error(delErr))
		}
		h.logger.Error("failed to save CV document record", zap.String("file_path", key), zap.Error(err))
		return writeError(c, fiber.StatusInternalServerError, "failed to save CV document record")
	}

	h.logger.Info("cv uploaded",
		zap.String("document_id", doc.ID.String()),
		zap.String("file_path", key),
		zap.Int64("size", doc.Size),
	)

	return c.Status(fiber.StatusCreated).JSON(models.UploadResponse{
		ID:           doc.ID.String(),
		Filename:     doc.Filename,
		OriginalName: doc.OriginalFileName,
		FileType:     doc.FileType,
		FilePath:     doc.FilePath,
	})
}
