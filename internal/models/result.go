package models

import (
	"time"

	"github.com/SCMGuru254/tenderbridge-sub003/internal/ats"
)

type UploadResponse struct {
	ID           string `json:"id"`
	Filename     string `json:"filename"`
	OriginalName string `json:"original_name"`
	FileType     string `json:"file_type"`
	FilePath     string `json:"file_path"`
}

type AnalyzeRequest struct {
	FilePath       string  `json:"filePath"`
	JobDescription *string `json:"jobDescription,omitempty"`
}

type AnalysisResponse struct {
	ID                string              `json:"id"`
	FilePath          string              `json:"filePath"`
	Format            string              `json:"format"`
	HasJobDescription bool                `json:"hasJobDescription"`
	CreatedAt         time.Time           `json:"createdAt"`
	Result            *ats.AnalysisResult `json:"result"`
}

type AnalysisListResponse struct {
	FilePath string             `json:"filePath"`
	Count    int                `json:"count"`
	Items    []AnalysisResponse `json:"items"`
}
