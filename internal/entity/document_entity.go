package entity

import (
	"time"

	"github.com/google/uuid"
)

// Document is an uploaded file owned by a user. The answer provider may consult
// any of the owner's processed documents as background knowledge.
type Document struct {
	Id               uuid.UUID
	UserId           uuid.UUID
	FileName         string
	FileType         string
	FilePath         string
	FileSize         int64
	ProcessingStatus string // pending, processing, completed, failed
	UploadedAt       time.Time
}
