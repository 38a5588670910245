package model

import (
	"time"

	"github.com/google/uuid"
)

type Document struct {
	Id               uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId           uuid.UUID `gorm:"type:uuid;not null;index"`
	FileName         string    `gorm:"type:text;not null"`
	FileType         string    `gorm:"type:varchar(50)"`
	FilePath         string    `gorm:"type:text"`
	FileSize         int64
	ProcessingStatus string    `gorm:"type:varchar(20);default:'pending'"`
	UploadedAt       time.Time `gorm:"autoCreateTime"`
}

func (Document) TableName() string {
	return "documents"
}
