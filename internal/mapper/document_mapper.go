package mapper

import (
	"askn7-backend/internal/entity"
	"askn7-backend/internal/model"
)

type DocumentMapper struct{}

func NewDocumentMapper() *DocumentMapper {
	return &DocumentMapper{}
}

func (m *DocumentMapper) ToEntity(d *model.Document) *entity.Document {
	if d == nil {
		return nil
	}

	return &entity.Document{
		Id:               d.Id,
		UserId:           d.UserId,
		FileName:         d.FileName,
		FileType:         d.FileType,
		FilePath:         d.FilePath,
		FileSize:         d.FileSize,
		ProcessingStatus: d.ProcessingStatus,
		UploadedAt:       d.UploadedAt,
	}
}

func (m *DocumentMapper) ToModel(d *entity.Document) *model.Document {
	if d == nil {
		return nil
	}

	return &model.Document{
		Id:               d.Id,
		UserId:           d.UserId,
		FileName:         d.FileName,
		FileType:         d.FileType,
		FilePath:         d.FilePath,
		FileSize:         d.FileSize,
		ProcessingStatus: d.ProcessingStatus,
		UploadedAt:       d.UploadedAt,
	}
}
