package models

import (
	"time"
)

// Document is one published content document, stored as the raw JSON the authors wrote.
type Document struct {
	Locale   string    `json:"locale" gorm:"type:text;primaryKey"`
	Domain   string    `json:"domain" gorm:"type:text;primaryKey"`
	Body     string    `json:"body" gorm:"type:text;not null"`
	Checksum string    `json:"checksum" gorm:"type:text;not null"`
	MDate    time.Time `json:"mdate" gorm:"type:timestamp with time zone;not null;default:clock_timestamp()"`
}

func (Document) TableName() string {
	return "content_documents"
}
