package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	GeneratedByAI     = "ai"
	GeneratedByManual = "manual"
)

// 생활기록부 평어. 교사가 수정하면 generatedBy가 "manual"로 바뀐다.
type Evaluation struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	StudentID   uuid.UUID `gorm:"type:uuid;not null" json:"studentId"`
	Student     *Student  `gorm:"foreignKey:StudentID" json:"student,omitempty"`
	Subject     string    `gorm:"size:50;not null" json:"subject"`
	Content     string    `gorm:"type:text;not null" json:"content"`
	GeneratedBy string    `gorm:"size:20;default:'ai'" json:"generatedBy"`
	PeriodStart int       `gorm:"not null" json:"periodStart"` // 주차
	PeriodEnd   int       `gorm:"not null" json:"periodEnd"`
	CreatedBy   uuid.UUID `gorm:"type:uuid" json:"createdBy"`
	Creator     *User     `gorm:"foreignKey:CreatedBy" json:"-"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (e *Evaluation) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
