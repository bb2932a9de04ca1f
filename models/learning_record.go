package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// 주간 학습 기록. 한 학생은 (과목, 주차)당 하나만 작성할 수 있다.
type LearningRecord struct {
	ID               uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	StudentID        uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_record_slot" json:"studentId"`
	Student          *Student   `gorm:"foreignKey:StudentID" json:"student,omitempty"`
	WeeklyMaterialID *uuid.UUID `gorm:"type:uuid" json:"weeklyMaterialId,omitempty"`
	Subject          string     `gorm:"size:50;not null;uniqueIndex:idx_record_slot" json:"subject"` // 국어, 수학, 과학, 사회 등
	Content          string     `gorm:"type:text;not null" json:"content"`
	Reflection       string     `gorm:"type:text" json:"reflection,omitempty"`
	Week             int        `gorm:"not null;uniqueIndex:idx_record_slot" json:"week"`
	DayOfWeek        string     `gorm:"size:5" json:"dayOfWeek,omitempty"` // "월"~"토"
	IsSubmitted      bool       `gorm:"default:false" json:"isSubmitted"`
	SubmittedAt      *time.Time `json:"submittedAt,omitempty"`
	CreatedAt        time.Time  `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt        time.Time  `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (r *LearningRecord) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
