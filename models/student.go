package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// 학생 명렬. 삭제는 isActive 플래그만 내린다 (소프트 삭제).
// 과거 학습 기록/평어가 학생을 참조하므로 물리 삭제하지 않는다.
type Student struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID        *uuid.UUID `gorm:"type:uuid" json:"userId,omitempty"`
	User          *User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Name          string     `gorm:"size:100;not null" json:"name"`
	StudentNumber string     `gorm:"size:20;uniqueIndex;not null" json:"studentNumber"`
	ClassRoom     string     `gorm:"size:50;not null" json:"classRoom"`
	IsActive      bool       `gorm:"default:true" json:"isActive"`
	CreatedAt     time.Time  `gorm:"autoCreateTime" json:"createdAt"`
}

func (s *Student) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
