package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRole string

const (
	RoleTeacher UserRole = "teacher" // 교사 (학급 관리)
	RoleStudent UserRole = "student" // 학생
)

type User struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Username      string    `gorm:"size:100;uniqueIndex;not null" json:"username"`
	Password      string    `gorm:"type:text;not null" json:"-"`
	Role          UserRole  `gorm:"type:varchar(20);not null;default:'student'" json:"role"`
	Name          string    `gorm:"size:100;not null" json:"name"`
	StudentNumber string    `gorm:"size:20" json:"studentNumber,omitempty"`
	ClassRoom     string    `gorm:"size:50" json:"classRoom,omitempty"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
