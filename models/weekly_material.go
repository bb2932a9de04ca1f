package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// 시간표의 한 교시
type TimetablePeriod struct {
	Subject string `json:"subject"`
	Unit    string `json:"unit"`
	Topic   string `json:"topic"`
}

// 요일("월"~"토") → 교시("1"~"6") → 수업 내용
type Timetable map[string]map[string]TimetablePeriod

// 주간학습 안내 자료. 파일 삭제와 함께 물리 삭제된다.
type WeeklyMaterial struct {
	ID         uuid.UUID                     `gorm:"type:uuid;primaryKey" json:"id"`
	Title      string                        `gorm:"size:255;not null" json:"title"`
	Week       int                           `gorm:"not null" json:"week"`
	StartDate  string                        `gorm:"size:20;not null" json:"startDate"`
	EndDate    string                        `gorm:"size:20;not null" json:"endDate"`
	FilePath   string                        `gorm:"type:text" json:"filePath,omitempty"`
	Content    string                        `gorm:"type:text" json:"content,omitempty"` // PDF에서 추출한 텍스트
	Subjects   datatypes.JSONSlice[string]   `json:"subjects"`
	Timetable  datatypes.JSONType[Timetable] `json:"timetable"`
	UploadedBy uuid.UUID                     `gorm:"type:uuid" json:"uploadedBy"`
	Uploader   *User                         `gorm:"foreignKey:UploadedBy" json:"-"`
	CreatedAt  time.Time                     `gorm:"autoCreateTime" json:"createdAt"`
}

func (m *WeeklyMaterial) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
