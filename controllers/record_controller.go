package controllers

import (
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/haneulssam/classnote-backend/models"
	"github.com/haneulssam/classnote-backend/storage"
	"github.com/haneulssam/classnote-backend/ws"
)

// GetLearningRecords는 학습 기록 목록을 돌려준다.
// 학생 계정은 studentId 쿼리와 무관하게 항상 자기 기록만 본다.
func GetLearningRecords(c *gin.Context) {
	store := getStore(c)

	if isStudent(c) {
		student, ok := resolveOwnStudent(c, store)
		if !ok {
			return
		}
		records, err := store.GetLearningRecordsByStudent(student.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "학습 기록 조회 실패"})
			return
		}
		c.JSON(http.StatusOK, records)
		return
	}

	// 교사: studentId가 있으면 해당 학생, 없으면 전체
	if studentIDStr := c.Query("studentId"); studentIDStr != "" {
		studentID, err := uuid.Parse(studentIDStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "잘못된 학생 ID입니다."})
			return
		}
		records, err := store.GetLearningRecordsByStudent(studentID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "학습 기록 조회 실패"})
			return
		}
		c.JSON(http.StatusOK, records)
		return
	}

	records, err := store.GetAllLearningRecords()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "학습 기록 조회 실패"})
		return
	}
	c.JSON(http.StatusOK, records)
}

type CreateRecordInput struct {
	StudentID        string `json:"studentId"`
	WeeklyMaterialID string `json:"weeklyMaterialId"`
	Subject          string `json:"subject"`
	Content          string `json:"content"`
	Reflection       string `json:"reflection"`
	Week             int    `json:"week"`
	DayOfWeek        string `json:"dayOfWeek"`
	IsSubmitted      *bool  `json:"isSubmitted"`
}

// CreateLearningRecord는 학습 기록을 저장한다.
// 학생 계정이 보낸 studentId는 무시하고 서버가 본인 Student로 바꿔 넣는다.
func CreateLearningRecord(c *gin.Context) {
	store := getStore(c)

	var input CreateRecordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "입력이 올바르지 않습니다."})
		return
	}

	var studentID uuid.UUID
	if isStudent(c) {
		student, ok := resolveOwnStudent(c, store)
		if !ok {
			return
		}
		studentID = student.ID
	} else {
		parsed, err := uuid.Parse(input.StudentID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "필수 정보가 누락되었습니다."})
			return
		}
		if _, err := store.GetStudent(parsed); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"message": "학생을 찾을 수 없습니다."})
			return
		}
		studentID = parsed
	}

	if strings.TrimSpace(input.Subject) == "" || strings.TrimSpace(input.Content) == "" || input.Week < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "필수 정보가 누락되었습니다."})
		return
	}

	record := models.LearningRecord{
		StudentID:  studentID,
		Subject:    input.Subject,
		Content:    input.Content,
		Reflection: input.Reflection,
		Week:       input.Week,
		DayOfWeek:  input.DayOfWeek,
	}
	if input.WeeklyMaterialID != "" {
		if materialID, err := uuid.Parse(input.WeeklyMaterialID); err == nil {
			record.WeeklyMaterialID = &materialID
		}
	}

	// 기본은 바로 제출. isSubmitted=false로 보내면 임시 저장된다.
	if input.IsSubmitted == nil || *input.IsSubmitted {
		now := time.Now()
		record.IsSubmitted = true
		record.SubmittedAt = &now
	}

	if err := store.CreateLearningRecord(&record); err != nil {
		if storage.IsDuplicate(err) {
			c.JSON(http.StatusConflict, gin.H{"message": "해당 과목의 학습 기록이 이미 있습니다."})
			return
		}
		log.Println("학습 기록 저장 실패:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "학습 기록 저장 실패"})
		return
	}

	ws.BroadcastRecordsChanged()
	c.JSON(http.StatusCreated, record)
}

type UpdateRecordInput struct {
	Content     *string    `json:"content"`
	Reflection  *string    `json:"reflection"`
	DayOfWeek   *string    `json:"dayOfWeek"`
	IsSubmitted *bool      `json:"isSubmitted"`
	SubmittedAt *time.Time `json:"submittedAt"`
}

// UpdateLearningRecord는 기록을 부분 수정한다. updatedAt은 자동 갱신된다.
// 학생은 자기 기록만 고칠 수 있다. 남의 기록은 존재 여부도 알려주지 않는다.
func UpdateLearningRecord(c *gin.Context) {
	store := getStore(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "잘못된 기록 ID입니다."})
		return
	}

	record, err := store.GetLearningRecord(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "학습 기록을 찾을 수 없습니다."})
		return
	}

	if isStudent(c) {
		student, ok := resolveOwnStudent(c, store)
		if !ok {
			return
		}
		if record.StudentID != student.ID {
			c.JSON(http.StatusNotFound, gin.H{"message": "학습 기록을 찾을 수 없습니다."})
			return
		}
	}

	var input UpdateRecordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "입력이 올바르지 않습니다."})
		return
	}

	updates := map[string]interface{}{}
	if input.Content != nil {
		if strings.TrimSpace(*input.Content) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"message": "학습 내용은 비울 수 없습니다."})
			return
		}
		updates["content"] = *input.Content
	}
	if input.Reflection != nil {
		updates["reflection"] = *input.Reflection
	}
	if input.DayOfWeek != nil {
		updates["day_of_week"] = *input.DayOfWeek
	}
	if input.IsSubmitted != nil {
		updates["is_submitted"] = *input.IsSubmitted
		if *input.IsSubmitted {
			if input.SubmittedAt != nil {
				updates["submitted_at"] = *input.SubmittedAt
			} else if record.SubmittedAt == nil {
				updates["submitted_at"] = time.Now()
			}
		}
	}
	if len(updates) == 0 {
		c.JSON(http.StatusOK, record)
		return
	}

	updated, err := store.UpdateLearningRecord(id, updates)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "학습 기록 수정 실패"})
		return
	}

	ws.BroadcastRecordsChanged()
	c.JSON(http.StatusOK, updated)
}

// GetWeeklyRecords는 주차(+요일) 단위 조회다.
// 학생 계정은 항상 본인 기록으로 제한된다.
func GetWeeklyRecords(c *gin.Context) {
	store := getStore(c)

	weekStr := c.Query("week")
	if weekStr == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "주차 정보가 필요합니다."})
		return
	}
	week, err := strconv.Atoi(weekStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "주차가 올바르지 않습니다."})
		return
	}
	dayOfWeek := c.Query("dayOfWeek")

	var studentID uuid.UUID
	hasStudent := false
	if isStudent(c) {
		student, ok := resolveOwnStudent(c, store)
		if !ok {
			return
		}
		studentID = student.ID
		hasStudent = true
	} else if studentIDStr := c.Query("studentId"); studentIDStr != "" {
		parsed, err := uuid.Parse(studentIDStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "잘못된 학생 ID입니다."})
			return
		}
		studentID = parsed
		hasStudent = true
	}

	var records []models.LearningRecord
	switch {
	case hasStudent:
		records, err = store.GetLearningRecordsByStudentWeekAndDay(studentID, week, dayOfWeek)
	case dayOfWeek != "":
		records, err = store.GetLearningRecordsByWeekAndDay(week, dayOfWeek)
	default:
		records, err = store.GetLearningRecordsByWeek(week)
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "주간 학습 기록 조회 실패"})
		return
	}
	c.JSON(http.StatusOK, records)
}

// GetDailySummary는 교사용 일자별 종합 조회다. 학생 정보가 함께 내려간다.
func GetDailySummary(c *gin.Context) {
	store := getStore(c)

	weekStr := c.Query("week")
	if weekStr == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "주차 정보가 필요합니다."})
		return
	}
	week, err := strconv.Atoi(weekStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "주차가 올바르지 않습니다."})
		return
	}

	var records []models.LearningRecord
	if dayOfWeek := c.Query("dayOfWeek"); dayOfWeek != "" {
		records, err = store.GetLearningRecordsByWeekAndDay(week, dayOfWeek)
	} else {
		records, err = store.GetLearningRecordsByWeek(week)
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "일별 학습 기록 종합 조회 실패"})
		return
	}
	c.JSON(http.StatusOK, records)
}

// ExportLearningRecords는 학습 기록을 xlsx로 내려준다. (교사 전용)
// week 쿼리가 있으면 해당 주차만, 없으면 전체.
func ExportLearningRecords(c *gin.Context) {
	store := getStore(c)

	var records []models.LearningRecord
	var err error
	filename := "learning_records.xlsx"

	if weekStr := c.Query("week"); weekStr != "" {
		week, convErr := strconv.Atoi(weekStr)
		if convErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "주차가 올바르지 않습니다."})
			return
		}
		records, err = store.GetLearningRecordsByWeek(week)
		filename = fmt.Sprintf("learning_records_week%d.xlsx", week)
	} else {
		records, err = store.GetAllLearningRecords()
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "학습 기록 조회 실패"})
		return
	}

	f := excelize.NewFile()
	defer f.Close()
	sheet := "Sheet1"

	headers := []string{"학번", "이름", "과목", "주차", "요일", "학습 내용", "소감", "제출일"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	for row, record := range records {
		studentNumber, studentName := "", ""
		if record.Student != nil {
			studentNumber = record.Student.StudentNumber
			studentName = record.Student.Name
		}
		submittedAt := ""
		if record.SubmittedAt != nil {
			submittedAt = record.SubmittedAt.Format("2006-01-02 15:04")
		}

		values := []interface{}{
			studentNumber, studentName, record.Subject, record.Week,
			record.DayOfWeek, record.Content, record.Reflection, submittedAt,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	if err := f.Write(c.Writer); err != nil {
		log.Println("xlsx 내보내기 실패:", err)
	}
}
