package controllers

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/haneulssam/classnote-backend/models"
	"github.com/haneulssam/classnote-backend/services"
	"github.com/haneulssam/classnote-backend/storage"
)

// GetEvaluations는 학생별 평어 목록을 최신순으로 돌려준다.
// 학생 계정은 본인 평어만 볼 수 있다.
func GetEvaluations(c *gin.Context) {
	store := getStore(c)

	var studentID uuid.UUID
	if isStudent(c) {
		student, ok := resolveOwnStudent(c, store)
		if !ok {
			return
		}
		studentID = student.ID
	} else {
		studentIDStr := c.Query("studentId")
		if studentIDStr == "" {
			c.JSON(http.StatusBadRequest, gin.H{"message": "학생 ID가 필요합니다."})
			return
		}
		parsed, err := uuid.Parse(studentIDStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "잘못된 학생 ID입니다."})
			return
		}
		studentID = parsed
	}

	evaluations, err := store.GetEvaluationsByStudent(studentID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "평어 조회 실패"})
		return
	}
	c.JSON(http.StatusOK, evaluations)
}

type GenerateEvaluationInput struct {
	StudentID   string `json:"studentId"`
	Subject     string `json:"subject"`
	PeriodStart *int   `json:"periodStart"`
	PeriodEnd   *int   `json:"periodEnd"`
}

// GenerateEvaluation은 학생의 과목별 학습 기록을 모아 Gemini로 평어를 만든다. (교사 전용)
// 기간을 지정하지 않으면 기록이 있는 주차의 최소~최대로 잡는다.
func GenerateEvaluation(c *gin.Context) {
	store := getStore(c)
	generator := getGenerator(c)

	uid, ok := callerID(c)
	if !ok {
		return
	}

	var input GenerateEvaluationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "입력이 올바르지 않습니다."})
		return
	}
	if input.StudentID == "" || strings.TrimSpace(input.Subject) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "학생 ID와 과목은 필수입니다."})
		return
	}
	studentID, err := uuid.Parse(input.StudentID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "잘못된 학생 ID입니다."})
		return
	}

	student, err := store.GetStudent(studentID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "학생을 찾을 수 없습니다."})
		return
	}

	records, err := store.GetLearningRecordsByStudentAndSubject(studentID, input.Subject)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "학습 기록 조회 실패"})
		return
	}
	if len(records) == 0 {
		// 기록이 없으면 평어 행을 만들지 않는다
		c.JSON(http.StatusBadRequest, gin.H{"message": "해당 과목의 학습 기록이 없습니다."})
		return
	}

	// 기록은 주차 오름차순으로 온다
	periodStart := records[0].Week
	periodEnd := records[len(records)-1].Week
	if input.PeriodStart != nil {
		periodStart = *input.PeriodStart
	}
	if input.PeriodEnd != nil {
		periodEnd = *input.PeriodEnd
	}

	summaries := make([]services.RecordSummary, 0, len(records))
	for _, record := range records {
		summaries = append(summaries, services.RecordSummary{
			Week:       record.Week,
			Content:    record.Content,
			Reflection: record.Reflection,
		})
	}

	content, err := generator.Generate(c.Request.Context(), services.EvaluationRequest{
		StudentName: student.Name,
		Subject:     input.Subject,
		Records:     summaries,
	})
	if err != nil {
		log.Println("평어 생성 실패:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "평어 생성 실패"})
		return
	}

	evaluation := models.Evaluation{
		StudentID:   studentID,
		Subject:     input.Subject,
		Content:     content,
		GeneratedBy: models.GeneratedByAI,
		PeriodStart: periodStart,
		PeriodEnd:   periodEnd,
		CreatedBy:   uid,
	}
	if err := store.CreateEvaluation(&evaluation); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "평어 저장 실패"})
		return
	}

	c.JSON(http.StatusCreated, evaluation)
}

type UpdateEvaluationInput struct {
	Content string `json:"content"`
}

// UpdateEvaluation은 평어 내용을 고친다. 교사가 손본 평어는 manual로 표시된다.
func UpdateEvaluation(c *gin.Context) {
	store := getStore(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "잘못된 평어 ID입니다."})
		return
	}

	var input UpdateEvaluationInput
	if err := c.ShouldBindJSON(&input); err != nil || strings.TrimSpace(input.Content) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "평어 내용이 필요합니다."})
		return
	}

	evaluation, err := store.UpdateEvaluation(id, map[string]interface{}{
		"content":      input.Content,
		"generated_by": models.GeneratedByManual,
	})
	if err != nil {
		if storage.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"message": "평어를 찾을 수 없습니다."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "평어 수정 실패"})
		return
	}

	c.JSON(http.StatusOK, evaluation)
}

func DeleteEvaluation(c *gin.Context) {
	store := getStore(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "잘못된 평어 ID입니다."})
		return
	}
	if err := store.DeleteEvaluation(id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "평어 삭제 실패"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "평어가 삭제되었습니다."})
}
