package controllers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/haneulssam/classnote-backend/models"
	"github.com/haneulssam/classnote-backend/storage"
)

// GetStudents는 활성 학생을 학번순으로 돌려준다. (교사 전용)
func GetStudents(c *gin.Context) {
	store := getStore(c)

	students, err := store.GetAllStudents()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "학생 목록 조회 실패"})
		return
	}
	c.JSON(http.StatusOK, students)
}

type CreateStudentInput struct {
	Name          string `json:"name"`
	StudentNumber string `json:"studentNumber"`
	ClassRoom     string `json:"classRoom"`
}

func CreateStudent(c *gin.Context) {
	store := getStore(c)
	cfg := getConfig(c)

	var input CreateStudentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "입력이 올바르지 않습니다."})
		return
	}
	if strings.TrimSpace(input.Name) == "" || strings.TrimSpace(input.StudentNumber) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "이름과 학번은 필수입니다."})
		return
	}
	if input.ClassRoom == "" {
		input.ClassRoom = cfg.DefaultClassRoom
	}

	student := models.Student{
		Name:          strings.TrimSpace(input.Name),
		StudentNumber: strings.TrimSpace(input.StudentNumber),
		ClassRoom:     input.ClassRoom,
		IsActive:      true,
	}
	if err := store.CreateStudent(&student); err != nil {
		if storage.IsDuplicate(err) {
			c.JSON(http.StatusConflict, gin.H{"message": "이미 등록된 학번입니다."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "학생 생성 실패"})
		return
	}

	c.JSON(http.StatusCreated, student)
}

type UpdateStudentInput struct {
	Name          *string `json:"name"`
	StudentNumber *string `json:"studentNumber"`
	ClassRoom     *string `json:"classRoom"`
	IsActive      *bool   `json:"isActive"`
}

func UpdateStudent(c *gin.Context) {
	store := getStore(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "잘못된 학생 ID입니다."})
		return
	}

	var input UpdateStudentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "입력이 올바르지 않습니다."})
		return
	}

	updates := map[string]interface{}{}
	if input.Name != nil {
		updates["name"] = *input.Name
	}
	if input.StudentNumber != nil {
		updates["student_number"] = *input.StudentNumber
	}
	if input.ClassRoom != nil {
		updates["class_room"] = *input.ClassRoom
	}
	if input.IsActive != nil {
		updates["is_active"] = *input.IsActive
	}
	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "수정할 내용이 없습니다."})
		return
	}

	student, err := store.UpdateStudent(id, updates)
	if err != nil {
		if storage.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"message": "학생을 찾을 수 없습니다."})
			return
		}
		if storage.IsDuplicate(err) {
			c.JSON(http.StatusConflict, gin.H{"message": "이미 등록된 학번입니다."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "학생 정보 수정 실패"})
		return
	}

	c.JSON(http.StatusOK, student)
}

// DeleteStudent는 소프트 삭제다. 학습 기록과 평어는 남는다.
func DeleteStudent(c *gin.Context) {
	store := getStore(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "잘못된 학생 ID입니다."})
		return
	}
	if err := store.DeleteStudent(id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "학생 삭제 실패"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "학생이 삭제되었습니다."})
}

type BulkStudentInput struct {
	Name          string `json:"name"`
	StudentNumber string `json:"studentNumber"`
	Username      string `json:"username"`
	Password      string `json:"password"`
}

type BulkCreateInput struct {
	Students []BulkStudentInput `json:"students"`
}

// BulkCreateStudents는 행마다 User + Student를 만든다.
// 형식이 틀린 행이 하나라도 있으면 저장 전에 전체를 거부한다.
// 저장 단계 실패(학번/아이디 중복 등)는 해당 행만 실패로 보고하고 계속 진행한다.
func BulkCreateStudents(c *gin.Context) {
	store := getStore(c)
	cfg := getConfig(c)

	var input BulkCreateInput
	if err := c.ShouldBindJSON(&input); err != nil || len(input.Students) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "학생 목록이 필요합니다."})
		return
	}

	// 저장 전 전체 검증: 네 필드 모두 비어 있으면 안 된다
	rows := make([]storage.BulkStudentRow, 0, len(input.Students))
	for i, s := range input.Students {
		name := strings.TrimSpace(s.Name)
		number := strings.TrimSpace(s.StudentNumber)
		username := strings.TrimSpace(s.Username)
		password := strings.TrimSpace(s.Password)
		if name == "" || number == "" || username == "" || password == "" {
			c.JSON(http.StatusBadRequest, gin.H{
				"message": fmt.Sprintf("%d번째 행의 입력이 올바르지 않습니다.", i+1),
			})
			return
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "비밀번호를 처리할 수 없습니다."})
			return
		}
		rows = append(rows, storage.BulkStudentRow{
			Name:           name,
			StudentNumber:  number,
			Username:       username,
			HashedPassword: string(hashed),
		})
	}

	created, failed := store.CreateBulkStudents(rows, cfg.DefaultClassRoom)

	c.JSON(http.StatusCreated, gin.H{
		"created": created,
		"failed":  failed,
	})
}

type ResetPasswordInput struct {
	NewPassword string `json:"newPassword"`
}

// ResetStudentPassword는 학생에 연결된 User의 비밀번호를 초기화한다.
func ResetStudentPassword(c *gin.Context) {
	store := getStore(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "잘못된 학생 ID입니다."})
		return
	}

	var input ResetPasswordInput
	if err := c.ShouldBindJSON(&input); err != nil || strings.TrimSpace(input.NewPassword) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "새 비밀번호가 필요합니다."})
		return
	}

	student, err := store.GetStudent(id)
	if err != nil || student.UserID == nil {
		// 학생이 없는 경우와 계정 미연결을 구분해 노출하지 않는다
		c.JSON(http.StatusNotFound, gin.H{"message": "학생을 찾을 수 없습니다."})
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "비밀번호를 처리할 수 없습니다."})
		return
	}

	if err := store.UpdateUserPassword(*student.UserID, string(hashed)); err != nil {
		if storage.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"message": "사용자 계정을 찾을 수 없습니다."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "비밀번호 초기화 실패"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "비밀번호가 성공적으로 초기화되었습니다."})
}
