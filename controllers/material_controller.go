package controllers

import (
	"encoding/json"
	"log"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/haneulssam/classnote-backend/models"
	"github.com/haneulssam/classnote-backend/services"
	"github.com/haneulssam/classnote-backend/storage"
	"github.com/haneulssam/classnote-backend/utils"
)

const maxMaterialFileSize = 10 * 1024 * 1024 // 10MB

// GetWeeklyMaterials는 주간학습 안내 목록을 주차 내림차순으로 돌려준다.
func GetWeeklyMaterials(c *gin.Context) {
	store := getStore(c)

	materials, err := store.GetAllWeeklyMaterials()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "주간학습 자료 조회 실패"})
		return
	}
	c.JSON(http.StatusOK, materials)
}

// UploadWeeklyMaterial은 multipart 폼으로 자료를 등록한다. (교사 전용)
// PDF 첨부가 있으면 본문을 추출하고 Gemini로 교과목을 뽑는다.
func UploadWeeklyMaterial(c *gin.Context) {
	store := getStore(c)

	uid, ok := callerID(c)
	if !ok {
		return
	}

	title := strings.TrimSpace(c.PostForm("title"))
	weekStr := c.PostForm("week")
	startDate := c.PostForm("startDate")
	endDate := c.PostForm("endDate")
	if title == "" || weekStr == "" || startDate == "" || endDate == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "모든 필드를 입력해주세요."})
		return
	}
	week, err := strconv.Atoi(weekStr)
	if err != nil || week < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "주차가 올바르지 않습니다."})
		return
	}

	material := models.WeeklyMaterial{
		Title:      title,
		Week:       week,
		StartDate:  startDate,
		EndDate:    endDate,
		UploadedBy: uid,
	}

	// 시간표는 JSON 문자열 폼 필드로 함께 올릴 수 있다
	if ttStr := c.PostForm("timetable"); ttStr != "" {
		var tt models.Timetable
		if err := json.Unmarshal([]byte(ttStr), &tt); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "시간표 형식이 올바르지 않습니다."})
			return
		}
		material.Timetable = datatypes.NewJSONType(tt)
	}

	if file, err := c.FormFile("file"); err == nil {
		if file.Size > maxMaterialFileSize {
			c.JSON(http.StatusBadRequest, gin.H{"message": "파일은 10MB를 넘을 수 없습니다."})
			return
		}

		if strings.EqualFold(filepath.Ext(file.Filename), ".pdf") {
			src, err := file.Open()
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"message": "파일을 열 수 없습니다."})
				return
			}
			content, err := services.ExtractTextFromPDF(src)
			src.Close()
			if err != nil {
				// 추출 실패해도 업로드 자체는 계속한다
				log.Println("PDF 추출 실패:", err)
			} else {
				material.Content = content
				material.Subjects = datatypes.NewJSONSlice(services.ExtractSubjects(c.Request.Context(), content))
			}
		}

		material.ID = uuid.New()
		publicURL, err := utils.UploadMaterialToSupabase(file, material.ID.String())
		if err != nil {
			log.Println("Supabase 업로드 실패:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "주간학습 자료 업로드 실패"})
			return
		}
		material.FilePath = publicURL
	}

	if err := store.CreateWeeklyMaterial(&material); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "주간학습 자료 업로드 실패"})
		return
	}

	c.JSON(http.StatusCreated, material)
}

// DeleteWeeklyMaterial은 첨부 파일을 먼저 지우고 DB 행을 물리 삭제한다.
// 파일 삭제는 best-effort: 파일이 없어도 행 삭제는 진행한다.
func DeleteWeeklyMaterial(c *gin.Context) {
	store := getStore(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "잘못된 자료 ID입니다."})
		return
	}

	material, err := store.GetWeeklyMaterial(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "자료를 찾을 수 없습니다."})
		return
	}

	if material.FilePath != "" {
		if err := utils.DeleteFileFromSupabase(material.FilePath); err != nil {
			log.Println("첨부 파일 삭제 실패:", err)
		}
	}

	if err := store.DeleteWeeklyMaterial(id); err != nil {
		if storage.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"message": "자료를 찾을 수 없습니다."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "자료 삭제 실패"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "자료가 삭제되었습니다."})
}

// GetTimetable은 주차별 시간표를 돌려준다.
// 저장된 시간표가 없으면 에러 대신 설정의 기본 시간표를 내려준다.
func GetTimetable(c *gin.Context) {
	store := getStore(c)
	cfg := getConfig(c)

	week, err := strconv.Atoi(c.Param("week"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "주차가 올바르지 않습니다."})
		return
	}

	material, err := store.GetWeeklyMaterialByWeek(week)
	if err != nil || len(material.Timetable.Data()) == 0 {
		c.JSON(http.StatusOK, gin.H{
			"week":      week,
			"timetable": cfg.FallbackTimetable,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"week":      material.Week,
		"timetable": material.Timetable.Data(),
	})
}
