package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/haneulssam/classnote-backend/config"
	"github.com/haneulssam/classnote-backend/models"
	"github.com/haneulssam/classnote-backend/services"
	"github.com/haneulssam/classnote-backend/storage"
)

// 미들웨어가 컨텍스트에 넣어둔 의존성 꺼내기

func getStore(c *gin.Context) *storage.Store {
	return c.MustGet("store").(*storage.Store)
}

func getConfig(c *gin.Context) *config.AppConfig {
	return c.MustGet("cfg").(*config.AppConfig)
}

func getGenerator(c *gin.Context) services.EvaluationGenerator {
	return c.MustGet("evalgen").(services.EvaluationGenerator)
}

func callerID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.GetString("user_id"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "인증이 필요합니다."})
		return uuid.Nil, false
	}
	return id, true
}

func isStudent(c *gin.Context) bool {
	return c.GetString("role") == string(models.RoleStudent)
}

// resolveOwnStudent는 학생 계정에 연결된 Student를 찾는다.
// 없으면 404를 내려보내고 false를 돌려준다.
func resolveOwnStudent(c *gin.Context, store *storage.Store) (*models.Student, bool) {
	uid, ok := callerID(c)
	if !ok {
		return nil, false
	}
	student, err := store.GetStudentByUserID(uid)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "학생 정보를 찾을 수 없습니다."})
		return nil, false
	}
	return student, true
}
