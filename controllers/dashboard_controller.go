package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/haneulssam/classnote-backend/utils"
)

// GetDashboardStats는 교사 대시보드 요약 통계를 돌려준다.
func GetDashboardStats(c *gin.Context) {
	store := getStore(c)
	cfg := getConfig(c)

	currentWeek := utils.CurrentWeek(cfg.WeekEpoch, time.Now())

	totalStudents, err := store.CountActiveStudents()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "통계 조회 실패"})
		return
	}
	submittedThisWeek, err := store.CountStudentsWithRecords(currentWeek)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "통계 조회 실패"})
		return
	}
	evaluationsGenerated, err := store.CountEvaluations()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "통계 조회 실패"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"totalStudents":        totalStudents,
		"currentWeek":          currentWeek,
		"submittedThisWeek":    submittedThisWeek,
		"evaluationsGenerated": evaluationsGenerated,
	})
}
