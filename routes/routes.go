package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/haneulssam/classnote-backend/config"
	"github.com/haneulssam/classnote-backend/controllers"
	"github.com/haneulssam/classnote-backend/middleware"
	"github.com/haneulssam/classnote-backend/services"
	"github.com/haneulssam/classnote-backend/storage"
	"github.com/haneulssam/classnote-backend/ws"
)

// SetupRouter는 전체 API 라우트를 등록한다. 의존성은 미들웨어로 주입된다.
func SetupRouter(r *gin.Engine, db *gorm.DB, store *storage.Store, cfg *config.AppConfig, gen services.EvaluationGenerator) {
	r.Use(middleware.StoreMiddleware(store))
	r.Use(middleware.ConfigMiddleware(cfg))
	r.Use(middleware.GeneratorMiddleware(gen))

	auth := middleware.AuthMiddleware(db)
	teacherOnly := middleware.RequireTeacher()

	api := r.Group("/api")
	{
		authRoutes := api.Group("/auth")
		{
			authRoutes.POST("/register", controllers.Register)
			authRoutes.POST("/login", controllers.Login)
			authRoutes.POST("/logout", controllers.Logout)
			authRoutes.GET("/me", auth, controllers.Me)
		}

		students := api.Group("/students", auth, teacherOnly)
		{
			students.GET("", controllers.GetStudents)
			students.POST("", controllers.CreateStudent)
			students.PUT("/:id", controllers.UpdateStudent)
			students.DELETE("/:id", controllers.DeleteStudent)
			students.POST("/bulk", controllers.BulkCreateStudents)
			students.POST("/:id/reset-password", controllers.ResetStudentPassword)
		}

		materials := api.Group("/weekly-materials", auth)
		{
			materials.GET("", controllers.GetWeeklyMaterials)
			materials.POST("", teacherOnly, controllers.UploadWeeklyMaterial)
			materials.DELETE("/:id", teacherOnly, controllers.DeleteWeeklyMaterial)
			materials.GET("/timetable/:week", controllers.GetTimetable)
		}

		records := api.Group("/learning-records", auth)
		{
			records.GET("", controllers.GetLearningRecords)
			records.POST("", controllers.CreateLearningRecord)
			records.PUT("/:id", controllers.UpdateLearningRecord)
			records.GET("/weekly", controllers.GetWeeklyRecords)
			records.GET("/daily-summary", teacherOnly, controllers.GetDailySummary)
			records.GET("/export", teacherOnly, controllers.ExportLearningRecords)
		}

		evaluations := api.Group("/evaluations", auth)
		{
			evaluations.GET("", controllers.GetEvaluations)
			evaluations.POST("/generate", teacherOnly, controllers.GenerateEvaluation)
			evaluations.PUT("/:id", teacherOnly, controllers.UpdateEvaluation)
			evaluations.DELETE("/:id", teacherOnly, controllers.DeleteEvaluation)
		}

		api.GET("/dashboard/stats", auth, teacherOnly, controllers.GetDashboardStats)
	}

	// 웹소켓은 token 쿼리 파라미터로 자체 인증한다
	r.GET("/ws/dashboard", ws.HandleDashboardWebSocket)
}
