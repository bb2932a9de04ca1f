package main

import (
	"log"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/haneulssam/classnote-backend/config"
	"github.com/haneulssam/classnote-backend/routes"
	"github.com/haneulssam/classnote-backend/services"
	"github.com/haneulssam/classnote-backend/storage"
)

func main() {
	// Load .env
	if err := godotenv.Load(); err != nil {
		log.Println(".env 파일이 없습니다. 환경변수를 직접 사용합니다.")
	}

	cfg := config.Load()

	db, err := config.InitDB()
	if err != nil {
		log.Fatal("DB 초기화 실패: ", err)
	}

	store := storage.NewStore(db)
	generator := services.NewGeminiGenerator()

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173", "http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.SetupRouter(r, db, store, cfg, generator)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Println("Server running on port " + port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal("서버 실행 실패: ", err)
	}
}
