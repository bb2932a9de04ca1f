package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/haneulssam/classnote-backend/config"
	"github.com/haneulssam/classnote-backend/services"
	"github.com/haneulssam/classnote-backend/storage"
)

// 핸들러가 c.MustGet으로 꺼내 쓰도록 의존성을 컨텍스트에 넣는다.

func StoreMiddleware(store *storage.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("store", store)
		c.Next()
	}
}

func ConfigMiddleware(cfg *config.AppConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("cfg", cfg)
		c.Next()
	}
}

func GeneratorMiddleware(gen services.EvaluationGenerator) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("evalgen", gen)
		c.Next()
	}
}
