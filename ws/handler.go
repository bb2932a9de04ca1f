package ws

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/haneulssam/classnote-backend/models"
	"github.com/haneulssam/classnote-backend/utils"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // 개발용. 운영에서는 origin을 제한할 것
	},
}

// HandleDashboardWebSocket은 교사 대시보드의 실시간 갱신 채널을 연다.
// 브라우저 WebSocket은 헤더를 못 보내므로 token 쿼리 파라미터로 인증한다.
func HandleDashboardWebSocket(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "인증이 필요합니다."})
		return
	}

	claims, err := utils.VerifyToken(token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "토큰이 유효하지 않거나 만료되었습니다."})
		return
	}
	if claims.Role != string(models.RoleTeacher) {
		c.JSON(http.StatusForbidden, gin.H{"message": "교사 권한이 필요합니다."})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Println("WebSocket 업그레이드 실패:", err)
		return
	}

	H.Register(conn)
}
