package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/haneulssam/classnote-backend/models"
	"github.com/haneulssam/classnote-backend/utils"
)

const authCookieMaxAge = 7 * 24 * 3600

// ====== INPUT STRUCTS ======
type RegisterInput struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required,min=4"`
	Name     string `json:"name" binding:"required"`
}

type LoginInput struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// ====== HANDLERS ======

// Register는 교사 계정을 만든다. 학생 계정은 교사가 일괄 생성으로 발급한다.
func Register(c *gin.Context) {
	store := getStore(c)
	cfg := getConfig(c)

	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "입력이 올바르지 않습니다."})
		return
	}

	// 아이디 중복 확인
	if _, err := store.GetUserByUsername(input.Username); err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "이미 사용 중인 아이디입니다."})
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "비밀번호를 처리할 수 없습니다."})
		return
	}

	newUser := models.User{
		Username:  input.Username,
		Password:  string(hashed),
		Role:      models.RoleTeacher,
		Name:      input.Name,
		ClassRoom: cfg.DefaultClassRoom,
	}
	if err := store.CreateUser(&newUser); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "계정 생성 실패"})
		return
	}

	token, err := utils.GenerateToken(newUser.ID.String(), string(newUser.Role))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "토큰 생성 실패"})
		return
	}
	c.SetCookie("auth_token", token, authCookieMaxAge, "/", "", false, true)

	c.JSON(http.StatusCreated, gin.H{
		"token": token,
		"user":  newUser,
	})
}

func Login(c *gin.Context) {
	store := getStore(c)

	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "입력이 올바르지 않습니다."})
		return
	}

	user, err := store.GetUserByUsername(input.Username)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "아이디 또는 비밀번호가 올바르지 않습니다."})
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "아이디 또는 비밀번호가 올바르지 않습니다."})
		return
	}

	token, err := utils.GenerateToken(user.ID.String(), string(user.Role))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "토큰 생성 실패"})
		return
	}

	// 세션 쿠키. SPA는 응답의 token을 Authorization 헤더로 써도 된다.
	c.SetCookie("auth_token", token, authCookieMaxAge, "/", "", false, true)

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  user,
	})
}

func Logout(c *gin.Context) {
	c.SetCookie("auth_token", "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "로그아웃 되었습니다."})
}

// Me는 현재 로그인한 계정 정보를 돌려준다.
func Me(c *gin.Context) {
	store := getStore(c)

	uid, ok := callerID(c)
	if !ok {
		return
	}
	user, err := store.GetUser(uid)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "사용자를 찾을 수 없습니다."})
		return
	}
	c.JSON(http.StatusOK, user)
}
