package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/haneulssam/classnote-backend/config"
	"github.com/haneulssam/classnote-backend/models"
	"github.com/haneulssam/classnote-backend/routes"
	"github.com/haneulssam/classnote-backend/services"
	"github.com/haneulssam/classnote-backend/storage"
	"github.com/haneulssam/classnote-backend/utils"
)

// 평어 생성기 목. 마지막 요청을 기억해 두고 고정 응답을 돌려준다.
type stubGenerator struct {
	result  string
	err     error
	lastReq services.EvaluationRequest
	calls   int
}

func (s *stubGenerator) Generate(_ context.Context, req services.EvaluationRequest) (string, error) {
	s.calls++
	s.lastReq = req
	if s.err != nil {
		return "", s.err
	}
	return s.result, nil
}

// 요청 본문 축약용
type payload = map[string]interface{}

type testEnv struct {
	router *gin.Engine
	store  *storage.Store
	cfg    *config.AppConfig
	gen    *stubGenerator
}

// newTestEnv는 in-memory SQLite 위에 전체 라우터를 띄운다.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, config.Migrate(db))

	store := storage.NewStore(db)
	cfg := config.Load()
	gen := &stubGenerator{result: "수업에 성실히 참여함."}

	r := gin.New()
	routes.SetupRouter(r, db, store, cfg, gen)

	return &testEnv{router: r, store: store, cfg: cfg, gen: gen}
}

// newTeacher는 교사 계정을 만들고 로그인 토큰을 돌려준다.
func (e *testEnv) newTeacher(t *testing.T, username string) (*models.User, string) {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.MinCost)
	require.NoError(t, err)

	user := &models.User{
		Username: username,
		Password: string(hashed),
		Role:     models.RoleTeacher,
		Name:     "담임 교사",
	}
	require.NoError(t, e.store.CreateUser(user))

	token, err := utils.GenerateToken(user.ID.String(), string(user.Role))
	require.NoError(t, err)
	return user, token
}

// newStudentAccount는 계정이 연결된 학생을 만들고 로그인 토큰을 돌려준다.
func (e *testEnv) newStudentAccount(t *testing.T, name, number, username string) (*models.Student, string) {
	t.Helper()
	user := &models.User{
		Username:      username,
		Password:      "hashed",
		Role:          models.RoleStudent,
		Name:          name,
		StudentNumber: number,
	}
	require.NoError(t, e.store.CreateUser(user))

	student := &models.Student{
		UserID:        &user.ID,
		Name:          name,
		StudentNumber: number,
		ClassRoom:     e.cfg.DefaultClassRoom,
		IsActive:      true,
	}
	require.NoError(t, e.store.CreateStudent(student))

	token, err := utils.GenerateToken(user.ID.String(), string(user.Role))
	require.NoError(t, err)
	return student, token
}

// do는 JSON 요청을 보낸다. token이 비어 있으면 인증 없이 보낸다.
func (e *testEnv) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out),
		"응답 본문: %s", w.Body.String())
}

func authCookie(w *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == "auth_token" {
			return c
		}
	}
	return nil
}
