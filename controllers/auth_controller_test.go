package controllers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndLogin(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/auth/register", "", payload{
		"username": "teacher1", "password": "secret", "name": "김선생",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var registered struct {
		Token string `json:"token"`
		User  struct {
			Username string `json:"username"`
			Role     string `json:"role"`
			Password string `json:"password"`
		} `json:"user"`
	}
	decodeBody(t, w, &registered)
	assert.NotEmpty(t, registered.Token)
	assert.Equal(t, "teacher", registered.User.Role)
	assert.Empty(t, registered.User.Password, "비밀번호 해시가 응답에 나가면 안 된다")
	require.NotNil(t, authCookie(w))

	// 같은 아이디로 재가입 불가
	w = env.do(t, http.MethodPost, "/api/auth/register", "", payload{
		"username": "teacher1", "password": "secret", "name": "박선생",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// 잘못된 비밀번호
	w = env.do(t, http.MethodPost, "/api/auth/login", "", payload{
		"username": "teacher1", "password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// 정상 로그인
	w = env.do(t, http.MethodPost, "/api/auth/login", "", payload{
		"username": "teacher1", "password": "secret",
	})
	require.Equal(t, http.StatusOK, w.Code)
	cookie := authCookie(w)
	require.NotNil(t, cookie)
	assert.NotEmpty(t, cookie.Value)
}

func TestMeWithCookieAuth(t *testing.T) {
	env := newTestEnv(t)
	user, token := env.newTeacher(t, "teacher1")

	// Authorization 헤더 없이 쿠키만으로 인증된다
	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.AddCookie(&http.Cookie{Name: "auth_token", Value: token})
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var me struct {
		Username string `json:"username"`
	}
	decodeBody(t, w, &me)
	assert.Equal(t, user.Username, me.Username)
}

func TestMeUnauthenticated(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/api/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogoutClearsCookie(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/auth/logout", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	cookie := authCookie(w)
	require.NotNil(t, cookie)
	assert.Empty(t, cookie.Value)
}
