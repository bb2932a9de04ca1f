package controllers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haneulssam/classnote-backend/models"
	"github.com/haneulssam/classnote-backend/storage"
)

func TestStudentRoutesRequireTeacher(t *testing.T) {
	env := newTestEnv(t)
	_, studentToken := env.newStudentAccount(t, "김철수", "50701", "student1")

	// 인증 없이 접근 불가
	w := env.do(t, http.MethodGet, "/api/students", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// 학생 계정은 교사 전용 라우트에 403
	w = env.do(t, http.MethodGet, "/api/students", studentToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = env.do(t, http.MethodPost, "/api/students", studentToken, payload{
		"name": "홍길동", "studentNumber": "50799",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestCreateStudentValidation(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.newTeacher(t, "teacher1")

	w := env.do(t, http.MethodPost, "/api/students", token, payload{
		"name": "  ", "studentNumber": "",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// classRoom을 생략하면 설정의 기본 학급이 들어간다
	w = env.do(t, http.MethodPost, "/api/students", token, payload{
		"name": "김철수", "studentNumber": "50701",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created models.Student
	decodeBody(t, w, &created)
	assert.Equal(t, env.cfg.DefaultClassRoom, created.ClassRoom)

	// 학번 중복은 409
	w = env.do(t, http.MethodPost, "/api/students", token, payload{
		"name": "김영수", "studentNumber": "50701",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestUpdateStudentNotFound(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.newTeacher(t, "teacher1")

	w := env.do(t, http.MethodPut, "/api/students/11111111-1111-1111-1111-111111111111", token, payload{
		"name": "이름",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteStudentIsSoft(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.newTeacher(t, "teacher1")
	student, _ := env.newStudentAccount(t, "김철수", "50701", "student1")

	w := env.do(t, http.MethodDelete, "/api/students/"+student.ID.String(), token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	// 목록에서는 빠지지만 행은 남는다
	w = env.do(t, http.MethodGet, "/api/students", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var students []models.Student
	decodeBody(t, w, &students)
	assert.Empty(t, students)

	kept, err := env.store.GetStudent(student.ID)
	require.NoError(t, err)
	assert.False(t, kept.IsActive)
}

func TestBulkCreateStudentsEmptyList(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.newTeacher(t, "teacher1")

	w := env.do(t, http.MethodPost, "/api/students/bulk", token, payload{
		"students": []payload{},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBulkCreateStudentsRejectsMalformedRowBeforePersisting(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.newTeacher(t, "teacher1")

	w := env.do(t, http.MethodPost, "/api/students/bulk", token, payload{
		"students": []payload{
			{"name": "이영희", "studentNumber": "50701", "username": "s1", "password": "pw"},
			{"name": "김철수", "studentNumber": "50702", "username": "  ", "password": "pw"},
		},
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "2번째")

	// 형식 오류가 있으면 아무 행도 저장되지 않는다
	count, err := env.store.CountActiveStudents()
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestBulkCreateStudentsPartialFailure(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.newTeacher(t, "teacher1")
	env.newStudentAccount(t, "기존 학생", "50700", "taken")

	w := env.do(t, http.MethodPost, "/api/students/bulk", token, payload{
		"students": []payload{
			{"name": "이영희", "studentNumber": "50701", "username": "s1", "password": "pw"},
			{"name": "김철수", "studentNumber": "50702", "username": "taken", "password": "pw"},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var result struct {
		Created []models.User          `json:"created"`
		Failed  []storage.BulkRowError `json:"failed"`
	}
	decodeBody(t, w, &result)
	require.Len(t, result.Created, 1)
	require.Len(t, result.Failed, 1)
	assert.Equal(t, "s1", result.Created[0].Username)
	assert.Equal(t, 1, result.Failed[0].Index)
	assert.Equal(t, "taken", result.Failed[0].Username)
}

func TestResetStudentPassword(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.newTeacher(t, "teacher1")
	student, _ := env.newStudentAccount(t, "김철수", "50701", "student1")

	// 새 비밀번호 누락
	w := env.do(t, http.MethodPost, "/api/students/"+student.ID.String()+"/reset-password", token, payload{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// 계정이 연결되지 않은 학생은 404
	orphan := &models.Student{Name: "계정 없음", StudentNumber: "50799", IsActive: true}
	require.NoError(t, env.store.CreateStudent(orphan))
	w = env.do(t, http.MethodPost, "/api/students/"+orphan.ID.String()+"/reset-password", token, payload{
		"newPassword": "newpw",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)

	// 정상 초기화 후 새 비밀번호로 로그인된다
	w = env.do(t, http.MethodPost, "/api/students/"+student.ID.String()+"/reset-password", token, payload{
		"newPassword": "newpw",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = env.do(t, http.MethodPost, "/api/auth/login", "", payload{
		"username": "student1", "password": "newpw",
	})
	assert.Equal(t, http.StatusOK, w.Code)
}
