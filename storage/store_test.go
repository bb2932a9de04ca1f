package storage

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/haneulssam/classnote-backend/config"
	"github.com/haneulssam/classnote-backend/models"
)

func setupStore(t *testing.T) *Store {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, config.Migrate(db))
	return NewStore(db)
}

func mustCreateStudent(t *testing.T, store *Store, name, number string) *models.Student {
	t.Helper()
	student := &models.Student{
		Name:          name,
		StudentNumber: number,
		ClassRoom:     "5학년 7반",
		IsActive:      true,
	}
	require.NoError(t, store.CreateStudent(student))
	return student
}

func TestGetAllStudentsExcludesInactive(t *testing.T) {
	store := setupStore(t)

	kim := mustCreateStudent(t, store, "김철수", "50702")
	mustCreateStudent(t, store, "이영희", "50701")

	require.NoError(t, store.DeleteStudent(kim.ID))

	students, err := store.GetAllStudents()
	require.NoError(t, err)
	require.Len(t, students, 1)
	assert.Equal(t, "이영희", students[0].Name)

	// 소프트 삭제라 행 자체는 남아 있다
	deleted, err := store.GetStudent(kim.ID)
	require.NoError(t, err)
	assert.False(t, deleted.IsActive)
}

func TestGetAllStudentsOrderedByStudentNumber(t *testing.T) {
	store := setupStore(t)

	mustCreateStudent(t, store, "박민수", "50703")
	mustCreateStudent(t, store, "이영희", "50701")
	mustCreateStudent(t, store, "김철수", "50702")

	students, err := store.GetAllStudents()
	require.NoError(t, err)
	require.Len(t, students, 3)
	assert.Equal(t, "50701", students[0].StudentNumber)
	assert.Equal(t, "50702", students[1].StudentNumber)
	assert.Equal(t, "50703", students[2].StudentNumber)
}

func TestCreateStudentDuplicateNumber(t *testing.T) {
	store := setupStore(t)

	mustCreateStudent(t, store, "김철수", "50701")
	err := store.CreateStudent(&models.Student{
		Name:          "김영수",
		StudentNumber: "50701",
		IsActive:      true,
	})
	require.Error(t, err)
	assert.True(t, IsDuplicate(err))
}

func TestCreateBulkStudentsPartialFailure(t *testing.T) {
	store := setupStore(t)

	// 같은 아이디를 미리 점유해 둔다
	require.NoError(t, store.CreateUser(&models.User{
		Username: "student2",
		Password: "hashed",
		Role:     models.RoleStudent,
		Name:     "기존 학생",
	}))

	rows := []BulkStudentRow{
		{Name: "이영희", StudentNumber: "50701", Username: "student1", HashedPassword: "h1"},
		{Name: "김철수", StudentNumber: "50702", Username: "student2", HashedPassword: "h2"},
		{Name: "박민수", StudentNumber: "50703", Username: "student3", HashedPassword: "h3"},
	}
	created, failed := store.CreateBulkStudents(rows, "5학년 7반")

	require.Len(t, created, 2)
	require.Len(t, failed, 1)
	assert.Equal(t, 1, failed[0].Index)
	assert.Equal(t, "student2", failed[0].Username)

	// 성공한 행은 User와 Student가 모두 연결돼 있어야 한다
	student, err := store.GetStudentByUserID(created[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "이영희", student.Name)
	assert.Equal(t, "5학년 7반", student.ClassRoom)
}

func TestUpdateUserPasswordNotFound(t *testing.T) {
	store := setupStore(t)

	err := store.UpdateUserPassword(uuid.New(), "hashed")
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
}

func TestDuplicateRecordSlot(t *testing.T) {
	store := setupStore(t)
	student := mustCreateStudent(t, store, "김철수", "50701")

	first := &models.LearningRecord{
		StudentID: student.ID,
		Subject:   "수학",
		Content:   "분수의 나눗셈",
		Week:      3,
	}
	require.NoError(t, store.CreateLearningRecord(first))

	dup := &models.LearningRecord{
		StudentID: student.ID,
		Subject:   "수학",
		Content:   "다른 내용",
		Week:      3,
	}
	err := store.CreateLearningRecord(dup)
	require.Error(t, err)
	assert.True(t, IsDuplicate(err))

	// 다른 주차는 허용
	other := &models.LearningRecord{
		StudentID: student.ID,
		Subject:   "수학",
		Content:   "소수의 곱셈",
		Week:      4,
	}
	require.NoError(t, store.CreateLearningRecord(other))
}

func TestLearningRecordQueries(t *testing.T) {
	store := setupStore(t)
	kim := mustCreateStudent(t, store, "김철수", "50701")
	lee := mustCreateStudent(t, store, "이영희", "50702")

	seed := []models.LearningRecord{
		{StudentID: kim.ID, Subject: "수학", Content: "3주차 수학", Week: 3, DayOfWeek: "월"},
		{StudentID: kim.ID, Subject: "수학", Content: "4주차 수학", Week: 4, DayOfWeek: "화"},
		{StudentID: kim.ID, Subject: "국어", Content: "3주차 국어", Week: 3, DayOfWeek: "월"},
		{StudentID: lee.ID, Subject: "수학", Content: "3주차 수학", Week: 3, DayOfWeek: "수"},
	}
	for i := range seed {
		require.NoError(t, store.CreateLearningRecord(&seed[i]))
	}

	// 학생별: 주차 내림차순
	records, err := store.GetLearningRecordsByStudent(kim.ID)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, 4, records[0].Week)

	// 주차별: 학생 정보 포함
	records, err = store.GetLearningRecordsByWeek(3)
	require.NoError(t, err)
	require.Len(t, records, 3)
	for _, r := range records {
		require.NotNil(t, r.Student)
	}

	// 주차 + 요일
	records, err = store.GetLearningRecordsByWeekAndDay(3, "월")
	require.NoError(t, err)
	assert.Len(t, records, 2)

	// 학생 + 주차, 요일 생략 시 주차 전체
	records, err = store.GetLearningRecordsByStudentWeekAndDay(kim.ID, 3, "")
	require.NoError(t, err)
	assert.Len(t, records, 2)

	records, err = store.GetLearningRecordsByStudentWeekAndDay(kim.ID, 3, "월")
	require.NoError(t, err)
	assert.Len(t, records, 2)

	// 평어 생성용: 주차 오름차순
	records, err = store.GetLearningRecordsByStudentAndSubject(kim.ID, "수학")
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, 3, records[0].Week)
	assert.Equal(t, 4, records[1].Week)

	// 기록 없는 조합은 빈 슬라이스
	records, err = store.GetLearningRecordsByStudentAndSubject(lee.ID, "과학")
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestUpdateLearningRecordRefreshesUpdatedAt(t *testing.T) {
	store := setupStore(t)
	student := mustCreateStudent(t, store, "김철수", "50701")

	record := &models.LearningRecord{
		StudentID: student.ID,
		Subject:   "과학",
		Content:   "식물의 구조",
		Week:      2,
	}
	require.NoError(t, store.CreateLearningRecord(record))

	time.Sleep(10 * time.Millisecond)

	now := time.Now()
	updated, err := store.UpdateLearningRecord(record.ID, map[string]interface{}{
		"is_submitted": true,
		"submitted_at": now,
	})
	require.NoError(t, err)
	assert.True(t, updated.IsSubmitted)
	require.NotNil(t, updated.SubmittedAt)
	assert.True(t, updated.UpdatedAt.After(updated.CreatedAt))
}

func TestCountStudentsWithRecords(t *testing.T) {
	store := setupStore(t)
	kim := mustCreateStudent(t, store, "김철수", "50701")
	lee := mustCreateStudent(t, store, "이영희", "50702")

	seed := []models.LearningRecord{
		{StudentID: kim.ID, Subject: "수학", Content: "c", Week: 5},
		{StudentID: kim.ID, Subject: "국어", Content: "c", Week: 5},
		{StudentID: lee.ID, Subject: "수학", Content: "c", Week: 5},
		{StudentID: lee.ID, Subject: "수학", Content: "c", Week: 6},
	}
	for i := range seed {
		require.NoError(t, store.CreateLearningRecord(&seed[i]))
	}

	// 같은 학생의 여러 기록은 한 명으로 센다
	count, err := store.CountStudentsWithRecords(5)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	count, err = store.CountStudentsWithRecords(6)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	count, err = store.CountStudentsWithRecords(7)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestEvaluationsOrderedByNewest(t *testing.T) {
	store := setupStore(t)
	student := mustCreateStudent(t, store, "김철수", "50701")

	first := &models.Evaluation{
		StudentID: student.ID, Subject: "수학", Content: "첫 평어",
		GeneratedBy: models.GeneratedByAI, PeriodStart: 1, PeriodEnd: 3,
	}
	require.NoError(t, store.CreateEvaluation(first))
	time.Sleep(10 * time.Millisecond)
	second := &models.Evaluation{
		StudentID: student.ID, Subject: "국어", Content: "둘째 평어",
		GeneratedBy: models.GeneratedByAI, PeriodStart: 1, PeriodEnd: 3,
	}
	require.NoError(t, store.CreateEvaluation(second))

	evaluations, err := store.GetEvaluationsByStudent(student.ID)
	require.NoError(t, err)
	require.Len(t, evaluations, 2)
	assert.Equal(t, "둘째 평어", evaluations[0].Content)
}

func TestDeleteWeeklyMaterialNotFound(t *testing.T) {
	store := setupStore(t)

	err := store.DeleteWeeklyMaterial(uuid.New())
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
}
