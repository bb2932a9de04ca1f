package storage

import (
	"errors"
	"log"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/haneulssam/classnote-backend/models"
)

// Store는 엔티티 CRUD를 담당한다. main에서 한 번 만들어 주입한다.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// IsDuplicate는 유니크 제약 위반 여부를 판별한다.
// 드라이버가 에러 번역을 지원하지 않는 경우를 대비해 메시지도 확인한다.
func IsDuplicate(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "UNIQUE constraint")
}

// IsNotFound는 조회 결과 없음 여부를 판별한다.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// ====== User ======

func (s *Store) GetUser(id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Store) GetUserByUsername(username string) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "username = ?", username).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Store) CreateUser(user *models.User) error {
	return s.db.Create(user).Error
}

// UpdateUserPassword는 User 행의 비밀번호만 바꾼다.
func (s *Store) UpdateUserPassword(id uuid.UUID, hashedPassword string) error {
	res := s.db.Model(&models.User{}).Where("id = ?", id).Update("password", hashedPassword)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ====== Student ======

// GetAllStudents는 활성 학생만 학번 오름차순으로 돌려준다.
func (s *Store) GetAllStudents() ([]models.Student, error) {
	students := []models.Student{}
	err := s.db.Where("is_active = ?", true).Order("student_number asc").Find(&students).Error
	return students, err
}

func (s *Store) CountActiveStudents() (int64, error) {
	var count int64
	err := s.db.Model(&models.Student{}).Where("is_active = ?", true).Count(&count).Error
	return count, err
}

func (s *Store) GetStudent(id uuid.UUID) (*models.Student, error) {
	var student models.Student
	if err := s.db.First(&student, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &student, nil
}

func (s *Store) GetStudentByUserID(userID uuid.UUID) (*models.Student, error) {
	var student models.Student
	if err := s.db.First(&student, "user_id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &student, nil
}

func (s *Store) CreateStudent(student *models.Student) error {
	return s.db.Create(student).Error
}

// UpdateStudent는 전달된 필드만 부분 수정한다.
func (s *Store) UpdateStudent(id uuid.UUID, updates map[string]interface{}) (*models.Student, error) {
	res := s.db.Model(&models.Student{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return s.GetStudent(id)
}

// DeleteStudent는 isActive 플래그만 내린다. 기록/평어는 남는다.
func (s *Store) DeleteStudent(id uuid.UUID) error {
	return s.db.Model(&models.Student{}).Where("id = ?", id).Update("is_active", false).Error
}

// 일괄 생성 입력 행. 비밀번호는 핸들러에서 이미 해시된 상태다.
type BulkStudentRow struct {
	Name           string
	StudentNumber  string
	Username       string
	HashedPassword string
}

// 일괄 생성 실패 행
type BulkRowError struct {
	Index    int    `json:"index"`
	Username string `json:"username"`
	Error    string `json:"error"`
}

// CreateBulkStudents는 행마다 User를 만들고 Student를 연결한다.
// 한 행이 실패해도 나머지 행은 계속 처리한다 (행 단위 커밋, 전체 트랜잭션 없음).
func (s *Store) CreateBulkStudents(rows []BulkStudentRow, classRoom string) ([]models.User, []BulkRowError) {
	created := []models.User{}
	failed := []BulkRowError{}

	for i, row := range rows {
		user := models.User{
			Username:      row.Username,
			Password:      row.HashedPassword,
			Role:          models.RoleStudent,
			Name:          row.Name,
			StudentNumber: row.StudentNumber,
			ClassRoom:     classRoom,
		}
		if err := s.db.Create(&user).Error; err != nil {
			log.Printf("학생 계정 생성 실패 (%s): %v", row.Name, err)
			failed = append(failed, BulkRowError{Index: i, Username: row.Username, Error: err.Error()})
			continue
		}

		student := models.Student{
			UserID:        &user.ID,
			Name:          row.Name,
			StudentNumber: row.StudentNumber,
			ClassRoom:     classRoom,
			IsActive:      true,
		}
		if err := s.db.Create(&student).Error; err != nil {
			log.Printf("학생 명렬 생성 실패 (%s): %v", row.Name, err)
			failed = append(failed, BulkRowError{Index: i, Username: row.Username, Error: err.Error()})
			continue
		}

		created = append(created, user)
	}

	return created, failed
}

// ====== WeeklyMaterial ======

func (s *Store) GetAllWeeklyMaterials() ([]models.WeeklyMaterial, error) {
	materials := []models.WeeklyMaterial{}
	err := s.db.Order("week desc").Find(&materials).Error
	return materials, err
}

func (s *Store) GetWeeklyMaterial(id uuid.UUID) (*models.WeeklyMaterial, error) {
	var material models.WeeklyMaterial
	if err := s.db.First(&material, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &material, nil
}

func (s *Store) GetWeeklyMaterialByWeek(week int) (*models.WeeklyMaterial, error) {
	var material models.WeeklyMaterial
	if err := s.db.First(&material, "week = ?", week).Error; err != nil {
		return nil, err
	}
	return &material, nil
}

func (s *Store) CreateWeeklyMaterial(material *models.WeeklyMaterial) error {
	return s.db.Create(material).Error
}

// DeleteWeeklyMaterial은 DB 행을 물리 삭제한다. 첨부 파일 삭제는 핸들러에서 먼저 처리한다.
func (s *Store) DeleteWeeklyMaterial(id uuid.UUID) error {
	res := s.db.Delete(&models.WeeklyMaterial{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ====== LearningRecord ======

func (s *Store) GetLearningRecord(id uuid.UUID) (*models.LearningRecord, error) {
	var record models.LearningRecord
	if err := s.db.First(&record, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

func (s *Store) GetAllLearningRecords() ([]models.LearningRecord, error) {
	records := []models.LearningRecord{}
	err := s.db.Preload("Student").Order("week desc, created_at desc").Find(&records).Error
	return records, err
}

func (s *Store) GetLearningRecordsByStudent(studentID uuid.UUID) ([]models.LearningRecord, error) {
	records := []models.LearningRecord{}
	err := s.db.Where("student_id = ?", studentID).Order("week desc").Find(&records).Error
	return records, err
}

func (s *Store) GetLearningRecordsByWeek(week int) ([]models.LearningRecord, error) {
	records := []models.LearningRecord{}
	err := s.db.Preload("Student").Where("week = ?", week).Find(&records).Error
	return records, err
}

func (s *Store) GetLearningRecordsByWeekAndDay(week int, dayOfWeek string) ([]models.LearningRecord, error) {
	records := []models.LearningRecord{}
	err := s.db.Preload("Student").
		Where("week = ? AND day_of_week = ?", week, dayOfWeek).
		Find(&records).Error
	return records, err
}

// GetLearningRecordsByStudentWeekAndDay는 요일이 빈 문자열이면 주차 전체를 돌려준다.
func (s *Store) GetLearningRecordsByStudentWeekAndDay(studentID uuid.UUID, week int, dayOfWeek string) ([]models.LearningRecord, error) {
	records := []models.LearningRecord{}
	q := s.db.Where("student_id = ? AND week = ?", studentID, week)
	if dayOfWeek != "" {
		q = q.Where("day_of_week = ?", dayOfWeek)
	}
	err := q.Find(&records).Error
	return records, err
}

// GetLearningRecordsByStudentAndSubject는 평어 생성용으로 주차 오름차순 정렬한다.
func (s *Store) GetLearningRecordsByStudentAndSubject(studentID uuid.UUID, subject string) ([]models.LearningRecord, error) {
	records := []models.LearningRecord{}
	err := s.db.Where("student_id = ? AND subject = ?", studentID, subject).
		Order("week asc").Find(&records).Error
	return records, err
}

func (s *Store) CreateLearningRecord(record *models.LearningRecord) error {
	return s.db.Create(record).Error
}

// UpdateLearningRecord는 부분 수정하며 updatedAt이 갱신된다.
func (s *Store) UpdateLearningRecord(id uuid.UUID, updates map[string]interface{}) (*models.LearningRecord, error) {
	res := s.db.Model(&models.LearningRecord{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return s.GetLearningRecord(id)
}

// CountStudentsWithRecords는 해당 주차에 기록을 낸 학생 수를 센다.
func (s *Store) CountStudentsWithRecords(week int) (int64, error) {
	var count int64
	err := s.db.Model(&models.LearningRecord{}).
		Where("week = ?", week).
		Distinct("student_id").
		Count(&count).Error
	return count, err
}

// ====== Evaluation ======

func (s *Store) GetEvaluation(id uuid.UUID) (*models.Evaluation, error) {
	var evaluation models.Evaluation
	if err := s.db.First(&evaluation, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &evaluation, nil
}

func (s *Store) GetEvaluationsByStudent(studentID uuid.UUID) ([]models.Evaluation, error) {
	evaluations := []models.Evaluation{}
	err := s.db.Where("student_id = ?", studentID).Order("created_at desc").Find(&evaluations).Error
	return evaluations, err
}

func (s *Store) CreateEvaluation(evaluation *models.Evaluation) error {
	return s.db.Create(evaluation).Error
}

func (s *Store) UpdateEvaluation(id uuid.UUID, updates map[string]interface{}) (*models.Evaluation, error) {
	res := s.db.Model(&models.Evaluation{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return s.GetEvaluation(id)
}

func (s *Store) DeleteEvaluation(id uuid.UUID) error {
	return s.db.Delete(&models.Evaluation{}, "id = ?", id).Error
}

func (s *Store) CountEvaluations() (int64, error) {
	var count int64
	err := s.db.Model(&models.Evaluation{}).Count(&count).Error
	return count, err
}
