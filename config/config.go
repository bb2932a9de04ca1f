package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/haneulssam/classnote-backend/models"
)

// 애플리케이션 설정. main에서 한 번 만들어 핸들러에 주입한다.
type AppConfig struct {
	WeekEpoch         time.Time        // 학기 시작 기준일 (주차 계산용)
	DefaultClassRoom  string           // 학급 기본값
	FallbackTimetable models.Timetable // 저장된 시간표가 없을 때 내려줄 기본 시간표
}

// Load는 환경변수에서 설정을 읽는다.
// WEEK_EPOCH: 학기 시작일 (YYYY-MM-DD, 기본 2024-08-22)
// CLASS_ROOM: 학급 이름 (기본 "5학년 7반")
// TIMETABLE_FILE: 기본 시간표 JSON 파일 경로 (없으면 내장 시간표 사용)
func Load() *AppConfig {
	cfg := &AppConfig{
		WeekEpoch:         time.Date(2024, 8, 22, 0, 0, 0, 0, time.UTC),
		DefaultClassRoom:  "5학년 7반",
		FallbackTimetable: defaultTimetable(),
	}

	if v := os.Getenv("WEEK_EPOCH"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			log.Fatal("WEEK_EPOCH 형식이 잘못되었습니다 (YYYY-MM-DD): ", err)
		}
		cfg.WeekEpoch = t
	}
	if v := os.Getenv("CLASS_ROOM"); v != "" {
		cfg.DefaultClassRoom = v
	}
	if path := os.Getenv("TIMETABLE_FILE"); path != "" {
		tt, err := loadTimetableFile(path)
		if err != nil {
			log.Fatal("시간표 파일을 읽을 수 없습니다: ", err)
		}
		cfg.FallbackTimetable = tt
	}

	return cfg
}

// InitDB는 PostgreSQL에 연결하고 스키마를 마이그레이션한다.
func InitDB() (*gorm.DB, error) {
	dbHost := os.Getenv("DB_HOST")
	dbPort := os.Getenv("DB_PORT")
	dbUser := os.Getenv("DB_USER")
	dbPass := os.Getenv("DB_PASSWORD")
	dbName := os.Getenv("DB_NAME")

	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=Asia/Seoul",
		dbHost, dbUser, dbPass, dbName, dbPort,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Info),
		TranslateError: true, // 유니크 제약 위반을 gorm.ErrDuplicatedKey로 받기 위함
	})
	if err != nil {
		return nil, fmt.Errorf("데이터베이스 연결 실패: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("sql.DB를 가져올 수 없습니다: %w", err)
	}

	// Connection Pooling
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := Migrate(db); err != nil {
		return nil, err
	}

	log.Println("PostgreSQL connected & migrated successfully!")
	return db, nil
}

// Migrate는 모델 스키마를 AutoMigrate한다. 테스트에서도 같은 경로를 쓴다.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Student{},
		&models.WeeklyMaterial{},
		&models.LearningRecord{},
		&models.Evaluation{},
	)
	if err != nil {
		return fmt.Errorf("autoMigrate 실패: %w", err)
	}
	return nil
}
