package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCurrentWeek(t *testing.T) {
	epoch := time.Date(2024, 8, 22, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		now  time.Time
		want int
	}{
		{"시작일 다음날은 1주차", epoch.AddDate(0, 0, 1), 1},
		{"7일째까지 1주차", epoch.AddDate(0, 0, 7), 1},
		{"8일째부터 2주차", epoch.AddDate(0, 0, 8), 2},
		{"14일째는 2주차", epoch.AddDate(0, 0, 14), 2},
		{"15일째는 3주차", epoch.AddDate(0, 0, 15), 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CurrentWeek(epoch, tt.now))
		})
	}
}
