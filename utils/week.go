package utils

import (
	"math"
	"time"
)

// CurrentWeek은 학기 시작일(epoch) 이후 몇 주차인지 계산한다.
// 시작일로부터 7일까지가 1주차 (일 단위 올림).
func CurrentWeek(epoch, now time.Time) int {
	days := now.Sub(epoch).Hours() / 24
	return int(math.Ceil(days / 7))
}
