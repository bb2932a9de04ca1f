package config

import (
	"encoding/json"
	"os"

	"github.com/haneulssam/classnote-backend/models"
)

// loadTimetableFile은 JSON 파일에서 기본 시간표를 읽는다.
func loadTimetableFile(path string) (models.Timetable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var tt models.Timetable
	if err := json.Unmarshal(data, &tt); err != nil {
		return nil, err
	}
	return tt, nil
}

// defaultTimetable은 내장 기본 시간표를 만든다.
// 업로드된 주간학습 안내에 시간표가 없을 때 이 내용을 내려준다.
func defaultTimetable() models.Timetable {
	return models.Timetable{
		"월": {
			"1": {Subject: "국어", Unit: "문학", Topic: "작품을 읽고 느낌 나타내기"},
			"2": {Subject: "수학", Unit: "분수", Topic: "분수의 덧셈과 뺄셈"},
			"3": {Subject: "과학", Unit: "생태계", Topic: "생태계 구성 요소 알아보기"},
			"4": {Subject: "사회", Unit: "삼국통일", Topic: "신라의 삼국통일 과정"},
			"5": {Subject: "체육", Unit: "체력운동", Topic: "기초체력 기르기"},
			"6": {Subject: "음악", Unit: "노래부르기", Topic: "계이름으로 부르기"},
		},
		"화": {
			"1": {Subject: "수학", Unit: "분수", Topic: "분수의 크기 비교하기"},
			"2": {Subject: "국어", Unit: "대화", Topic: "상황에 맞는 대화하기"},
			"3": {Subject: "영어", Unit: "My School", Topic: "학교 장소 이름 익히기"},
			"4": {Subject: "미술", Unit: "표현", Topic: "상상화 그리기"},
			"5": {Subject: "과학", Unit: "생태계", Topic: "먹이 관계 알아보기"},
			"6": {Subject: "도덕", Unit: "정직", Topic: "정직한 생활 실천하기"},
		},
		"수": {
			"1": {Subject: "사회", Unit: "삼국과 가야", Topic: "고구려, 백제, 신라의 문화"},
			"2": {Subject: "수학", Unit: "분수", Topic: "분수의 곱셈"},
			"3": {Subject: "국어", Unit: "토의하기", Topic: "의견을 나누며 토의하기"},
			"4": {Subject: "실과", Unit: "간단한 음식", Topic: "샐러드 만들기"},
			"5": {Subject: "체육", Unit: "경쟁활동", Topic: "피구게임하기"},
			"6": {Subject: "창체", Unit: "동아리", Topic: "독서 동아리 활동"},
		},
		"목": {
			"1": {Subject: "국어", Unit: "글쓰기", Topic: "경험을 글로 써보기"},
			"2": {Subject: "과학", Unit: "생태계", Topic: "생태계 보전 방법"},
			"3": {Subject: "수학", Unit: "분수", Topic: "분수의 나눗셈"},
			"4": {Subject: "영어", Unit: "My School", Topic: "학교생활 표현하기"},
			"5": {Subject: "사회", Unit: "문화재", Topic: "우리나라 문화재 알아보기"},
			"6": {Subject: "음악", Unit: "감상", Topic: "클래식 음악 감상하기"},
		},
		"금": {
			"1": {Subject: "수학", Unit: "소수", Topic: "소수의 의미 알기"},
			"2": {Subject: "국어", Unit: "읽기", Topic: "글의 중심내용 파악하기"},
			"3": {Subject: "과학", Unit: "물질의 성질", Topic: "물질의 특성 관찰하기"},
			"4": {Subject: "미술", Unit: "만들기", Topic: "찰흙으로 작품 만들기"},
			"5": {Subject: "도덕", Unit: "배려", Topic: "다른 사람을 배려하는 마음"},
			"6": {Subject: "창체", Unit: "자율", Topic: "학급회의 하기"},
		},
		"토": {
			"1": {Subject: "국어", Unit: "독서", Topic: "다양한 책 읽기"},
			"2": {Subject: "수학", Unit: "소수", Topic: "소수의 덧셈과 뺄셈"},
			"3": {Subject: "실과", Unit: "생활용품", Topic: "생활용품 만들기"},
			"4": {Subject: "체육", Unit: "표현활동", Topic: "리듬체조 배우기"},
		},
	}
}
