package services

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// 평어 생성에 넘기는 학습 기록 요약
type RecordSummary struct {
	Week       int
	Content    string
	Reflection string
}

type EvaluationRequest struct {
	StudentName string
	Subject     string
	Records     []RecordSummary
}

// EvaluationGenerator는 학습 기록으로부터 평어 문장을 만든다.
// 테스트에서는 mock으로 대체한다.
type EvaluationGenerator interface {
	Generate(ctx context.Context, req EvaluationRequest) (string, error)
}

// GeminiGenerator는 Gemini API로 평어를 생성한다.
type GeminiGenerator struct {
	Model string
}

func NewGeminiGenerator() *GeminiGenerator {
	return &GeminiGenerator{Model: "gemini-2.0-flash"}
}

func (g *GeminiGenerator) Generate(ctx context.Context, req EvaluationRequest) (string, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(os.Getenv("GEMINI_API_KEY")))
	if err != nil {
		return "", fmt.Errorf("Gemini client 생성 실패: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel(g.Model)
	resp, err := model.GenerateContent(ctx, genai.Text(buildEvaluationPrompt(req)))
	if err != nil {
		return "", fmt.Errorf("Gemini 호출 실패: %w", err)
	}
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("Gemini가 결과를 돌려주지 않았습니다")
	}

	raw := fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0])
	evaluation := parseEvaluationResponse(raw)
	if evaluation == "" {
		return "", fmt.Errorf("평어를 파싱할 수 없습니다")
	}
	return evaluation, nil
}

// buildEvaluationPrompt는 생활기록부 평어 생성 프롬프트를 만든다.
func buildEvaluationPrompt(req EvaluationRequest) string {
	var records strings.Builder
	for _, r := range req.Records {
		fmt.Fprintf(&records, "%d주차: %s | 소감: %s\n", r.Week, r.Content, r.Reflection)
	}

	return fmt.Sprintf(`다음은 초등학교 5학년 학생 "%s"의 "%s" 과목 주간 학습 기록입니다.

학습 기록:
%s
위 학습 기록을 바탕으로 다음 조건에 맞는 평어를 작성해주세요:
1. 최대 2개 문장으로 구성
2. 학생의 구체적인 학습 내용과 성장 모습을 반영
3. 초등학교 생활기록부에 적합한 격식 있는 문체
4. 학생의 긍정적인 면과 발전 가능성을 강조
5. 한국어로 작성

JSON 형식으로 응답해주세요: { "evaluation": "평어 내용" }`,
		req.StudentName, req.Subject, records.String())
}

// parseEvaluationResponse는 모델 응답에서 평어 본문을 꺼낸다.
// JSON이 아니면 (코드 펜스 제거 후에도) 본문 전체를 평어로 취급한다.
func parseEvaluationResponse(raw string) string {
	text := strings.TrimSpace(raw)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	var parsed struct {
		Evaluation string `json:"evaluation"`
	}
	if err := json.Unmarshal([]byte(text), &parsed); err == nil && parsed.Evaluation != "" {
		return parsed.Evaluation
	}
	return text
}
