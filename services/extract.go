package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"os"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/ledongthuc/pdf"
	"google.golang.org/api/option"
)

// 과목 추출 실패 시 돌려줄 기본 과목
var defaultSubjects = []string{"국어", "수학", "과학", "사회"}

// ExtractTextFromPDF는 주간학습 안내 PDF에서 본문 텍스트를 뽑는다.
func ExtractTextFromPDF(file multipart.File) (string, error) {
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, file); err != nil {
		return "", fmt.Errorf("PDF 읽기 실패: %w", err)
	}

	reader, err := pdf.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		return "", fmt.Errorf("PDF reader 생성 실패: %w", err)
	}

	var textBuilder bytes.Buffer
	pages := reader.NumPage()
	for i := 1; i <= pages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		content, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		textBuilder.WriteString(content)
	}

	return textBuilder.String(), nil
}

// ExtractSubjects는 추출된 문서 내용에서 교과목 이름을 뽑는다.
// Gemini 호출이 실패하면 기본 과목을 돌려준다 (업로드 자체를 막지 않기 위함).
func ExtractSubjects(ctx context.Context, content string) []string {
	client, err := genai.NewClient(ctx, option.WithAPIKey(os.Getenv("GEMINI_API_KEY")))
	if err != nil {
		log.Println("과목 추출 실패:", err)
		return defaultSubjects
	}
	defer client.Close()

	prompt := fmt.Sprintf(`다음은 초등학교 주간학습 안내 문서의 내용입니다:

%s

이 문서에서 언급된 교과목들을 추출해주세요.
일반적인 초등학교 교과목: 국어, 수학, 과학, 사회, 도덕, 실과, 체육, 음악, 미술, 영어

JSON 형식으로 응답해주세요: { "subjects": ["과목1", "과목2", ...] }`, content)

	model := client.GenerativeModel("gemini-2.0-flash")
	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil || len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		log.Println("과목 추출 실패:", err)
		return defaultSubjects
	}

	raw := strings.TrimSpace(fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0]))
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(raw, "```")

	var parsed struct {
		Subjects []string `json:"subjects"`
	}
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &parsed); err != nil || len(parsed.Subjects) == 0 {
		log.Println("과목 추출 응답 파싱 실패:", err)
		return defaultSubjects
	}
	return parsed.Subjects
}
