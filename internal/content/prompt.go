package content

import (
	"fmt"
	"strings"

	"github.com/website1975/vatly12CTST/internal/curriculum"
	"github.com/website1975/vatly12CTST/internal/llm"
)

const theoryTemplate = `Bạn là một giáo viên Vật Lý lớp 12 giỏi, chuyên soạn bài giảng theo bộ sách "Chân Trời Sáng Tạo".
Hãy viết tóm tắt lý thuyết cho **%s** thuộc **%s**.

Yêu cầu:
1. Trình bày rõ ràng, súc tích bằng Markdown.
2. Sử dụng các đề mục (##, ###) để phân chia nội dung.
3. Bao gồm các định nghĩa, công thức quan trọng (dùng LaTeX format dạng $...$ hoặc $$...$$ nếu cần, nhưng ưu tiên text dễ đọc).
4. Có ví dụ minh hoạ thực tế ngắn gọn.
5. Giọng văn sư phạm, dễ hiểu cho học sinh.`

func theoryPrompt(l curriculum.Lesson) string {
	return fmt.Sprintf(theoryTemplate, l.Title, l.Chapter)
}

func quizPrompt(l curriculum.Lesson) string {
	return fmt.Sprintf("Tạo 5 câu hỏi trắc nghiệm khách quan về bài học: \"%s\" (%s) chương trình Vật Lý 12 Chân Trời Sáng Tạo.", l.Title, l.Chapter)
}

func simulationPrompt(l curriculum.Lesson) string {
	return fmt.Sprintf("Đề xuất một kịch bản mô phỏng hoặc thí nghiệm ảo cho bài học: \"%s\".\nMô tả chi tiết những gì học sinh sẽ thấy và tương tác.", l.Title)
}

// chatSystemPrompt embeds the lesson and the tone directive.
func chatSystemPrompt(lessonTitle string) string {
	var b strings.Builder
	b.WriteString("Bạn là trợ lý ảo chuyên về Vật Lý 12 (Chân Trời Sáng Tạo).\n")
	fmt.Fprintf(&b, "Bối cảnh hiện tại là bài học: %s.\n", lessonTitle)
	b.WriteString("Hãy trả lời ngắn gọn, chính xác, khuyến khích tư duy.")
	return b.String()
}

// Greeting is the first message of every conversation about lessonTitle.
func Greeting(lessonTitle string) string {
	return fmt.Sprintf("Xin chào! Mình là trợ lý AI. Bạn có thắc mắc gì về bài \"%s\" không?", lessonTitle)
}

// chatTurns reshapes a transcript into provider turns and appends the new
// user message as the final turn.
func chatTurns(history []ChatMessage, newMessage string) []llm.Message {
	msgs := make([]llm.Message, 0, len(history)+1)
	for _, m := range history {
		role := llm.RoleUser
		if m.Role == RoleModel {
			role = llm.RoleAssistant
		}
		msgs = append(msgs, llm.Message{Role: role, Content: m.Text})
	}
	return append(msgs, llm.Message{Role: llm.RoleUser, Content: newMessage})
}
