package telegram

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aminsalih/hifzquest-bot/internal/domain/entities"
	"github.com/aminsalih/hifzquest-bot/internal/service"
)

const lrm = "‎"

// renderQuestion sends a freshly generated question and records it as the
// player's pending answer state.
func (h *Handler) renderQuestion(chatID int64, playerID int64, q *entities.Question) {
	h.pending.Store(playerID, &questionState{question: q})

	if q.PromptAudio != "" {
		audio := tgbotapi.NewAudio(chatID, tgbotapi.FileURL(q.PromptAudio))
		audio.Caption = q.Prompt
		h.send(audio)
	}

	if q.Interaction == entities.InteractionArrange {
		h.renderArrangement(chatID, q, nil)
		return
	}

	audioOptions := len(q.Options) > 0 && q.Options[0].Audio != ""
	if audioOptions {
		for i, o := range q.Options {
			clip := tgbotapi.NewAudio(chatID, tgbotapi.FileURL(o.Audio))
			clip.Caption = fmt.Sprintf("🔊 %d", i+1)
			h.send(clip)
		}
	}

	msg := newHTMLMessage(chatID, questionText(q, audioOptions))
	kb := buildChoiceKeyboard(q, audioOptions)
	msg.ReplyMarkup = kb
	h.send(msg)
}

// questionText formats the question body. Text options are numbered in the
// body so the buttons can stay short.
func questionText(q *entities.Question, audioOptions bool) string {
	var b strings.Builder
	b.WriteString("❓ <b>")
	b.WriteString(q.Prompt)
	b.WriteString("</b>")

	if q.PromptText != "" {
		b.WriteString("\n\n")
		b.WriteString(lrm)
		b.WriteString(q.PromptText)
	}

	if !audioOptions {
		for i, o := range q.Options {
			b.WriteString(fmt.Sprintf("\n\n<b>%d.</b> %s", i+1, o.Label))
		}
	}
	return b.String()
}

// buildChoiceKeyboard builds the numbered answer keyboard.
func buildChoiceKeyboard(q *entities.Question, audioOptions bool) tgbotapi.InlineKeyboardMarkup {
	var row []tgbotapi.InlineKeyboardButton
	for i := range q.Options {
		label := fmt.Sprintf("%d", i+1)
		if audioOptions {
			label = fmt.Sprintf("🔊 %d", i+1)
		}
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(label, buildAnswerCallback(i)))
	}
	return tgbotapi.NewInlineKeyboardMarkup(row)
}

// renderArrangement sends (or refreshes) an arrangement question with the
// words picked so far shown in order. Picked words are dropped from the
// keyboard.
func (h *Handler) renderArrangement(chatID int64, q *entities.Question, picks []int) {
	var b strings.Builder
	b.WriteString("❓ <b>")
	b.WriteString(q.Prompt)
	b.WriteString("</b>\n\n")
	b.WriteString(msgChooseOrder)

	if len(picks) > 0 {
		b.WriteString("\n\n✍️ ")
		for j, idx := range picks {
			if j > 0 {
				b.WriteString(" ")
			}
			b.WriteString(q.Arrangement[idx].Label)
		}
	}

	picked := make(map[int]bool, len(picks))
	for _, idx := range picks {
		picked[idx] = true
	}

	var rows [][]tgbotapi.InlineKeyboardButton
	var row []tgbotapi.InlineKeyboardButton
	for i, item := range q.Arrangement {
		if picked[i] {
			continue
		}
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(item.Label, buildWordCallback(i)))
		if len(row) == 3 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	if len(picks) > 0 {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("↩️ ابدأ من جديد", buildWordResetCallback()),
		))
	}

	msg := newHTMLMessage(chatID, b.String())
	if len(rows) > 0 {
		msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(rows...)
	}
	h.send(msg)
}

// renderFeedback reports the outcome of one answer and then either the next
// question or the session result.
func (h *Handler) renderFeedback(chatID, playerID int64, fb *service.AnswerFeedback) {
	switch {
	case fb.Outcome.Forgiven:
		h.send(newHTMLMessage(chatID, msgAnswerForgiven))
	case fb.Outcome.Correct:
		text := msgAnswerCorrect
		if fb.Outcome.XPAwarded > 0 {
			text = fmt.Sprintf("%s +%d خبرة", msgAnswerCorrect, fb.Outcome.XPAwarded)
		}
		h.send(newHTMLMessage(chatID, text))
	default:
		text := msgAnswerWrong
		if fb.CorrectAnswer != "" {
			text = fmt.Sprintf("%s\nالإجابة الصحيحة: %s", msgAnswerWrong, fb.CorrectAnswer)
		}
		h.send(newHTMLMessage(chatID, text))
	}

	if fb.Result != nil {
		h.pending.Delete(playerID)
		h.renderResult(chatID, fb.Result)
		return
	}
	if fb.Next != nil {
		h.renderQuestion(chatID, playerID, fb.Next)
	}
}

func (h *Handler) renderResult(chatID int64, r *entities.QuizResult) {
	var b strings.Builder
	b.WriteString("🏁 <b>انتهى الاختبار!</b>\n\n")
	b.WriteString(fmt.Sprintf("📊 النتيجة: %d / %d\n", r.Score, r.TotalQuestions))
	b.WriteString(fmt.Sprintf("⭐ الخبرة المكتسبة: %d", r.XPEarned))
	if r.Score == r.TotalQuestions && r.TotalQuestions > 0 {
		b.WriteString("\n\n🌟 اختبار مثالي! أحسنت.")
	}

	msg := newHTMLMessage(chatID, b.String())
	msg.ReplyMarkup = buildResultKeyboard(r.PageNumber)
	h.send(msg)
}

// arrangementCorrect checks the picked order against the answer key. Both
// scrambles and sequence questions key their order on the item's number.
func arrangementCorrect(q *entities.Question, picks []int) bool {
	if len(picks) != len(q.CorrectOrder) {
		return false
	}
	for j, idx := range picks {
		if q.Arrangement[idx].AyahNumber != q.CorrectOrder[j] {
			return false
		}
	}
	return true
}
