package telegram

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func (h *Handler) handleStartCommand(chatID int64) {
	msg := newHTMLMessage(chatID, msgWelcome)
	msg.ReplyMarkup = buildMainMenuKeyboard()
	h.send(msg)
}

// quizHandler starts a quiz on the given page and renders the first
// question.
func (h *Handler) quizHandler(playerID int64, page int) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		q, err := h.game.StartQuiz(ctx, playerID, page)
		if err != nil {
			return err
		}
		h.renderQuestion(chatID, playerID, q)
		return nil
	}
}

func (h *Handler) storeHandler(playerID int64) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		pc, err := h.game.Context(playerID)
		if err != nil {
			return err
		}

		var b strings.Builder
		b.WriteString("🛒 <b>المتجر</b>\n\n")
		b.WriteString(fmt.Sprintf("💎 رصيدك: %d ألماسة | ⭐ %d خبرة\n", pc.Player.Diamonds, pc.Player.XP))

		catalog := h.game.StoreCatalog()
		var rows [][]tgbotapi.InlineKeyboardButton
		for _, item := range catalog.Items() {
			if catalog.Owned(item, pc.Player) {
				continue
			}
			label := fmt.Sprintf("%s %s — %d", item.Icon, item.Name, item.Price)
			if item.Recommended {
				label = "⭐ " + label
			}
			rows = append(rows, tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData(label, buildStoreBuyCallback(item.ID)),
			))
		}
		if len(rows) == 0 {
			b.WriteString("\nاشتريت كل شيء! 🎉")
		}

		msg := newHTMLMessage(chatID, b.String())
		if len(rows) > 0 {
			msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(rows...)
		}
		h.send(msg)
		return nil
	}
}

func (h *Handler) skillsHandler(playerID int64) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		pc, err := h.game.Context(playerID)
		if err != nil {
			return err
		}

		var b strings.Builder
		b.WriteString("🌳 <b>شجرة المهارات</b>\n\n")
		b.WriteString(fmt.Sprintf("✨ نقاط المهارة المتاحة: %d\n", pc.Player.SkillPoints))

		var rows [][]tgbotapi.InlineKeyboardButton
		for _, node := range h.game.Tree().Nodes() {
			if pc.Player.HasSkill(node.ID) {
				b.WriteString(fmt.Sprintf("\n%s <b>%s</b> ✅", node.Icon, node.Name))
				continue
			}
			b.WriteString(fmt.Sprintf("\n%s <b>%s</b> — %s (%d نقطة)", node.Icon, node.Name, node.Description, node.Cost))
			rows = append(rows, tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData(
					fmt.Sprintf("%s %s", node.Icon, node.Name),
					buildSkillUnlockCallback(node.ID),
				),
			))
		}

		msg := newHTMLMessage(chatID, b.String())
		if len(rows) > 0 {
			msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(rows...)
		}
		h.send(msg)
		return nil
	}
}

func (h *Handler) questsHandler(playerID int64) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		pc, err := h.game.Context(playerID)
		if err != nil {
			return err
		}

		var b strings.Builder
		b.WriteString("📜 <b>المهام</b>\n")

		active := pc.Quests.Active()
		if len(active) == 0 {
			b.WriteString("\nلا توجد مهام حالياً. عد غداً!")
			h.send(newHTMLMessage(chatID, b.String()))
			return nil
		}

		var rows [][]tgbotapi.InlineKeyboardButton
		for _, q := range active {
			period := "📅"
			if q.Config.Period == "weekly" {
				period = "🗓️"
			}
			b.WriteString(fmt.Sprintf("\n%s <b>%s</b> — %d / %d", period, q.Config.Title, q.Progress, q.Config.TargetValue))
			if q.ReadyToClaim() {
				rows = append(rows, tgbotapi.NewInlineKeyboardRow(
					tgbotapi.NewInlineKeyboardButtonData(
						fmt.Sprintf("🎁 استلم: %s", q.Config.Title),
						buildQuestClaimCallback(q.ID),
					),
				))
			}
		}

		msg := newHTMLMessage(chatID, b.String())
		if len(rows) > 0 {
			msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(rows...)
		}
		h.send(msg)
		return nil
	}
}

func (h *Handler) profileHandler(playerID int64) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		profile, err := h.game.Profile(playerID)
		if err != nil {
			return err
		}
		p := profile.Player

		var b strings.Builder
		b.WriteString(fmt.Sprintf("👤 <b>%s</b>\n\n", p.Username))
		b.WriteString(fmt.Sprintf("🏅 المستوى %d — %s\n", profile.LevelInfo.Level, profile.LevelInfo.Title))
		b.WriteString(fmt.Sprintf("%s %.0f%%\n", buildProgressBar(profile.LevelInfo.Progress, 10), profile.LevelInfo.Progress))
		b.WriteString(fmt.Sprintf("⭐ الخبرة: %d | 💎 الألماس: %d\n", p.XP, p.Diamonds))
		b.WriteString(fmt.Sprintf("🎯 المحاولات المتبقية اليوم: %d", p.TestAttempts))
		if p.EnergyStars > 0 {
			b.WriteString(fmt.Sprintf(" (+%d نجمة طاقة)", p.EnergyStars))
		}
		b.WriteString(fmt.Sprintf("\n🛤️ المسارات: %s\n", strings.Join(pathNames(profile.Paths), "، ")))
		b.WriteString(fmt.Sprintf("🌱 الرفيق: %s\n\n", profile.Companion.Name))
		b.WriteString(fmt.Sprintf("📊 الاختبارات المكتملة: %d\n", p.TotalQuizzesCompleted))
		if p.TotalQuestionsAnswered > 0 {
			accuracy := 100 * float64(p.TotalCorrectAnswers) / float64(p.TotalQuestionsAnswered)
			b.WriteString(fmt.Sprintf("🎯 الدقة: %.1f%%\n", accuracy))
		}

		if pages := bestPages(p.PageHighScores, 5); len(pages) > 0 {
			b.WriteString("\n<b>أفضل الصفحات:</b>")
			for _, pg := range pages {
				b.WriteString(fmt.Sprintf("\nصفحة %d — %d%%", pg, p.PageHighScores[pg]))
			}
		}

		msg := newHTMLMessage(chatID, b.String())
		msg.ReplyMarkup = buildMainMenuKeyboard()
		h.send(msg)
		return nil
	}
}

func (h *Handler) duelHandler(playerID int64, args string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		opponentID, err := strconv.ParseInt(strings.TrimSpace(args), 10, 64)
		if err != nil || opponentID == playerID {
			h.send(newHTMLMessage(chatID, msgDuelUsage))
			return nil
		}

		duelID, err := h.game.CreateDuel(ctx, playerID, opponentID)
		if err != nil {
			return err
		}

		q, err := h.game.StartDuelQuiz(ctx, playerID, duelID, 1)
		if err != nil {
			return err
		}

		h.send(newHTMLMessage(chatID, msgDuelCreated))
		h.renderQuestion(chatID, playerID, q)

		// Best-effort poke to the opponent; they may have never started
		// the bot.
		invite := newHTMLMessage(opponentID, fmt.Sprintf("⚔️ تحداك اللاعب <b>%d</b> في مبارزة!", playerID))
		invite.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData("⚔️ اقبل التحدي", buildDuelAcceptCallback(duelID, 1)),
			),
		)
		h.send(invite)
		return nil
	}
}

func (h *Handler) pendingDuelsHandler(playerID int64) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		duels, err := h.game.PendingDuels(ctx, playerID)
		if err != nil {
			return err
		}
		if len(duels) == 0 {
			h.send(newHTMLMessage(chatID, msgNoPendingDuels))
			return nil
		}

		var rows [][]tgbotapi.InlineKeyboardButton
		for _, d := range duels {
			rows = append(rows, tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData(
					fmt.Sprintf("⚔️ مبارزة ضد %d", d.ChallengerID),
					buildDuelAcceptCallback(d.ID, 1),
				),
			))
		}

		msg := newHTMLMessage(chatID, "⚔️ <b>تحديات بانتظارك</b>")
		msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(rows...)
		h.send(msg)
		return nil
	}
}

// reviewHandler shows the mistakes from recent quizzes so the player can
// revise them.
func (h *Handler) reviewHandler(playerID int64) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		results, err := h.game.RecentResults(ctx, playerID, 5)
		if err != nil {
			return err
		}
		if len(results) == 0 {
			h.send(newHTMLMessage(chatID, msgNoRecentResults))
			return nil
		}

		var b strings.Builder
		b.WriteString("📖 <b>مراجعة الأخطاء</b>\n")
		total := 0
		for _, r := range results {
			for _, e := range r.ErrorLog {
				total++
				b.WriteString(fmt.Sprintf("\n<b>%d.</b> %s\n✅ %s\n", total, e.Prompt, e.CorrectAnswer))
				if total >= 10 {
					break
				}
			}
			if total >= 10 {
				break
			}
		}
		if total == 0 {
			h.send(newHTMLMessage(chatID, msgNoErrors))
			return nil
		}

		h.send(newHTMLMessage(chatID, b.String()))
		return nil
	}
}

func pathNames(paths []string) []string {
	names := map[string]string{
		"basic":  "الأساسي",
		"hafez":  "الحافظ",
		"mutqen": "المتقن",
		"mujaz":  "المجاز",
	}
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if name, ok := names[p]; ok {
			out = append(out, name)
			continue
		}
		out = append(out, p)
	}
	return out
}

func bestPages(scores map[int]int, limit int) []int {
	pages := make([]int, 0, len(scores))
	for p := range scores {
		pages = append(pages, p)
	}
	sort.Slice(pages, func(i, j int) bool {
		if scores[pages[i]] != scores[pages[j]] {
			return scores[pages[i]] > scores[pages[j]]
		}
		return pages[i] < pages[j]
	})
	if len(pages) > limit {
		pages = pages[:limit]
	}
	return pages
}

func buildProgressBar(percent float64, width int) string {
	filled := int(percent / 100 * float64(width))
	if filled > width {
		filled = width
	}
	return strings.Repeat("▰", filled) + strings.Repeat("▱", width-filled)
}
