package telegram

import (
	"fmt"

	"github.com/aminsalih/hifzquest-bot/internal/domain/entities"
)

// The handler doubles as the game's notifier: private chat ids equal player
// ids, so toasts go straight to the player's chat.

func (h *Handler) AchievementUnlocked(playerID int64, rule entities.AchievementRule) {
	text := fmt.Sprintf("🏆 <b>إنجاز جديد!</b>\n%s", rule.Name)
	if rule.XPReward > 0 || rule.DiamondReward > 0 {
		text += fmt.Sprintf("\n‎+%d خبرة، ‎+%d ألماسة", rule.XPReward, rule.DiamondReward)
	}
	h.send(newHTMLMessage(playerID, text))
}

func (h *Handler) QuestCompleted(playerID int64, config entities.QuestConfig) {
	h.send(newHTMLMessage(playerID, fmt.Sprintf("📜 أكملت مهمة: <b>%s</b>", config.Title)))
}

func (h *Handler) LevelUp(playerID int64, newLevel int, title string, diamonds int) {
	text := fmt.Sprintf("🎉 <b>مستوى جديد!</b>\nوصلت إلى المستوى %d — %s", newLevel, title)
	if diamonds > 0 {
		text += fmt.Sprintf("\n💎 مكافأة: %d ألماسة", diamonds)
	}
	h.send(newHTMLMessage(playerID, text))
}

func (h *Handler) CompanionEvolved(playerID int64, stage entities.CompanionStage) {
	h.send(newHTMLMessage(playerID, fmt.Sprintf("🌱 تطوّر رفيقك إلى: <b>%s</b>", stage.Name)))
}
