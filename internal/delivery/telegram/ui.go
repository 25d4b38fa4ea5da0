package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// buildMainMenuKeyboard builds the persistent navigation keyboard.
func buildMainMenuKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📖 ابدأ اختباراً", buildQuizStartCallback(1)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🛒 المتجر", buildStoreMenuCallback()),
			tgbotapi.NewInlineKeyboardButtonData("🌳 المهارات", buildSkillsMenuCallback()),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📜 المهام", buildQuestsMenuCallback()),
			tgbotapi.NewInlineKeyboardButtonData("👤 ملفي", buildProfileCallback()),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📖 مراجعة الأخطاء", buildReviewCallback()),
		),
	)
}

// buildResultKeyboard builds the keyboard shown under a quiz result.
func buildResultKeyboard(page int) tgbotapi.InlineKeyboardMarkup {
	if page < 1 {
		page = 1
	}
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔄 اختبار جديد", buildQuizStartCallback(page)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📜 المهام", buildQuestsMenuCallback()),
			tgbotapi.NewInlineKeyboardButtonData("👤 ملفي", buildProfileCallback()),
		),
	)
}
