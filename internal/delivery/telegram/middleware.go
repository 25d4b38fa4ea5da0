package telegram

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/aminsalih/hifzquest-bot/internal/game/quests"
	"github.com/aminsalih/hifzquest-bot/internal/game/quiz"
	"github.com/aminsalih/hifzquest-bot/internal/game/skills"
	"github.com/aminsalih/hifzquest-bot/internal/game/store"
	"github.com/aminsalih/hifzquest-bot/internal/service"
)

type HandlerFunc func(ctx context.Context, chatID int64) error

func (h *Handler) withErrorHandling(fn HandlerFunc) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		if err := fn(ctx, chatID); err != nil {
			if msg := userFacingError(err); msg != "" {
				h.sendError(chatID, msg)
				return nil
			}
			h.logger.Error("handle error",
				zap.Int64("chat_id", chatID),
				zap.Error(err),
			)
			h.sendError(chatID, msgInternalError)
			return nil
		}
		return nil
	}
}

// userFacingError maps expected gameplay refusals to player-readable text.
// Anything unmapped is treated as internal.
func userFacingError(err error) string {
	switch {
	case errors.Is(err, service.ErrPageNotOwned):
		return msgPageNotOwned
	case errors.Is(err, service.ErrNoAttemptsLeft):
		return msgNoAttemptsLeft
	case errors.Is(err, service.ErrNoActiveQuiz):
		return msgNoActiveQuiz
	case errors.Is(err, service.ErrNotInDuel):
		return msgNotInDuel
	case errors.Is(err, quiz.ErrGeneratorsExhausted):
		return msgPageTooShort
	case errors.Is(err, quests.ErrQuestNotReady):
		return msgQuestNotReady
	case errors.Is(err, store.ErrAlreadyOwned):
		return msgAlreadyOwned
	case errors.Is(err, store.ErrInsufficientFunds):
		return msgInsufficientFunds
	case errors.Is(err, skills.ErrInsufficientSkillPoints):
		return msgNoSkillPoints
	case errors.Is(err, skills.ErrAlreadyUnlocked):
		return msgSkillAlreadyUnlocked
	case errors.Is(err, skills.ErrUnmetDependency):
		return msgSkillLocked
	}
	return ""
}
