package telegram

import (
	"context"
	"fmt"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

func (h *Handler) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	// Always answer the callback so the client stops its spinner.
	if _, err := h.bot.Request(tgbotapi.NewCallback(cb.ID, "")); err != nil {
		h.logger.Warn("failed to answer callback", zap.Error(err))
	}

	playerID := cb.From.ID
	chatID := cb.Message.Chat.ID

	if _, err := h.ensureLoggedIn(ctx, playerID, cb.From.UserName); err != nil {
		h.logger.Error("failed to log player in",
			zap.Int64("player_id", playerID),
			zap.Error(err),
		)
		h.sendError(chatID, msgInternalError)
		return
	}

	data := decodeCallback(cb.Data)

	switch data.Action {
	case actionQuiz:
		if len(data.Params) >= 2 && data.Params[0] == quizStart {
			page, _ := strconv.Atoi(data.Params[1])
			if page < 1 {
				page = 1
			}
			_ = h.withErrorHandling(h.quizHandler(playerID, page))(ctx, chatID)
		}

	case actionAnswer:
		if len(data.Params) >= 1 {
			h.handleAnswerCallback(ctx, chatID, playerID, data.Params[0])
		}

	case actionWord:
		if len(data.Params) >= 1 {
			h.handleWordCallback(ctx, chatID, playerID, data.Params[0])
		}

	case actionStore:
		h.handleStoreCallback(ctx, chatID, playerID, data.Params)

	case actionSkills:
		h.handleSkillsCallback(ctx, chatID, playerID, data.Params)

	case actionQuests:
		h.handleQuestsCallback(ctx, chatID, playerID, data.Params)

	case actionDuel:
		h.handleDuelCallback(ctx, chatID, playerID, data.Params)

	case actionProfile:
		_ = h.withErrorHandling(h.profileHandler(playerID))(ctx, chatID)

	case actionReview:
		_ = h.withErrorHandling(h.reviewHandler(playerID))(ctx, chatID)

	case actionMenu:
		h.handleStartCommand(chatID)

	default:
		h.logger.Debug("unknown callback action", zap.String("data", cb.Data))
	}
}

// handleAnswerCallback resolves a choice tap against the pending question
// and feeds the verdict into the game.
func (h *Handler) handleAnswerCallback(ctx context.Context, chatID, playerID int64, rawIndex string) {
	state, ok := h.pending.Get(playerID)
	if !ok {
		h.sendError(chatID, msgNoActiveQuiz)
		return
	}

	idx, err := strconv.Atoi(rawIndex)
	if err != nil || idx < 0 || idx >= len(state.question.Options) {
		h.logger.Warn("answer callback out of range",
			zap.Int64("player_id", playerID),
			zap.String("index", rawIndex),
		)
		return
	}

	h.submitAnswer(ctx, chatID, playerID, state.question.Options[idx].Correct)
}

// handleWordCallback advances an arrangement question by one picked word.
// The verdict is submitted once every word has been placed.
func (h *Handler) handleWordCallback(ctx context.Context, chatID, playerID int64, rawIndex string) {
	state, ok := h.pending.Get(playerID)
	if !ok {
		h.sendError(chatID, msgNoActiveQuiz)
		return
	}
	q := state.question

	if rawIndex == wordReset {
		state.picks = nil
		h.renderArrangement(chatID, q, nil)
		return
	}

	idx, err := strconv.Atoi(rawIndex)
	if err != nil || idx < 0 || idx >= len(q.Arrangement) {
		return
	}
	for _, picked := range state.picks {
		if picked == idx {
			return
		}
	}

	state.picks = append(state.picks, idx)
	if len(state.picks) < len(q.Arrangement) {
		h.renderArrangement(chatID, q, state.picks)
		return
	}

	h.submitAnswer(ctx, chatID, playerID, arrangementCorrect(q, state.picks))
}

func (h *Handler) submitAnswer(ctx context.Context, chatID, playerID int64, correct bool) {
	fb, err := h.game.SubmitAnswer(ctx, playerID, correct)
	if err != nil {
		_ = h.withErrorHandling(func(context.Context, int64) error { return err })(ctx, chatID)
		return
	}
	h.renderFeedback(chatID, playerID, fb)
}

func (h *Handler) handleStoreCallback(ctx context.Context, chatID, playerID int64, params []string) {
	if len(params) == 0 {
		return
	}
	switch params[0] {
	case storeMenu:
		_ = h.withErrorHandling(h.storeHandler(playerID))(ctx, chatID)
	case storeBuy:
		if len(params) < 2 {
			return
		}
		_ = h.withErrorHandling(func(ctx context.Context, chatID int64) error {
			item, err := h.game.PurchaseItem(ctx, playerID, params[1])
			if err != nil {
				return err
			}
			h.send(newHTMLMessage(chatID, fmt.Sprintf("✅ اشتريت: %s %s", item.Icon, item.Name)))
			return nil
		})(ctx, chatID)
	}
}

func (h *Handler) handleSkillsCallback(ctx context.Context, chatID, playerID int64, params []string) {
	if len(params) == 0 {
		return
	}
	switch params[0] {
	case skillsMenu:
		_ = h.withErrorHandling(h.skillsHandler(playerID))(ctx, chatID)
	case skillsUnlock:
		if len(params) < 2 {
			return
		}
		_ = h.withErrorHandling(func(ctx context.Context, chatID int64) error {
			result, err := h.game.UnlockSkill(ctx, playerID, params[1])
			if err != nil {
				return err
			}
			node, _ := h.game.Tree().Node(result.SkillID)
			h.send(newHTMLMessage(chatID, fmt.Sprintf(
				"🌟 فتحت مهارة: %s <b>%s</b>\n✨ النقاط المتبقية: %d",
				node.Icon, node.Name, result.RemainingPoints,
			)))
			return nil
		})(ctx, chatID)
	}
}

func (h *Handler) handleQuestsCallback(ctx context.Context, chatID, playerID int64, params []string) {
	if len(params) == 0 {
		return
	}
	switch params[0] {
	case questsMenu:
		_ = h.withErrorHandling(h.questsHandler(playerID))(ctx, chatID)
	case questsClaim:
		if len(params) < 2 {
			return
		}
		questID, err := strconv.ParseInt(params[1], 10, 64)
		if err != nil {
			return
		}
		_ = h.withErrorHandling(func(ctx context.Context, chatID int64) error {
			config, err := h.game.ClaimQuest(ctx, playerID, questID)
			if err != nil {
				return err
			}
			text := fmt.Sprintf("🎁 استلمت مكافأة «%s»: ‎+%d خبرة", config.Title, config.XPReward)
			if config.DiamondReward > 0 {
				text += fmt.Sprintf(" و%d ألماسة", config.DiamondReward)
			}
			h.send(newHTMLMessage(chatID, text))
			return nil
		})(ctx, chatID)
	}
}

func (h *Handler) handleDuelCallback(ctx context.Context, chatID, playerID int64, params []string) {
	if len(params) < 3 || params[0] != duelAccept {
		return
	}
	duelID, err := strconv.ParseInt(params[1], 10, 64)
	if err != nil {
		return
	}
	page, err := strconv.Atoi(params[2])
	if err != nil || page < 1 {
		page = 1
	}

	_ = h.withErrorHandling(func(ctx context.Context, chatID int64) error {
		q, err := h.game.StartDuelQuiz(ctx, playerID, duelID, page)
		if err != nil {
			return err
		}
		h.renderQuestion(chatID, playerID, q)
		return nil
	})(ctx, chatID)
}
