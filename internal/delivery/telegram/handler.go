package telegram

import (
	"context"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aminsalih/hifzquest-bot/internal/domain/entities"
	"github.com/aminsalih/hifzquest-bot/internal/service"
	"github.com/aminsalih/hifzquest-bot/internal/storage"
)

// questionState is the question currently shown to a player, plus the word
// picks made so far for arrangement questions. The answer callbacks are
// resolved against it.
type questionState struct {
	question *entities.Question
	picks    []int
}

type Handler struct {
	bot     *tgbotapi.BotAPI
	logger  *zap.Logger
	game    *service.GameService
	pending *storage.Storage[*questionState]
}

func NewHandler(bot *tgbotapi.BotAPI, game *service.GameService, logger *zap.Logger) *Handler {
	return &Handler{
		bot:     bot,
		logger:  logger,
		game:    game,
		pending: storage.New[*questionState](),
	}
}

func (h *Handler) Run(ctx context.Context) error {
	h.logger.Info("telegram handler started")
	defer h.logger.Info("telegram handler stopped")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := h.bot.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case update := <-updates:
			h.handleUpdate(ctx, update)
		}
	}
}

func (h *Handler) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.CallbackQuery != nil {
		h.logger.Debug("callback received",
			zap.Int64("user_id", update.CallbackQuery.From.ID),
			zap.String("data", update.CallbackQuery.Data),
		)
		h.handleCallback(ctx, update.CallbackQuery)
		return
	}

	if update.Message == nil {
		h.logger.Debug("update without message and callback")
		return
	}

	h.logger.Debug("update received",
		zap.Int64("chat_id", update.Message.Chat.ID),
		zap.String("text", update.Message.Text),
	)

	from := update.Message.From
	chatID := update.Message.Chat.ID

	if _, err := h.ensureLoggedIn(ctx, from.ID, from.UserName); err != nil {
		h.logger.Error("failed to log player in",
			zap.Int64("player_id", from.ID),
			zap.Error(err),
		)
		h.sendError(chatID, msgInternalError)
		return
	}

	if !update.Message.IsCommand() {
		h.sendError(chatID, msgUnknownCommand)
		return
	}

	args := update.Message.CommandArguments()

	switch update.Message.Command() {
	case "start":
		h.handleStartCommand(chatID)

	case "quiz":
		_ = h.withErrorHandling(h.quizHandler(from.ID, parsePageArg(args)))(ctx, chatID)

	case "store":
		_ = h.withErrorHandling(h.storeHandler(from.ID))(ctx, chatID)

	case "skills":
		_ = h.withErrorHandling(h.skillsHandler(from.ID))(ctx, chatID)

	case "quests":
		_ = h.withErrorHandling(h.questsHandler(from.ID))(ctx, chatID)

	case "profile":
		_ = h.withErrorHandling(h.profileHandler(from.ID))(ctx, chatID)

	case "duel":
		_ = h.withErrorHandling(h.duelHandler(from.ID, args))(ctx, chatID)

	case "duels":
		_ = h.withErrorHandling(h.pendingDuelsHandler(from.ID))(ctx, chatID)

	case "review":
		_ = h.withErrorHandling(h.reviewHandler(from.ID))(ctx, chatID)

	default:
		h.sendError(chatID, msgUnknownCommand)
	}
}

// ensureLoggedIn returns the player's live context, logging them in on first
// contact. A repeated login within the same day is a cheap no-op rollover.
func (h *Handler) ensureLoggedIn(ctx context.Context, playerID int64, username string) (*service.PlayerContext, error) {
	if pc, err := h.game.Context(playerID); err == nil {
		return pc, nil
	}
	return h.game.Login(ctx, playerID, username)
}

func parsePageArg(args string) int {
	args = strings.TrimSpace(args)
	if args == "" {
		return 1
	}
	page, err := strconv.Atoi(args)
	if err != nil || page < 1 {
		return 1
	}
	return page
}

func (h *Handler) sendError(chatID int64, err string) {
	msg := newHTMLMessage(chatID, err)
	h.send(msg)
}

func (h *Handler) send(c tgbotapi.Chattable) {
	if _, err := h.bot.Send(c); err != nil {
		h.logger.Error("failed to send telegram message",
			zap.Error(err),
		)
	}
}
