package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/aminsalih/hifzquest-bot/internal/config"
	"github.com/aminsalih/hifzquest-bot/internal/delivery/telegram"
	"github.com/aminsalih/hifzquest-bot/internal/infra/postgres"
	pgrepo "github.com/aminsalih/hifzquest-bot/internal/infra/postgres/repository"
	"github.com/aminsalih/hifzquest-bot/internal/logger"
	"github.com/aminsalih/hifzquest-bot/internal/repository"
	"github.com/aminsalih/hifzquest-bot/internal/service"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	zl, err := logger.New(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = zl.Sync() }()

	bot, err := tgbotapi.NewBotAPI(cfg.TelegramAPIToken)
	if err != nil {
		zl.Fatal("failed to create bot api", zap.Error(err))
	}
	zl.Info("authorized on telegram", zap.String("account", bot.Self.UserName))

	commands := []tgbotapi.BotCommand{
		{Command: "start", Description: "ابدأ الرحلة"},
		{Command: "quiz", Description: "ابدأ اختباراً على صفحة (مثال: ‎/quiz 3)"},
		{Command: "store", Description: "المتجر"},
		{Command: "skills", Description: "شجرة المهارات"},
		{Command: "quests", Description: "المهام اليومية والأسبوعية"},
		{Command: "profile", Description: "ملفك الشخصي"},
		{Command: "duel", Description: "تحدّ لاعباً (مثال: ‎/duel 12345)"},
		{Command: "duels", Description: "التحديات بانتظارك"},
		{Command: "review", Description: "مراجعة الأخطاء الأخيرة"},
	}
	if _, err := bot.Request(tgbotapi.NewSetMyCommands(commands...)); err != nil {
		zl.Warn("failed to set bot commands", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dsn, err := cfg.DB.DSN()
	if err != nil {
		zl.Fatal("database dsn not configured", zap.Error(err))
	}

	pool, err := postgres.NewPool(ctx, dsn, postgres.PoolConfig{
		MaxConns:        int32(cfg.DB.MaxConnections),
		MaxConnLifetime: cfg.DB.MaxConnLifetime,
	})
	if err != nil {
		zl.Fatal("failed to create postgres pool", zap.Error(err))
	}
	defer pool.Close()

	contentRepo, err := repository.NewContentRepository(cfg.CorpusJSONPath)
	if err != nil {
		zl.Fatal("failed to load mushaf corpus", zap.Error(err))
	}

	playerRepo := pgrepo.NewPlayerRepository(pool)
	configRepo := pgrepo.NewGameConfigRepository(pool)
	questRepo := pgrepo.NewQuestRepository(pool)
	resultRepo := pgrepo.NewResultRepository(pool)
	duelRepo := pgrepo.NewDuelRepository(pool)

	game, err := service.NewGameService(ctx, playerRepo, configRepo, contentRepo, questRepo, resultRepo, duelRepo, zl)
	if err != nil {
		zl.Fatal("failed to build game service", zap.Error(err))
	}

	handler := telegram.NewHandler(bot, game, zl)
	game.SetNotifier(handler)

	go game.StartResetLoop(ctx)

	if err := handler.Run(ctx); err != nil && ctx.Err() == nil {
		zl.Fatal("telegram handler stopped", zap.Error(err))
	}

	zl.Info("shutdown signal received")
}
