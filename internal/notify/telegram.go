package notify

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/caarlos0/env/v11"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"betsense/internal/gateway"
	"betsense/internal/logger"
	"betsense/internal/models"
)

type Credentials struct {
	TelegramBotToken string `env:"TELEGRAM_BOT_TOKEN"`
}

func LoadCredentials() (Credentials, error) {
	var c Credentials
	if err := env.Parse(&c); err != nil {
		return Credentials{}, fmt.Errorf("parse notify credentials: %w", err)
	}
	return c, nil
}

// Sender is the part of *tgbotapi.BotAPI used here.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Telegram pushes odds predictions at or above MinConfidence to one chat.
// A prediction identical to the last one sent for the same odd is skipped.
type Telegram struct {
	Sender        Sender
	ChatID        int64
	MinConfidence int
	Logger        *zap.Logger

	mu   sync.Mutex
	last map[string]string
}

func NewTelegram(token string, chatID int64, minConfidence int, log *zap.Logger) (*Telegram, error) {
	if strings.TrimSpace(token) == "" {
		return nil, fmt.Errorf("telegram bot token is empty")
	}
	if chatID == 0 {
		return nil, fmt.Errorf("telegram chat id is empty")
	}
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create telegram bot: %w", err)
	}
	bot.Debug = false
	return &Telegram{Sender: bot, ChatID: chatID, MinConfidence: minConfidence, Logger: log}, nil
}

func (t *Telegram) NotifyPrediction(ctx context.Context, odd models.Odd, out gateway.PredictOddsChangesOutput) error {
	if t == nil || t.Sender == nil {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if out.Confidence() < t.MinConfidence {
		return nil
	}
	fingerprint := out.PredictedChange + "|" + out.ConfidenceLevel
	t.mu.Lock()
	if t.last == nil {
		t.last = map[string]string{}
	}
	if t.last[odd.ID] == fingerprint {
		t.mu.Unlock()
		return nil
	}
	t.last[odd.ID] = fingerprint
	t.mu.Unlock()

	msg := tgbotapi.NewMessage(t.ChatID, FormatPrediction(odd, out))
	msg.ParseMode = tgbotapi.ModeHTML
	msg.DisableWebPagePreview = true
	if _, err := t.Sender.Send(msg); err != nil {
		t.mu.Lock()
		delete(t.last, odd.ID)
		t.mu.Unlock()
		return fmt.Errorf("send telegram message: %w", err)
	}
	logger.OrNop(t.Logger).Info("prediction alert sent",
		zap.String("odd_id", odd.ID),
		zap.String("confidence", out.ConfidenceLevel),
	)
	return nil
}

func FormatPrediction(odd models.Odd, out gateway.PredictOddsChangesOutput) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<b>%s</b> (%s)\n", escape(odd.Event), escape(string(odd.Sport)))
	fmt.Fprintf(&b, "%s %.2f vs %s %.2f", escape(odd.TeamA), odd.TeamAOdds, escape(odd.TeamB), odd.TeamBOdds)
	if odd.DrawOdds != nil {
		fmt.Fprintf(&b, ", draw %.2f", *odd.DrawOdds)
	}
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Predicted change: %s\n", escape(out.PredictedChange))
	fmt.Fprintf(&b, "Confidence: %s\n", escape(out.ConfidenceLevel))
	fmt.Fprintf(&b, "<i>%s</i>", escape(out.Reasoning))
	return b.String()
}

var htmlEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

func escape(s string) string {
	return htmlEscaper.Replace(s)
}
