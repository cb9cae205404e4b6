package notify

import (
	"context"
	"errors"
	"strings"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"betsense/internal/gateway"
	"betsense/internal/models"
)

type fakeSender struct {
	sent []tgbotapi.MessageConfig
	err  error
}

func (f *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	if f.err != nil {
		return tgbotapi.Message{}, f.err
	}
	if m, ok := c.(tgbotapi.MessageConfig); ok {
		f.sent = append(f.sent, m)
	}
	return tgbotapi.Message{}, nil
}

func TestTelegram_NotifyPrediction(t *testing.T) {
	s := &fakeSender{}
	tg := &Telegram{Sender: s, ChatID: 42, MinConfidence: 70}
	odd := models.Odd{ID: "1", Event: "Champions League Final", Sport: models.SportSoccer, TeamA: "Real Madrid", TeamAOdds: 2.5, TeamB: "Liverpool", TeamBOdds: 3}
	ctx := context.Background()

	low := gateway.PredictOddsChangesOutput{PredictedChange: "Stable (±0%)", ConfidenceLevel: "50%", Reasoning: "quiet"}
	if err := tg.NotifyPrediction(ctx, odd, low); err != nil || len(s.sent) != 0 {
		t.Fatalf("low confidence sent=%d err=%v", len(s.sent), err)
	}

	high := gateway.PredictOddsChangesOutput{PredictedChange: "Decrease of about 1%", ConfidenceLevel: "71%", Reasoning: "Injury <b>"}
	if err := tg.NotifyPrediction(ctx, odd, high); err != nil {
		t.Fatalf("notify: %v", err)
	}
	if len(s.sent) != 1 || s.sent[0].ChatID != 42 {
		t.Fatalf("sent=%+v", s.sent)
	}
	if !strings.Contains(s.sent[0].Text, "Injury &lt;b&gt;") {
		t.Fatalf("text=%q not escaped", s.sent[0].Text)
	}

	// Same prediction again is not repeated.
	if err := tg.NotifyPrediction(ctx, odd, high); err != nil || len(s.sent) != 1 {
		t.Fatalf("repeat sent=%d err=%v", len(s.sent), err)
	}
}

func TestTelegram_SendErrorAllowsRetry(t *testing.T) {
	s := &fakeSender{err: errors.New("429")}
	tg := &Telegram{Sender: s, ChatID: 1, MinConfidence: 0}
	odd := models.Odd{ID: "2", Event: "E", Sport: models.SportTennis}
	out := gateway.PredictOddsChangesOutput{PredictedChange: "x", ConfidenceLevel: "80%", Reasoning: "r"}
	if err := tg.NotifyPrediction(context.Background(), odd, out); err == nil {
		t.Fatalf("want error")
	}
	s.err = nil
	if err := tg.NotifyPrediction(context.Background(), odd, out); err != nil || len(s.sent) != 1 {
		t.Fatalf("retry sent=%d err=%v", len(s.sent), err)
	}
}

func TestTelegram_Nil(t *testing.T) {
	var tg *Telegram
	if err := tg.NotifyPrediction(context.Background(), models.Odd{}, gateway.PredictOddsChangesOutput{}); err != nil {
		t.Fatalf("err=%v", err)
	}
}
