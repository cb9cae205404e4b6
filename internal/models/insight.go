package models

import (
	"encoding/json"
	"strconv"
	"strings"
)

// MinBetsPerInsight is the significance floor for a reported insight.
const MinBetsPerInsight = 2

// Insight is a significance-filtered pattern from bet history. It is derived
// on demand and never stored.
type Insight struct {
	Condition    string `json:"condition" validate:"required"`
	WinRate      string `json:"winRate" validate:"required"`
	Summary      string `json:"summary" validate:"required"`
	BetsAnalyzed int    `json:"betsAnalyzed" validate:"gte=0"`
}

type Trend string

const (
	TrendUp      Trend = "up"
	TrendDown    Trend = "down"
	TrendNeutral Trend = "neutral"
)

// Trend reads the leading integer of WinRate: >= 60 is up, <= 40 is down.
// A "N losses" rate has no wins and always reads as down.
func (i Insight) Trend() Trend {
	if rate := strings.ToLower(strings.TrimSpace(i.WinRate)); strings.HasSuffix(rate, "loss") || strings.HasSuffix(rate, "losses") {
		return TrendDown
	}
	rate, ok := LeadingInt(i.WinRate)
	if !ok {
		return TrendNeutral
	}
	switch {
	case rate >= 60:
		return TrendUp
	case rate <= 40:
		return TrendDown
	default:
		return TrendNeutral
	}
}

// MarshalJSON adds the derived trend so clients can colour the insight.
func (i Insight) MarshalJSON() ([]byte, error) {
	type plain Insight
	return json.Marshal(struct {
		plain
		Trend Trend `json:"trend"`
	}{plain(i), i.Trend()})
}

// LeadingInt parses the integer prefix of s ("75%" -> 75).
func LeadingInt(s string) (int, bool) {
	s = strings.TrimSpace(s)
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}
	v, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return v, true
}
