package gateway

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// extractObject returns the outermost JSON object in a model reply, ignoring
// code fences or chatter around it.
func extractObject(text string) ([]byte, error) {
	start := strings.IndexByte(text, '{')
	end := strings.LastIndexByte(text, '}')
	if start < 0 || end <= start {
		return nil, fmt.Errorf("%w: no JSON object in reply", ErrMalformedOutput)
	}
	return []byte(text[start : end+1]), nil
}

func decodeReply(contract, text string, out any) error {
	obj, err := extractObject(text)
	if err != nil {
		return fmt.Errorf("%s: %w", contract, err)
	}
	dec := json.NewDecoder(bytes.NewReader(obj))
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("%s: %w: %v", contract, ErrMalformedOutput, err)
	}
	return nil
}

// flexString accepts a JSON string or number.
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("expected string or number, got %s", b)
	}
	*f = flexString(n.String())
	return nil
}

// flexNumber accepts a JSON number or a numeric string such as "$12.50".
type flexNumber float64

func (f *flexNumber) UnmarshalJSON(b []byte) error {
	var v float64
	if err := json.Unmarshal(b, &v); err == nil {
		*f = flexNumber(v)
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("expected number, got %s", b)
	}
	s = strings.NewReplacer("$", "", ",", "", " ", "").Replace(s)
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("expected number, got %q", s)
	}
	*f = flexNumber(v)
	return nil
}

type predictReply struct {
	PredictedChange string     `json:"predictedChange"`
	ConfidenceLevel flexString `json:"confidenceLevel"`
	Reasoning       string     `json:"reasoning"`
}

type valueReply struct {
	BetValue        *flexNumber `json:"betValue"`
	RiskAssessment  string      `json:"riskAssessment"`
	SuggestedAction string      `json:"suggestedAction"`
}

type insightReply struct {
	Condition    string     `json:"condition"`
	WinRate      flexString `json:"winRate"`
	Summary      string     `json:"summary"`
	BetsAnalyzed flexNumber `json:"betsAnalyzed"`
}

type historyReply struct {
	OverallSummary string         `json:"overallSummary"`
	Insights       []insightReply `json:"insights"`
}
