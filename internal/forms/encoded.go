package forms

import (
	"encoding/json"
	"strings"

	"go.uber.org/zap"

	"betsense/internal/logger"
)

// Encoded is a nested value that arrives either as JSON text (form posts,
// quoted strings in JSON bodies) or inline in a JSON body.
type Encoded string

func (e *Encoded) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*e = Encoded(s)
		return nil
	}
	*e = Encoded(b)
	return nil
}

// encode is the inverse used when rendering a stored odd back into a form.
func encode(v any) Encoded {
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return Encoded(b)
}

// decode parses raw into T. Empty input yields def; malformed input is
// logged and also yields def.
func decode[T any](log *zap.Logger, field string, raw Encoded, def T) T {
	text := strings.TrimSpace(string(raw))
	if text == "" || text == "null" {
		return def
	}
	var out T
	if err := json.Unmarshal([]byte(text), &out); err != nil {
		logger.OrNop(log).Warn("malformed json field, using default",
			zap.String("field", field),
			zap.Error(err),
		)
		return def
	}
	return out
}
