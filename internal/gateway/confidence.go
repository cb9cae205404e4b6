package gateway

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// NormalizeConfidence turns "75", "75 %", "0.75" or "75.4%" into "75%".
// Values are clamped to 0..100.
func NormalizeConfidence(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	s = strings.TrimSuffix(s, "%")
	s = strings.TrimSpace(s)
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return "", fmt.Errorf("%w: confidence level %q", ErrMalformedOutput, raw)
	}
	if (v > 0 && v < 1) || (strings.Contains(s, ".") && v == 1) {
		v *= 100
	}
	v = math.Max(0, math.Min(100, v))
	return fmt.Sprintf("%d%%", int(math.Round(v))), nil
}
