package prediction

import (
	"encoding/json"
	"fmt"
	"strings"
)

// firstJSONObject returns the first balanced {...} span in s. The model is
// asked for JSON but is free to wrap it in prose, so we scan rather than
// unmarshal the whole response. String literals are honored so braces
// inside them do not affect nesting depth.
func firstJSONObject(s string) (string, bool) {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return "", false
	}
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}
	return "", false
}

// parseResult extracts and validates a forecast from free-form model
// output. A missing span, malformed JSON, or any absent or out-of-range
// field is an error; the caller falls back.
func parseResult(content string) (Result, error) {
	span, ok := firstJSONObject(content)
	if !ok {
		return Result{}, fmt.Errorf("no JSON object found in response")
	}
	var raw struct {
		PredictedPrice *float64 `json:"predictedPrice"`
		Confidence     *string  `json:"confidence"`
		Trend          *string  `json:"trend"`
		Reasoning      *string  `json:"reasoning"`
	}
	if err := json.Unmarshal([]byte(span), &raw); err != nil {
		return Result{}, fmt.Errorf("parse response JSON: %w", err)
	}
	if raw.PredictedPrice == nil || raw.Confidence == nil || raw.Trend == nil || raw.Reasoning == nil {
		return Result{}, fmt.Errorf("response JSON is missing required fields")
	}
	switch *raw.Confidence {
	case ConfidenceHigh, ConfidenceMedium, ConfidenceLow:
	default:
		return Result{}, fmt.Errorf("invalid confidence %q", *raw.Confidence)
	}
	switch *raw.Trend {
	case TrendUp, TrendDown:
	default:
		return Result{}, fmt.Errorf("invalid trend %q", *raw.Trend)
	}
	if *raw.PredictedPrice <= 0 {
		return Result{}, fmt.Errorf("invalid predicted price %v", *raw.PredictedPrice)
	}
	return Result{
		PredictedPrice: *raw.PredictedPrice,
		Confidence:     *raw.Confidence,
		Trend:          *raw.Trend,
		Reasoning:      *raw.Reasoning,
	}, nil
}
