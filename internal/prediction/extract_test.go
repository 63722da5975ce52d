package prediction

import "testing"

func TestFirstJSONObject(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
		ok   bool
	}{
		{"bare object", `{"a":1}`, `{"a":1}`, true},
		{"wrapped in prose", "Here is my forecast:\n{\"a\":1}\nHope it helps.", `{"a":1}`, true},
		{"nested objects", `before {"a":{"b":2}} after`, `{"a":{"b":2}}`, true},
		{"brace inside string", `{"reasoning":"prices {rose}"} trailing`, `{"reasoning":"prices {rose}"}`, true},
		{"escaped quote inside string", `{"r":"said \"up{\" today"}`, `{"r":"said \"up{\" today"}`, true},
		{"no object", "no json here", "", false},
		{"unbalanced", `{"a":1`, "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := firstJSONObject(tc.in)
			if ok != tc.ok {
				t.Fatalf("ok: got %v want %v", ok, tc.ok)
			}
			if got != tc.want {
				t.Fatalf("span: got %q want %q", got, tc.want)
			}
		})
	}
}

func TestParseResultValid(t *testing.T) {
	content := `Based on my analysis:
{"predictedPrice": 2850.5, "confidence": "high", "trend": "up", "reasoning": "remittance inflows"}
`
	res, err := parseResult(content)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if res.PredictedPrice != 2850.5 || res.Confidence != ConfidenceHigh || res.Trend != TrendUp {
		t.Fatalf("unexpected result: %+v", res)
	}
	if res.Reasoning != "remittance inflows" {
		t.Fatalf("reasoning lost: %q", res.Reasoning)
	}
}

func TestParseResultRejectsBadPayloads(t *testing.T) {
	cases := []struct {
		name string
		in   string
	}{
		{"no json", "tomorrow gold will rise"},
		{"malformed json", `{"predictedPrice": oops}`},
		{"missing field", `{"predictedPrice": 2800, "confidence": "high", "trend": "up"}`},
		{"ill-typed price", `{"predictedPrice": "2800", "confidence": "high", "trend": "up", "reasoning": "x"}`},
		{"unknown confidence", `{"predictedPrice": 2800, "confidence": "certain", "trend": "up", "reasoning": "x"}`},
		{"unknown trend", `{"predictedPrice": 2800, "confidence": "high", "trend": "sideways", "reasoning": "x"}`},
		{"non-positive price", `{"predictedPrice": 0, "confidence": "high", "trend": "up", "reasoning": "x"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := parseResult(tc.in); err == nil {
				t.Fatalf("expected error for %q", tc.in)
			}
		})
	}
}
