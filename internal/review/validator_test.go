package review

import (
	"encoding/json"
	"testing"
)

// decode runs a raw JSON string through the same decode path the session
// uses before validation.
func decode(t *testing.T, raw string) any {
	t.Helper()
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		t.Fatalf("test input is not valid JSON: %v", err)
	}
	return v
}

func TestValidPayload(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want bool
	}{
		{
			name: "empty issues list is valid",
			raw:  `{"issues": []}`,
			want: true,
		},
		{
			name: "complete issue is valid",
			raw:  `{"issues": [{"type":"t","severity":"high","paragraph":1,"description":"d","suggestion":"s"}]}`,
			want: true,
		},
		{
			name: "all accepted severities",
			raw: `{"issues": [
				{"type":"t","severity":"high","paragraph":1,"description":"d","suggestion":"s"},
				{"type":"t","severity":"medium","paragraph":2,"description":"d","suggestion":"s"},
				{"type":"t","severity":"low","paragraph":3,"description":"d","suggestion":"s"}
			]}`,
			want: true,
		},
		{
			name: "extra fields are permitted and ignored",
			raw:  `{"issues": [{"type":"t","severity":"low","paragraph":1,"description":"d","suggestion":"s","confidence":0.9}], "model":"x"}`,
			want: true,
		},
		{
			name: "unknown severity invalidates whole payload",
			raw:  `{"issues": [{"type":"t","severity":"urgent","paragraph":1,"description":"d","suggestion":"s"}]}`,
			want: false,
		},
		{
			name: "one bad element rejects an otherwise valid list",
			raw: `{"issues": [
				{"type":"t","severity":"high","paragraph":1,"description":"d","suggestion":"s"},
				{"type":"t","severity":"high","paragraph":1,"description":"d"}
			]}`,
			want: false,
		},
		{
			name: "issues must be a list",
			raw:  `{"issues": "not-a-list"}`,
			want: false,
		},
		{
			name: "bare list at top level is invalid",
			raw:  `[{"type":"t","severity":"high","paragraph":1,"description":"d","suggestion":"s"}]`,
			want: false,
		},
		{
			name: "missing issues key is invalid",
			raw:  `{"problems": []}`,
			want: false,
		},
		{
			name: "missing required field is invalid",
			raw:  `{"issues": [{"type":"t","severity":"high","paragraph":1,"description":"d"}]}`,
			want: false,
		},
		{
			name: "non-object issue element is invalid",
			raw:  `{"issues": ["oops"]}`,
			want: false,
		},
		{
			name: "paragraph must be a number",
			raw:  `{"issues": [{"type":"t","severity":"high","paragraph":"1","description":"d","suggestion":"s"}]}`,
			want: false,
		},
		{
			name: "fractional paragraph is invalid",
			raw:  `{"issues": [{"type":"t","severity":"high","paragraph":1.5,"description":"d","suggestion":"s"}]}`,
			want: false,
		},
		{
			name: "string top level is invalid",
			raw:  `"issues"`,
			want: false,
		},
		{
			name: "null top level is invalid",
			raw:  `null`,
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidPayload(decode(t, tt.raw)); got != tt.want {
				t.Errorf("ValidPayload() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValidPayloadToleratesNonJSONValues(t *testing.T) {
	// The predicate must never panic on arbitrary Go values either.
	inputs := []any{nil, 42, 3.14, "x", []byte("x"), map[int]string{1: "x"}, struct{}{}}
	for _, v := range inputs {
		if ValidPayload(v) {
			t.Errorf("ValidPayload(%#v) = true, want false", v)
		}
	}
}
