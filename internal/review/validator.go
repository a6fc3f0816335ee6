package review

// Accepted severity literals. Anything else invalidates the whole payload.
var allowedSeverities = map[string]struct{}{
	"high":   {},
	"medium": {},
	"low":    {},
}

// requiredIssueFields are the fields every issue must carry. Extra fields
// are permitted and ignored.
var requiredStringFields = []string{"type", "description", "suggestion"}

// ValidPayload reports whether a decoded JSON value has the suggestion
// payload shape:
//
//	{"issues": [{"type": str, "severity": "high"|"medium"|"low",
//	             "paragraph": int, "description": str, "suggestion": str}, ...]}
//
// It is a predicate, not a parser: arbitrary malformed values (including
// non-object top levels) return false, never an error or panic. An empty
// issues list is valid and denotes "no issues found". Acceptance is
// all-or-nothing; one bad element rejects the payload.
func ValidPayload(v any) bool {
	top, ok := v.(map[string]any)
	if !ok {
		return false
	}

	rawIssues, ok := top["issues"]
	if !ok {
		return false
	}

	issues, ok := rawIssues.([]any)
	if !ok {
		return false
	}

	for _, rawIssue := range issues {
		if !validIssue(rawIssue) {
			return false
		}
	}

	return true
}

func validIssue(v any) bool {
	issue, ok := v.(map[string]any)
	if !ok {
		return false
	}

	for _, field := range requiredStringFields {
		if _, ok := issue[field].(string); !ok {
			return false
		}
	}

	severity, ok := issue["severity"].(string)
	if !ok {
		return false
	}
	if _, ok := allowedSeverities[severity]; !ok {
		return false
	}

	return integralNumber(issue["paragraph"])
}

// integralNumber reports whether v is a JSON number with an integer value.
// encoding/json decodes numbers into float64, so 3 arrives as 3.0; a
// fractional value like 1.5 is not a valid paragraph reference.
func integralNumber(v any) bool {
	f, ok := v.(float64)
	if !ok {
		return false
	}
	return f == float64(int64(f))
}
