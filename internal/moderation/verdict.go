// Package moderation holds the comment-moderation core: classifier response
// normalization, the fail-open classifier client, the visibility policy, and
// the orchestration service that ties them to the comment board.
package moderation

import (
	"encoding/json"
	"regexp"
)

// Verdict is the normalized moderation decision derived from classifier output.
// It is transient: only its boolean effect (create or skip a FLAG action) is
// ever persisted.
type Verdict struct {
	Flagged  bool   `json:"flag"`
	Status   int    `json:"status,omitempty"`
	Reason   string `json:"reason,omitempty"`
	Category string `json:"category,omitempty"`
}

// The classifier's response contract has accreted shapes over time: one-word
// sentinels, numeric statuses as plain strings, and JSON-encoded objects. Each
// rule handles one historical shape; the first rule that recognizes the payload
// wins. Order matters: "406" and "200" are valid JSON numbers and must be
// claimed by the sentinel rule before the structured parse sees them.
type normalizeRule func(raw string) (Verdict, bool)

var normalizeRules = []normalizeRule{
	sentinelRule,
	structuredRule,
	statusMarkerRule,
}

var status406Marker = regexp.MustCompile(`"status"\s*:\s*406`)

// Normalize converts a raw classifier payload into a Verdict. It is total:
// unrecognizable input yields the least destructive outcome, not flagged.
func Normalize(raw string) Verdict {
	for _, rule := range normalizeRules {
		if v, ok := rule(raw); ok {
			return v
		}
	}
	return Verdict{}
}

// sentinelRule matches the simplified one-word and numeric-string responses.
func sentinelRule(raw string) (Verdict, bool) {
	switch raw {
	case "flagged", "406":
		return Verdict{Flagged: true, Status: 406, Reason: "auto-flagged"}, true
	case "okay", "200":
		return Verdict{Flagged: false, Status: 200}, true
	}
	return Verdict{}, false
}

// structuredRule matches payloads that parse as JSON. Field probing is loose:
// the model emits flag as a bool, status as a number, and the reason under any
// of three keys depending on its mood.
func structuredRule(raw string) (Verdict, bool) {
	var payload interface{}
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return Verdict{}, false
	}

	v := Verdict{}
	obj, _ := payload.(map[string]interface{})

	if flag, ok := obj["flag"].(bool); ok && flag {
		v.Flagged = true
	}
	if status, ok := obj["status"].(float64); ok {
		v.Status = int(status)
		if v.Status == 406 {
			v.Flagged = true
		}
	}
	for _, key := range []string{"rationale", "response", "reason"} {
		if reason, ok := obj[key].(string); ok && reason != "" {
			v.Reason = reason
			break
		}
	}
	if category, ok := obj["category"].(string); ok {
		v.Category = category
	}

	return v, true
}

// statusMarkerRule is the last resort for truncated or malformed JSON: a
// status-406 marker anywhere in the raw text still counts as a flag, with no
// other fields populated.
func statusMarkerRule(raw string) (Verdict, bool) {
	if status406Marker.MatchString(raw) {
		return Verdict{Flagged: true}, true
	}
	return Verdict{}, false
}
