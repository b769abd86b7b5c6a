package moderation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeSentinels(t *testing.T) {
	for _, raw := range []string{"flagged", "406"} {
		v := Normalize(raw)
		assert.True(t, v.Flagged, "payload %q should flag", raw)
		assert.Equal(t, 406, v.Status)
		assert.Equal(t, "auto-flagged", v.Reason)
	}

	for _, raw := range []string{"okay", "200"} {
		v := Normalize(raw)
		assert.False(t, v.Flagged, "payload %q should not flag", raw)
		assert.Equal(t, 200, v.Status)
	}
}

func TestNormalizeStructured(t *testing.T) {
	v := Normalize(`{"flag": true}`)
	assert.True(t, v.Flagged)

	v = Normalize(`{"status": 406}`)
	assert.True(t, v.Flagged)
	assert.Equal(t, 406, v.Status)

	v = Normalize(`{"flag": false, "status": 200, "rationale": "civil discussion"}`)
	assert.False(t, v.Flagged)
	assert.Equal(t, 200, v.Status)
	assert.Equal(t, "civil discussion", v.Reason)

	v = Normalize(`{"flag": true, "status": 406, "response": "targets a protected class", "category": "hate"}`)
	assert.True(t, v.Flagged)
	assert.Equal(t, "targets a protected class", v.Reason)
	assert.Equal(t, "hate", v.Category)
}

func TestNormalizeReasonKeyPriority(t *testing.T) {
	v := Normalize(`{"flag": true, "rationale": "first", "response": "second", "reason": "third"}`)
	assert.Equal(t, "first", v.Reason)

	v = Normalize(`{"flag": true, "response": "second", "reason": "third"}`)
	assert.Equal(t, "second", v.Reason)

	v = Normalize(`{"flag": true, "reason": "third"}`)
	assert.Equal(t, "third", v.Reason)
}

func TestNormalizeFlagMustBeBoolean(t *testing.T) {
	// A non-boolean flag field never flags on its own.
	v := Normalize(`{"flag": "true", "status": 200}`)
	assert.False(t, v.Flagged)
}

func TestNormalizeMarkerFallback(t *testing.T) {
	// Truncated JSON that still carries the status marker.
	v := Normalize(`{"flag": true, "status": 406, "rationale": "unterminated`)
	assert.True(t, v.Flagged)
	assert.Zero(t, v.Status)
	assert.Empty(t, v.Reason)
	assert.Empty(t, v.Category)

	v = Normalize(`garbage with "status" : 406 inside`)
	assert.True(t, v.Flagged)
}

func TestNormalizeUnparseableDefaultsOpen(t *testing.T) {
	for _, raw := range []string{"", "total nonsense", "status 406", `"status": 200`} {
		v := Normalize(raw)
		assert.False(t, v.Flagged, "payload %q should fail open", raw)
	}
}
