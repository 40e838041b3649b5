// Package extract parses raw backend replies into player-facing narration
// and an optional state patch. The backend is unreliable by nature: it may
// omit tags, leave them unterminated, misspell them, or wrap malformed
// JSON. Parse therefore has no error outcome - every input yields a
// narration string and a possibly-nil patch.
package extract

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/jwebster45206/campaign-engine/pkg/state"
)

var responsePattern = regexp.MustCompile(`(?is)\[RESPONSE\](.*?)\[/RESPONSE\]`)

// patchStrategy is one way of locating a state patch in the raw text.
// Strategies run in declared order against the original input; the first
// one whose captured span both matches and parses as JSON wins. The
// ordering is a contract: the well-formed closed tag must win over the
// sloppier fallbacks.
type patchStrategy struct {
	name    string
	pattern *regexp.Regexp
}

var patchStrategies = []patchStrategy{
	{"closed_tag", regexp.MustCompile(`(?is)\[STATE_UPDATE\](.*?)\[/STATE_UPDATE\]`)},
	{"unterminated_tag", regexp.MustCompile(`(?is)\[STATE_UPDATE\](.*)$`)},
	{"bare_label", regexp.MustCompile(`(?is)STATE_UPDATE[:\s]*(\{.*?\})`)},
	{"alternate_tag", regexp.MustCompile(`(?is)\[STATE\](.*?)\[/STATE\]`)},
}

// Cleanup patterns, applied unconditionally to the narration candidate.
// Each strip runs regardless of whether the matching extraction strategy
// succeeded: the backend can emit state-looking text that none of the
// strategies recognized as well-formed.
var (
	stripStateUpdate = regexp.MustCompile(`(?is)\[STATE_UPDATE\].*?(\[/STATE_UPDATE\]|$)`)
	stripStateTag    = regexp.MustCompile(`(?is)\[STATE\].*?(\[/STATE\]|$)`)
	stripTrailing    = regexp.MustCompile(`(?is)STATE_UPDATE[:\s]*\{.*$`)
	stripMarkers     = regexp.MustCompile(`(?i)\[/?RESPONSE\]`)
)

// Parse splits a raw backend reply into narration and an optional state
// patch. The narration is never empty-by-error: if no [RESPONSE] span is
// found, the whole input is the narration candidate. A nil patch is a
// normal outcome, not a failure.
func Parse(raw string) (string, *state.StatePatch) {
	narration := raw
	if m := responsePattern.FindStringSubmatch(raw); m != nil {
		narration = strings.TrimSpace(m[1])
	}

	patch := extractPatch(raw)

	// Cleanup pass: strip state blocks and stray tag markers from the
	// narration candidate, in fixed order.
	narration = strings.TrimSpace(stripStateUpdate.ReplaceAllString(narration, ""))
	narration = strings.TrimSpace(stripStateTag.ReplaceAllString(narration, ""))
	narration = strings.TrimSpace(stripTrailing.ReplaceAllString(narration, ""))
	narration = strings.TrimSpace(stripMarkers.ReplaceAllString(narration, ""))

	return narration, patch
}

// extractPatch runs the patch strategies in priority order against the
// original raw text. A match whose span fails to parse as JSON does not
// abort the cascade; the next strategy gets its chance.
func extractPatch(raw string) *state.StatePatch {
	for _, s := range patchStrategies {
		m := s.pattern.FindStringSubmatch(raw)
		if m == nil {
			continue
		}
		span := strings.TrimSpace(m[1])
		var patch state.StatePatch
		if err := json.Unmarshal([]byte(span), &patch); err != nil {
			continue
		}
		return &patch
	}
	return nil
}
