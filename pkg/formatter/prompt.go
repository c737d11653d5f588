package formatter

import (
	"strings"

	"github.com/voicefoundry-au-solutionconsultants/omilia-utils/pkg/i18n"
)

// PromptSeparator joins segment phrasings.
const PromptSeparator = ". "

// DefaultPromptSequence is spoken when the orchestrator sends no sequence.
var DefaultPromptSequence = []string{"greeting", "balance", "closing"}

// Prompt assembles a spoken prompt from segment keys. Unknown and blank keys
// are dropped before positions are assigned, so the first known segment uses
// its First phrasing and the last known one its Last phrasing. An empty
// sequence means DefaultPromptSequence.
func Prompt(cat *i18n.Catalog, locale string, sequence []string) string {
	if len(sequence) == 0 {
		sequence = DefaultPromptSequence
	}

	segments := make([]i18n.Segment, 0, len(sequence))
	for _, key := range sequence {
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		if seg, ok := cat.Segment(locale, key); ok {
			segments = append(segments, seg)
		}
	}

	parts := make([]string, 0, len(segments))
	for i, seg := range segments {
		if text := seg.At(i, len(segments)); text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, PromptSeparator)
}
