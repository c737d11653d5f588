package i18n

// Segment is one reusable piece of a spoken prompt.
type Segment struct {
	First  string `yaml:"first" json:"first"`
	Middle string `yaml:"middle" json:"middle"`
	Last   string `yaml:"last" json:"last"`
}

// At picks the phrasing for position index in a prompt of n segments. The
// first position wins over the last for single-segment prompts.
func (s Segment) At(index, n int) string {
	switch {
	case index == 0:
		return s.First
	case index == n-1:
		return s.Last
	default:
		return s.Middle
	}
}

func (s Segment) complete() bool {
	return s.First != "" && s.Middle != "" && s.Last != ""
}

// Segments maps a segment key (greeting, balance, ...) to its phrasings.
type Segments map[string]Segment
