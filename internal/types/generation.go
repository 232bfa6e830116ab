//nolint:revive // types is a standard Go package name pattern
package types

// SkillGap is one missing skill suggested by a skill-gap analysis.
type SkillGap struct {
	Skill  string `json:"skill"`
	Reason string `json:"reason"`
}

// MatchResult scores how well a document fits a job description.
type MatchResult struct {
	Score       int      `json:"score"`
	Suggestions []string `json:"suggestions"`
}

// MatchBand groups scores the way the preview colours them.
type MatchBand string

// Match bands.
const (
	MatchStrong MatchBand = "strong"
	MatchFair   MatchBand = "fair"
	MatchWeak   MatchBand = "weak"
)

// Band returns the display band for the score: above 80 is strong,
// above 50 is fair, anything else is weak.
func (m MatchResult) Band() MatchBand {
	switch {
	case m.Score > 80:
		return MatchStrong
	case m.Score > 50:
		return MatchFair
	default:
		return MatchWeak
	}
}
