package decision

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

var (
	tokenPattern       = regexp.MustCompile(`(?i)\b(buy|hold|sell)\b`)
	boilerplatePattern = regexp.MustCompile(`(?i)^(final\s+)?(decision|recommendation|verdict)\b[:\s-]*`)
	bulletPattern      = regexp.MustCompile(`^([-*•]|\d+[.)])\s+`)
)

// Parser turns a raw model response into a validated Recommendation. It is
// the single place where the three-token invariant is enforced; nothing
// downstream ever sees unvalidated model text as a decision.
type Parser struct {
	MaxRationaleLen int
}

func NewParser() *Parser {
	return &Parser{MaxRationaleLen: 500}
}

// Parse scans the response for exactly one distinct decision token,
// case-insensitive and whitespace-tolerant. Zero or multiple distinct tokens
// fail with ErrAmbiguousDecision. The rationale is the remaining text with
// the decision line and instructional boilerplate stripped.
func (p *Parser) Parse(ticker, traceID, raw string) (Recommendation, error) {
	matches := tokenPattern.FindAllString(raw, -1)
	distinct := make(map[Action]bool, 3)
	for _, m := range matches {
		distinct[Action(strings.ToUpper(m))] = true
	}
	switch len(distinct) {
	case 0:
		return Recommendation{}, fmt.Errorf("no decision token in model response: %w", ErrAmbiguousDecision)
	case 1:
	default:
		found := make([]string, 0, len(distinct))
		for a := range distinct {
			found = append(found, string(a))
		}
		return Recommendation{}, fmt.Errorf("multiple decision tokens %v in model response: %w", found, ErrAmbiguousDecision)
	}

	var action Action
	for a := range distinct {
		action = a
	}

	return Recommendation{
		TraceID:     traceID,
		Ticker:      ticker,
		Action:      action,
		Rationale:   p.rationale(raw),
		GeneratedAt: time.Now().UTC(),
	}, nil
}

// rationale strips the decision line and boilerplate, then caps the length.
func (p *Parser) rationale(raw string) string {
	lines := strings.Split(raw, "\n")
	kept := make([]string, 0, len(lines))
	decisionDropped := false
	for _, line := range lines {
		line = strings.TrimSpace(line)
		line = boilerplatePattern.ReplaceAllString(line, "")
		line = bulletPattern.ReplaceAllString(line, "")
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		// The first line carrying the token is the decision line, not a reason.
		if !decisionDropped && tokenPattern.MatchString(line) {
			decisionDropped = true
			rest := strings.TrimSpace(tokenPattern.ReplaceAllString(line, ""))
			rest = strings.Trim(rest, ".,:;- ")
			if rest != "" {
				kept = append(kept, rest)
			}
			continue
		}
		kept = append(kept, line)
	}
	out := strings.TrimSpace(strings.Join(kept, "\n"))

	maxLen := p.MaxRationaleLen
	if maxLen <= 0 {
		maxLen = 500
	}
	runes := []rune(out)
	if len(runes) > maxLen {
		out = strings.TrimSpace(string(runes[:maxLen]))
	}
	return out
}
