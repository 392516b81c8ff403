package decision

import (
	"fmt"
	"strings"

	"stockpilot/internal/market"
)

// notAvailable is how data gaps are spelled out in the prompt, so the model
// sees them instead of guessing around silently dropped fields.
const notAvailable = "not available"

// DefaultSystemPrompt is used when no prompt template file is configured.
const DefaultSystemPrompt = "You are an equity analyst. You combine financial metrics, " +
	"technical indicators and recent news into a single investment recommendation."

// TemplateSource supplies the system prompt, typically backed by a watched
// template file.
type TemplateSource interface {
	SystemPrompt() string
}

// Composer deterministically renders one analysis input into the prompt
// pair. Identical inputs produce byte-identical output.
type Composer struct {
	Templates        TemplateSource
	MaxResponseChars int
}

func NewComposer(templates TemplateSource) *Composer {
	return &Composer{Templates: templates, MaxResponseChars: 800}
}

// Compose builds the system and user prompts. Unavailable metrics render as
// an explicit phrase; the output-format instructions pin the reply to exactly
// one decision token so the parser stays unambiguous.
func (c *Composer) Compose(input Input) PromptBundle {
	system := DefaultSystemPrompt
	if c.Templates != nil {
		if s := strings.TrimSpace(c.Templates.SystemPrompt()); s != "" {
			system = s
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Provide a concise stock analysis and decision recommendation for %s based on the following information.\n\n", input.Ticker)

	snap := input.Snapshot
	b.WriteString("Company Details:\n")
	fmt.Fprintf(&b, "- Name: %s\n", orNotAvailable(snap.Company))
	fmt.Fprintf(&b, "- Sector: %s\n", orNotAvailable(snap.Sector))
	fmt.Fprintf(&b, "- Industry: %s\n", orNotAvailable(snap.Industry))
	fmt.Fprintf(&b, "- Market Cap: %s\n", snap.MarketCap.Format(0, notAvailable))

	b.WriteString("\nFinancial Metrics:\n")
	fmt.Fprintf(&b, "- Current Price: %s\n", snap.Price.Format(2, notAvailable))
	fmt.Fprintf(&b, "- 52 Week High: %s\n", snap.High52w.Format(2, notAvailable))
	fmt.Fprintf(&b, "- 52 Week Low: %s\n", snap.Low52w.Format(2, notAvailable))
	fmt.Fprintf(&b, "- P/E Ratio (trailing): %s\n", snap.TrailingPE.Format(2, notAvailable))
	fmt.Fprintf(&b, "- Dividend Yield: %s\n", percentOrNotAvailable(snap.DividendYield))
	fmt.Fprintf(&b, "- Return on Equity: %s\n", percentOrNotAvailable(snap.ROE))

	ind := input.Indicators
	b.WriteString("\nTechnical Indicators:\n")
	fmt.Fprintf(&b, "- Distance from 200-day SMA: %s\n", percentValue(ind.SMA200Deviation))
	fmt.Fprintf(&b, "- RSI (14): %s\n", ind.RSI14.Format(1, notAvailable))
	fmt.Fprintf(&b, "- 52-week range position: %s\n", percentValue(ind.RangePosition))

	b.WriteString("\nRecent News Headlines:\n")
	if input.Digest.Empty() {
		b.WriteString("No recent news available.\n")
	} else {
		for i, it := range input.Digest.Items {
			fmt.Fprintf(&b, "%d. %s", i+1, it.Headline)
			if it.Source != "" {
				fmt.Fprintf(&b, " (%s)", it.Source)
			}
			b.WriteString("\n")
		}
	}

	maxChars := c.MaxResponseChars
	if maxChars <= 0 {
		maxChars = 800
	}
	b.WriteString("\nAnalysis Requirements:\n")
	b.WriteString("1. Respond with exactly one of the tokens BUY, HOLD or SELL on the first line, and use that token nowhere else.\n")
	b.WriteString("2. Then give the 2-3 key reasons for the recommendation, one per line.\n")
	fmt.Fprintf(&b, "3. Keep the whole response under %d characters.\n", maxChars)
	b.WriteString("4. Plain text only: no markdown, headings or other formatting.\n")
	b.WriteString("Fields marked \"not available\" are genuine data gaps; do not invent values for them.\n")

	return PromptBundle{System: system, User: b.String()}
}

func orNotAvailable(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return notAvailable
	}
	return s
}

// percentOrNotAvailable renders a raw fraction metric (0.0123 -> "1.23%").
func percentOrNotAvailable(m market.Metric) string {
	if !m.Available() {
		return notAvailable
	}
	return m.FormatPercent(2, notAvailable) + "%"
}

// percentValue renders a metric that is already expressed in percent.
func percentValue(m market.Metric) string {
	if !m.Available() {
		return notAvailable
	}
	return m.Format(2, notAvailable) + "%"
}
