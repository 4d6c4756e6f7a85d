package menu

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const promptGuidelines = `Guidelines:
1. Greet customers warmly
2. Help them browse the menu
3. Take their orders clearly
4. Confirm items and quantities
5. Calculate totals accurately
6. Be helpful with questions about menu items
7. When you calculate a price, show your work
8. Keep responses concise and friendly

When a customer places an order, acknowledge each item and provide the running total.
`

// SystemPrompt is the assistant instruction prepended to a new conversation.
// It lists every item and size multiplier of m.
func SystemPrompt(m Menu) string {
	title := cases.Title(language.English)

	var b strings.Builder
	b.WriteString("You are a friendly AI assistant for NoPickles, a fast food restaurant. Your job is to help customers place orders.\n\n")

	b.WriteString("Available menu items and prices:\n")
	for i, e := range m.Prices {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "- %s: %s", title.String(e.Name), FormatPrice(e.Price))
	}

	b.WriteString("\n\nSize multipliers (for beverages):\n")
	for i, mult := range m.PriceMultiplier {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "- %s: %sx price", title.String(mult.Size), formatFactor(mult.Factor))
	}

	b.WriteString("\n\n")
	b.WriteString(promptGuidelines)
	return b.String()
}

// formatFactor keeps one decimal for whole factors: 1 -> "1.0", 1.25 -> "1.25".
func formatFactor(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
