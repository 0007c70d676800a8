package widget

import "strings"

// Matches reports whether a card is visible for query: a case-insensitive
// substring match on the displayed name or the displayed symbol. The empty
// query matches everything.
func Matches(card CardViewModel, query string) bool {
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(card.Name), q) ||
		strings.Contains(strings.ToLower(card.Symbol), q)
}
