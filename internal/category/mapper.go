package category

import (
	"strings"

	"plastictrack/internal/domain"
)

// rule binds a category to the keywords that select it. Order is a contract:
// the first matching rule wins, so "plastic bottle" resolves to Bottle even
// though it also carries a Plastic keyword.
type rule struct {
	category string
	keywords []string
}

var rules = []rule{
	{domain.CategoryBottle, []string{"bottle", "flask", "jar"}},
	{domain.CategoryBag, []string{"bag", "sack", "pouch"}},
	{domain.CategoryCup, []string{"cup", "mug", "glass"}},
	{domain.CategoryStraw, []string{"straw"}},
	{domain.CategoryContainer, []string{"packet", "wrapper", "container"}},
	{domain.CategoryPlastic, []string{"plastic", "poly"}},
}

// Map resolves a raw detector label to one of the fixed plastic categories.
// Matching is case-insensitive substring search; labels that hit no keyword
// map to Other. Map never fails.
func Map(rawLabel string) string {
	l := strings.ToLower(rawLabel)
	for _, r := range rules {
		for _, kw := range r.keywords {
			if strings.Contains(l, kw) {
				return r.category
			}
		}
	}
	return domain.CategoryOther
}
