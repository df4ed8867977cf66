// Package category guesses a display category for an application from its name.
package category

import (
	"strings"

	"appdeck/internal/models"
)

// Rule maps a category label to the name substrings that select it.
type Rule struct {
	Label    string   `yaml:"label"`
	Keywords []string `yaml:"keywords"`
}

// Rules is the built-in rule table. Order matters: rules are evaluated
// top to bottom and the first keyword hit wins, so a name matching both
// "code" and "chrome" is Development, not Internet.
var Rules = []Rule{
	{Label: models.CategoryDevelopment, Keywords: []string{"code", "term", "xcode"}},
	{Label: models.CategorySocial, Keywords: []string{"discord", "slack", "mail", "message"}},
	{Label: models.CategoryMedia, Keywords: []string{"spotify", "music", "tv", "photo"}},
	{Label: models.CategoryInternet, Keywords: []string{"chrome", "safari", "firefox"}},
	{Label: models.CategoryDesign, Keywords: []string{"figma", "adobe"}},
	{Label: models.CategorySystem, Keywords: []string{"settings", "preference", "activity"}},
}

// Guess returns the category label for an application display name,
// or "Other" when no keyword matches. Matching is case-insensitive.
func Guess(name string) string {
	return GuessWith(nil, name)
}

// GuessWith evaluates extra rules ahead of the built-in table. The extra
// rules come from the user's settings file; passing nil is equivalent to Guess.
func GuessWith(extra []Rule, name string) string {
	lower := strings.ToLower(name)

	for _, rule := range extra {
		if matches(rule, lower) {
			return rule.Label
		}
	}
	for _, rule := range Rules {
		if matches(rule, lower) {
			return rule.Label
		}
	}
	return models.CategoryOther
}

func matches(rule Rule, lowerName string) bool {
	for _, kw := range rule.Keywords {
		if kw == "" {
			continue
		}
		if strings.Contains(lowerName, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}
