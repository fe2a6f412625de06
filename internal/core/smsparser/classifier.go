package smsparser

import (
	"strings"

	"github.com/SscSPs/sms_budget_tracker/internal/core/domain"
)

// KeywordRule maps a lower-case keyword to the category it implies.
type KeywordRule struct {
	Keyword  string
	Category domain.Category
}

// Order matters: the first keyword found in a message decides its category.
var defaultKeywordRules = []KeywordRule{
	{"shoprite", domain.CategoryFood},
	{"pick", domain.CategoryFood},
	{"spar", domain.CategoryFood},
	{"woolworths", domain.CategoryFood},
	{"food", domain.CategoryFood},
	{"restaurant", domain.CategoryFood},
	{"cafe", domain.CategoryFood},
	{"kfc", domain.CategoryFood},
	{"nandos", domain.CategoryFood},
	{"grocery", domain.CategoryFood},
	{"supermarket", domain.CategoryFood},

	{"taxi", domain.CategoryTransport},
	{"bus", domain.CategoryTransport},
	{"fuel", domain.CategoryTransport},
	{"petrol", domain.CategoryTransport},
	{"garage", domain.CategoryTransport},
	{"total", domain.CategoryTransport},
	{"shell", domain.CategoryTransport},
	{"engen", domain.CategoryTransport},
	{"uber", domain.CategoryTransport},

	{"rent", domain.CategoryAccommodation},
	{"hostel", domain.CategoryAccommodation},
	{"landlord", domain.CategoryAccommodation},
	{"accommodation", domain.CategoryAccommodation},
	{"housing", domain.CategoryAccommodation},

	{"cinema", domain.CategoryEntertainment},
	{"movie", domain.CategoryEntertainment},
	{"game", domain.CategoryEntertainment},
	{"sports", domain.CategoryEntertainment},
	{"bar", domain.CategoryEntertainment},
	{"club", domain.CategoryEntertainment},

	{"vodacom", domain.CategoryUtilities},
	{"mtn", domain.CategoryUtilities},
	{"econet", domain.CategoryUtilities},
	{"airtime", domain.CategoryUtilities},
	{"data", domain.CategoryUtilities},
	{"electricity", domain.CategoryUtilities},
	{"water", domain.CategoryUtilities},
	{"lewa", domain.CategoryUtilities},

	{"university", domain.CategoryEducation},
	{"nul", domain.CategoryEducation},
	{"tuition", domain.CategoryEducation},
	{"book", domain.CategoryEducation},
	{"stationery", domain.CategoryEducation},
	{"school", domain.CategoryEducation},

	{"pharmacy", domain.CategoryHealth},
	{"clinic", domain.CategoryHealth},
	{"hospital", domain.CategoryHealth},
	{"medicine", domain.CategoryHealth},
	{"doctor", domain.CategoryHealth},
}

// DefaultKeywordRules returns a copy of the built-in classification table.
func DefaultKeywordRules() []KeywordRule {
	rules := make([]KeywordRule, len(defaultKeywordRules))
	copy(rules, defaultKeywordRules)
	return rules
}

// Classifier assigns a category from an ordered keyword table.
type Classifier struct {
	rules []KeywordRule
}

// NewClassifier builds a classifier over rules. Keywords are lower-cased.
func NewClassifier(rules []KeywordRule) *Classifier {
	normalized := make([]KeywordRule, 0, len(rules))
	for _, r := range rules {
		kw := strings.ToLower(strings.TrimSpace(r.Keyword))
		if kw == "" {
			continue
		}
		normalized = append(normalized, KeywordRule{Keyword: kw, Category: r.Category})
	}
	return &Classifier{rules: normalized}
}

// Classify returns the category of the first keyword that starts a word in
// text, or CategoryOther when none does.
func (c *Classifier) Classify(text string) domain.Category {
	lower := strings.ToLower(text)
	for _, r := range c.rules {
		if containsAtWordStart(lower, r.Keyword) {
			return r.Category
		}
	}
	return domain.CategoryOther
}

// containsAtWordStart is substring containment anchored on the left at a
// word boundary, so "rent" does not fire inside "parent".
func containsAtWordStart(text, keyword string) bool {
	offset := 0
	for {
		i := strings.Index(text[offset:], keyword)
		if i < 0 {
			return false
		}
		pos := offset + i
		if pos == 0 || !isWordByte(text[pos-1]) {
			return true
		}
		offset = pos + 1
	}
}

func isWordByte(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9'
}
