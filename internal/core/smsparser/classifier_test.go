package smsparser_test

import (
	"testing"

	"github.com/SscSPs/sms_budget_tracker/internal/core/domain"
	"github.com/SscSPs/sms_budget_tracker/internal/core/smsparser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifier_Categories(t *testing.T) {
	c := smsparser.NewClassifier(smsparser.DefaultKeywordRules())
	tests := []struct {
		input string
		want  domain.Category
	}{
		{"Payment to SHOPRITE MASERU", domain.CategoryFood},
		{"Purchase at Pick n Pay", domain.CategoryFood},
		{"Taxi fare", domain.CategoryTransport},
		{"Engen Maseru fuel", domain.CategoryTransport},
		{"Paid rent to landlord", domain.CategoryAccommodation},
		{"Cinema tickets", domain.CategoryEntertainment},
		{"Vodacom airtime purchase", domain.CategoryUtilities},
		{"LEWA water bill", domain.CategoryUtilities},
		{"NUL tuition payment", domain.CategoryEducation},
		{"Maseru Pharmacy", domain.CategoryHealth},
		{"Paid M50 to Shop", domain.CategoryOther},
		{"You have received M500.00 from PARENT TRANSFER", domain.CategoryOther},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Classify(tt.input))
		})
	}
}

// The keyword table is scanned top-down; these pin which category wins when
// several keywords appear in the same message.
func TestClassifier_KeywordPrecedence(t *testing.T) {
	c := smsparser.NewClassifier(smsparser.DefaultKeywordRules())
	tests := []struct {
		input string
		want  domain.Category
	}{
		{"Shoprite taxi rank", domain.CategoryFood},           // shoprite before taxi
		{"Uber to the cinema", domain.CategoryTransport},       // uber before cinema
		{"Hostel data bundle", domain.CategoryAccommodation},   // hostel before data
		{"School book and pharmacy", domain.CategoryEducation}, // book before school before pharmacy
		{"Spar fuel", domain.CategoryFood},
		{"Clinic at the university", domain.CategoryEducation},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Classify(tt.input))
		})
	}
}

func TestClassifier_EmptyTable(t *testing.T) {
	c := smsparser.NewClassifier(nil)
	assert.Equal(t, domain.CategoryOther, c.Classify("shoprite"))
}

// Known limitations of keyword classification. These document behaviour,
// not desired outcomes.
func TestClassifier_KnownLimitations(t *testing.T) {
	c := smsparser.NewClassifier(smsparser.DefaultKeywordRules())

	// word-prefix matching still fires on longer words
	assert.Equal(t, domain.CategoryEntertainment, c.Classify("Barclays card payment"))
	assert.Equal(t, domain.CategoryTransport, c.Classify("Total due M30.00"))
	// brands missing from the table fall back to other
	assert.Equal(t, domain.CategoryOther, c.Classify("Paid M25.00 at Sefalana"))
}

// Snapshot of the full table. Reordering or dropping a keyword changes which
// category wins for real messages, so any edit here must be deliberate.
func TestDefaultKeywordRules_Snapshot(t *testing.T) {
	want := []struct {
		category domain.Category
		keywords []string
	}{
		{domain.CategoryFood, []string{"shoprite", "pick", "spar", "woolworths", "food", "restaurant", "cafe", "kfc", "nandos", "grocery", "supermarket"}},
		{domain.CategoryTransport, []string{"taxi", "bus", "fuel", "petrol", "garage", "total", "shell", "engen", "uber"}},
		{domain.CategoryAccommodation, []string{"rent", "hostel", "landlord", "accommodation", "housing"}},
		{domain.CategoryEntertainment, []string{"cinema", "movie", "game", "sports", "bar", "club"}},
		{domain.CategoryUtilities, []string{"vodacom", "mtn", "econet", "airtime", "data", "electricity", "water", "lewa"}},
		{domain.CategoryEducation, []string{"university", "nul", "tuition", "book", "stationery", "school"}},
		{domain.CategoryHealth, []string{"pharmacy", "clinic", "hospital", "medicine", "doctor"}},
	}

	var expected []smsparser.KeywordRule
	for _, group := range want {
		for _, kw := range group.keywords {
			expected = append(expected, smsparser.KeywordRule{Keyword: kw, Category: group.category})
		}
	}

	assert.Equal(t, expected, smsparser.DefaultKeywordRules())
}

func TestDefaultKeywordRules_ReturnsCopy(t *testing.T) {
	rules := smsparser.DefaultKeywordRules()
	require.NotEmpty(t, rules)
	rules[0] = smsparser.KeywordRule{Keyword: "shoprite", Category: domain.CategoryHealth}

	fresh := smsparser.DefaultKeywordRules()
	assert.Equal(t, smsparser.KeywordRule{Keyword: "shoprite", Category: domain.CategoryFood}, fresh[0])
	assert.Equal(t, domain.CategoryFood, smsparser.NewClassifier(fresh).Classify("Shoprite Maseru"))
	assert.Equal(t, domain.CategoryFood, smsparser.NewParser().Classify("Payment to SHOPRITE MASERU"))
}
