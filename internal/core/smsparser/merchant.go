package smsparser

import (
	"regexp"
	"strings"
)

// merchantLeads introduce a payee or payer; earlier leads take precedence.
var merchantLeads = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(?:at|to|from)[ \t]+`),
	regexp.MustCompile(`(?i)\b(?:paid|payment)[ \t]+(?:to[ \t]+)?`),
}

// wordRun is the run of alphabetic words that follows a lead.
var wordRun = regexp.MustCompile(`^[A-Za-z][A-Za-z&'\-]*(?:[ \t]+[A-Za-z][A-Za-z&'\-]*)*`)

// merchantStopWords end a merchant phrase. They are the words that
// typically follow the payee in notification templates.
var merchantStopWords = map[string]bool{
	"on": true, "of": true, "completed": true, "complete": true, "successful": true,
	"successfully": true, "ref": true, "reference": true, "balance": true, "bal": true,
	"available": true, "avail": true, "new": true, "via": true, "using": true,
	"is": true, "was": true, "has": true, "have": true, "for": true, "with": true,
	"your": true, "you": true, "account": true, "acc": true, "date": true, "time": true,
	"jan": true, "feb": true, "mar": true, "apr": true, "may": true, "jun": true,
	"jul": true, "aug": true, "sep": true, "oct": true, "nov": true, "dec": true,
}

var currencyMarkerWords = map[string]bool{"m": true, "r": true, "lsl": true, "zar": true}

// extractMerchant returns the payee or payer phrase, or false when none
// of the patterns yields a usable name.
func extractMerchant(text string) (string, bool) {
	for _, lead := range merchantLeads {
		for _, loc := range lead.FindAllStringIndex(text, -1) {
			if name := trimMerchant(wordRun.FindString(text[loc[1]:])); name != "" {
				return name, true
			}
		}
	}
	return "", false
}

func trimMerchant(phrase string) string {
	words := strings.Fields(phrase)
	kept := make([]string, 0, len(words))
	for _, w := range words {
		if merchantStopWords[strings.ToLower(strings.Trim(w, "'-&"))] {
			break
		}
		kept = append(kept, w)
	}
	// "Paid KFC M85.00" captures the currency marker in front of the amount.
	for len(kept) > 0 && currencyMarkerWords[strings.ToLower(kept[len(kept)-1])] {
		kept = kept[:len(kept)-1]
	}
	return strings.Join(kept, " ")
}
