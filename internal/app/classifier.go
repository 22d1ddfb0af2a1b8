package app

import (
	"strings"

	"hotel_voice/internal/domain"
)

type intentRule struct {
	keywords []string
	intent   domain.Intent
}

// Evaluated in order; first match wins.
var intentRules = []intentRule{
	{keywords: []string{"book", "availability"}, intent: domain.IntentBooking},
	{keywords: []string{"discount"}, intent: domain.IntentDiscount},
	{keywords: []string{"rule", "policy"}, intent: domain.IntentPolicy},
	{keywords: []string{"staff"}, intent: domain.IntentStaff},
}

// Classify maps free text to an intent by case-insensitive substring match.
func Classify(text string) domain.Intent {
	low := strings.ToLower(text)
	for _, r := range intentRules {
		for _, kw := range r.keywords {
			if strings.Contains(low, kw) {
				return r.intent
			}
		}
	}
	return domain.IntentGeneral
}
