package content

import "time"

// Default copy used when the content backend has no documents of a kind.
var (
	FallbackServices = []Service{
		{
			ID:          "drop-in",
			Icon:        "🐕",
			Title:       "Drop-In Visit",
			Price:       "$130/visit",
			Description: "30-minute check-in for potty breaks, feeding, and quick play",
			Features: []string{
				"30-minute visit",
				"Feeding & fresh water",
				"Potty break or short walk",
				"Playtime & cuddles",
				"Photo update",
			},
		},
		{
			ID:          "day-sitting",
			Icon:        "☀️",
			Title:       "Day Sitting",
			Price:       "$145/day",
			Description: "Full daytime care while you're at work or running errands",
			Features: []string{
				"Up to 10 hours of care",
				"Two walks included",
				"Feeding on schedule",
				"Enrichment activities",
				"Multiple photo updates",
			},
			Order: 1,
		},
		{
			ID:          "overnight",
			Icon:        "🌙",
			Title:       "Overnight Stay",
			Price:       "$175/night",
			Description: "I stay at your home overnight for round-the-clock care",
			Features: []string{
				"Evening to morning care",
				"Bedtime routine maintained",
				"Morning & evening walks",
				"All meals included",
				"Overnight companionship",
			},
			Order: 2,
		},
	}

	FallbackTerms = []TermsPolicy{
		{
			ID:    "booking",
			Title: "Booking Policy",
			Icon:  "📅",
			Items: []string{
				"A free meet & greet is required before the first booking",
				"Bookings are confirmed upon receipt of a 50% deposit",
				"Remaining balance is due on the first day of service",
				"Holiday bookings require full payment in advance",
			},
		},
		{
			ID:    "cancellation",
			Title: "Cancellation Policy",
			Icon:  "❌",
			Items: []string{
				"7+ days notice: Full refund",
				"3-6 days notice: 50% refund",
				"Less than 48 hours: No refund",
				"No-shows: Full charge applies",
			},
			Order: 1,
		},
		{
			ID:    "requirements",
			Title: "Pet Requirements",
			Icon:  "🐕",
			Items: []string{
				"Dogs must be up-to-date on vaccinations",
				"Proof of vaccination required before first visit",
				"Dogs must be flea/tick treated",
				"Please inform me of any behavioral issues",
			},
			Order: 2,
		},
	}
)

// AddOn is an optional extra listed on the pricing page.
type AddOn struct {
	Name  string
	Price string
}

var AddOns = []AddOn{
	{Name: "Extended Walk (60 min)", Price: "+$15"},
	{Name: "Additional Pet (same household)", Price: "+$10/day"},
	{Name: "Bath & Brush", Price: "+$25"},
	{Name: "Holiday Rate", Price: "+50%"},
	{Name: "Last-Minute Booking (<24hrs)", Price: "+$15"},
	{Name: "Puppy Care (under 1 year)", Price: "+$10/day"},
}

func applyFallbacks(s *Snapshot) {
	if len(s.Services) == 0 {
		s.Services = append([]Service(nil), FallbackServices...)
	}
	if len(s.Terms) == 0 {
		s.Terms = append([]TermsPolicy(nil), FallbackTerms...)
	}
}

// Fallback returns a snapshot holding only the built-in copy, for renders
// while the content backend has never been reachable.
func Fallback(now time.Time) *Snapshot {
	return (&Snapshot{}).finish(now)
}
