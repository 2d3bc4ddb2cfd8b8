package tournament

import "time"

// DemoTournaments returns the fixed demonstration records inserted into an
// empty collection, in insertion order. All of them start at now.
func DemoTournaments(now time.Time) []Tournament {
	now = now.UTC()

	return []Tournament{
		{
			Title:        "Valorant Royale Cup",
			Game:         "Valorant",
			Description:  strPtr("Tier-1 bracket with BO3 finals"),
			StartDate:    now,
			EntryFeeINR:  499,
			PrizePoolINR: 150000,
			Mode:         ModeOnline,
			Slots:        64,
			Region:       strPtr("India"),
			Featured:     true,
			BannerURL:    strPtr("https://images.unsplash.com/photo-1600861194942-f883de0dfe96?q=80&w=1600&auto=format&fit=crop"),
		},
		{
			Title:        "BGMI Clash Series",
			Game:         "BGMI",
			Description:  strPtr("Squad TPP with live broadcast"),
			StartDate:    now,
			EntryFeeINR:  299,
			PrizePoolINR: 75000,
			Mode:         ModeOnline,
			Slots:        100,
			Region:       strPtr("India"),
			Featured:     true,
			BannerURL:    strPtr("https://images.unsplash.com/photo-1511512578047-dfb367046420?q=80&w=1600&auto=format&fit=crop"),
		},
		{
			Title:        "CS2 Kings Arena",
			Game:         "Counter-Strike 2",
			Description:  strPtr("5v5 LAN, Bengaluru"),
			StartDate:    now,
			EntryFeeINR:  999,
			PrizePoolINR: 300000,
			Mode:         ModeOffline,
			Slots:        16,
			Region:       strPtr("Bengaluru"),
			Featured:     false,
			BannerURL:    strPtr("https://images.unsplash.com/photo-1515879218367-8466d910aaa4?q=80&w=1600&auto=format&fit=crop"),
		},
	}
}
