package tournament

import "time"

const (
	Collection = "tournament"

	ModeOnline  = "Online"
	ModeOffline = "Offline"
)

// Tournament is the public shape of an advertised competition. ID is the
// serialized storage key and is never written back to the document.
// Optional fields are pointers so that absent values render as null.
type Tournament struct {
	ID           string     `json:"id,omitempty" bson:"-"`
	Title        string     `json:"title" bson:"title" binding:"required"`
	Game         string     `json:"game" bson:"game"`
	Description  *string    `json:"description" bson:"description"`
	StartDate    time.Time  `json:"start_date" bson:"start_date"`
	EndDate      *time.Time `json:"end_date" bson:"end_date"`
	EntryFeeINR  int64      `json:"entry_fee_inr" bson:"entry_fee_inr" binding:"min=0"`
	PrizePoolINR int64      `json:"prize_pool_inr" bson:"prize_pool_inr" binding:"min=0"`
	Mode         string     `json:"mode" bson:"mode"`
	Slots        int64      `json:"slots" bson:"slots" binding:"min=0"`
	Region       *string    `json:"region" bson:"region"`
	Featured     bool       `json:"featured" bson:"featured"`
	BannerURL    *string    `json:"banner_url" bson:"banner_url"`
}

func strPtr(s string) *string { return &s }
