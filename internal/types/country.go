package types

// Country is shared reference data keyed by its code. Rows created lazily
// by the upsert resolver carry only the code; name stays NULL until
// enriched by some other process.
type Country struct {
	ID   uint    `gorm:"primaryKey" json:"id"`
	Code string  `gorm:"size:3;not null;uniqueIndex" json:"code"`
	Name *string `gorm:"size:255" json:"name"`
}

func (Country) TableName() string { return "countries" }
