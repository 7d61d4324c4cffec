package properties

import "time"

// Trace labels written by the mutation paths. The trace table is the audit
// log of the system: one row per price change, image addition or field
// update, never one for creation.
const (
	TraceImageAdded      = "Image added"
	TracePriceChange     = "Price change"
	TracePropertyUpdated = "Property updated"
)

// PropertyTrace is append-only. Rows are written inside the same
// transaction as the mutation they describe and are never updated.
type PropertyTrace struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	PropertyID uint      `gorm:"not null;index:idx_property_traces_property_date,priority:1" json:"property_id"`
	DateSale   time.Time `gorm:"type:date;not null;index:idx_property_traces_property_date,priority:2" json:"date_sale"`
	Name       string    `gorm:"size:150;not null" json:"name"`
	Value      float64   `gorm:"type:decimal(18,2);not null" json:"value"`
	Tax        float64   `gorm:"type:decimal(18,2);not null" json:"tax"`

	CreatedAt time.Time `json:"created_at"`
}
