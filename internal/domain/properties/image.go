package properties

import "time"

type PropertyImage struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	PropertyID uint   `gorm:"not null;index" json:"property_id"`
	File       []byte `gorm:"not null" json:"file"`
	Enabled    bool   `gorm:"not null;default:true" json:"enabled"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
