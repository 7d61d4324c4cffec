package properties

import (
	"time"

	"realestate-app/internal/domain/owners"
)

type Property struct {
	ID           uint    `gorm:"primaryKey" json:"id"`
	Name         string  `gorm:"size:150;not null" json:"name"`
	Address      *string `gorm:"size:250" json:"address,omitempty"`
	Price        float64 `gorm:"type:decimal(18,2);not null" json:"price"`
	CodeInternal string  `gorm:"size:50;not null;uniqueIndex:idx_properties_code_internal" json:"code_internal"`
	Year         *int    `json:"year,omitempty"`

	OwnerID uint         `gorm:"not null;index" json:"owner_id"`
	Owner   owners.Owner `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"`

	Images []PropertyImage `gorm:"constraint:OnDelete:RESTRICT;" json:"images,omitempty"`
	Traces []PropertyTrace `gorm:"constraint:OnDelete:RESTRICT;" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
