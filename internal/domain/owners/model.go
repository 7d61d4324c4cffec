package owners

import (
	"errors"
	"time"
)

// ErrNotFound is returned when a referenced owner id does not exist.
var ErrNotFound = errors.New("owner not found")

type Owner struct {
	ID       uint       `gorm:"primaryKey" json:"id"`
	Name     string     `gorm:"size:150;not null" json:"name"`
	Address  *string    `gorm:"size:250" json:"address,omitempty"`
	Photo    []byte     `json:"photo,omitempty"`
	Birthday *time.Time `gorm:"type:date" json:"birthday,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
