package models

import (
	"time"
)

// BangleColorVariant rows are fully owned by their bangle: updates replace the
// whole set and the FK cascades on bangle delete. The variant id is the primary
// key, so it is unique across the whole table, not merely per bangle.
type BangleColorVariant struct {
	ID        string    `gorm:"size:64;primaryKey" json:"id"`
	BangleID  string    `gorm:"size:64;not null;index" json:"bangleId"`
	ColorName string    `gorm:"size:255;not null" json:"colorName"`
	HexColor  string    `gorm:"size:16" json:"hexColor,omitempty"`
	ImageURL  string    `gorm:"size:512" json:"imageUrl"`
	Position  int       `gorm:"not null;default:0" json:"-"`
	CreatedAt time.Time `json:"createdAt"`
}
