package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

// SizeList is stored as a JSON array in a text column. A bangle's size list
// is never null on the way out: bad or missing JSON scans as an empty list.
type SizeList []string

func (s *SizeList) Scan(value interface{}) error {
	if value == nil {
		*s = SizeList{}
		return nil
	}

	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("SizeList: unsupported column type %T", value)
	}

	var sizes []string
	if err := json.Unmarshal(raw, &sizes); err != nil {
		log.Printf("SizeList: failed to parse stored sizes %q, defaulting to empty list: %v", raw, err)
		*s = SizeList{}
		return nil
	}
	if sizes == nil {
		sizes = []string{}
	}
	*s = sizes
	return nil
}

func (s SizeList) Value() (driver.Value, error) {
	if s == nil {
		s = SizeList{}
	}
	raw, err := json.Marshal([]string(s))
	if err != nil {
		return nil, err
	}
	return string(raw), nil
}

type Bangle struct {
	ID             string               `gorm:"size:64;primaryKey" json:"id"`
	Name           string               `gorm:"size:255;not null" json:"name"`
	CategoryID     string               `gorm:"size:64;not null;index" json:"categoryId"`
	Category       Category             `gorm:"foreignKey:CategoryID;references:ID" json:"-"`
	Price          decimal.Decimal      `gorm:"type:decimal(10,2);not null" json:"price"`
	BaseImageURL   *string              `gorm:"size:512" json:"baseImageUrl"`
	Description    string               `gorm:"type:text" json:"description"`
	AvailableSizes SizeList             `gorm:"type:text" json:"availableSizes"`
	Material       string               `gorm:"size:255" json:"material"`
	Rating         *float64             `json:"rating"`
	Reviews        *int                 `json:"reviews"`
	ColorVariants  []BangleColorVariant `gorm:"foreignKey:BangleID;constraint:OnDelete:CASCADE" json:"colorVariants"`
	CreatedAt      time.Time            `json:"createdAt"`
	UpdatedAt      time.Time            `json:"updatedAt"`
}
