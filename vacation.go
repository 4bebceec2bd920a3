package meadowlark

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// A Vacation is a package in the catalog.
type Vacation struct {
	Model
	Name           string `json:"name"`
	Slug           string `json:"slug" gorm:"uniqueIndex"`
	Category       string `json:"category"`
	SKU            string `json:"sku"`
	Description    string `json:"description"`
	PriceInCents   int    `json:"priceInCents"`
	Tags           Tags   `json:"tags" gorm:"type:jsonb"`
	InSeason       bool   `json:"inSeason"`
	Available      bool   `json:"available"`
	RequiresWaiver bool   `json:"requiresWaiver"`
	MaximumGuests  int    `json:"maximumGuests"`
	Notes          string `json:"notes"`
	PackagesSold   int    `json:"packagesSold"`
}

// Price formats PriceInCents as dollars, e.g. $99.95.
func (v Vacation) Price() string {
	return fmt.Sprintf("$%d.%02d", v.PriceInCents/100, v.PriceInCents%100)
}

// Tags is a set of labels stored as a JSON array.
type Tags []string

// Scan implements sql.Scanner.
func (t *Tags) Scan(src any) error {
	var b []byte
	switch v := src.(type) {
	case nil:
		*t = nil
		return nil
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return fmt.Errorf("%w: cannot scan %T into Tags", ErrNotValid, src)
	}

	return json.Unmarshal(b, (*[]string)(t))
}

// Value implements driver.Valuer.
func (t Tags) Value() (driver.Value, error) {
	if t == nil {
		return "[]", nil
	}

	b, err := json.Marshal([]string(t))
	if err != nil {
		return nil, err
	}

	return string(b), nil
}

// SeedVacations is the set of vacations a fresh catalog starts with.
func SeedVacations() []Vacation {
	return []Vacation{
		{
			Name:          "Hood River Day Trip",
			Slug:          "hood-river-day-trip",
			Category:      "Day Trip",
			SKU:           "HR199",
			Description:   "Spend a day sailing on the Columbia and enjoying craft beers in Hood River!",
			PriceInCents:  9995,
			Tags:          Tags{"day trip", "hood river", "sailing", "windsurfing", "breweries"},
			InSeason:      true,
			MaximumGuests: 16,
			Available:     true,
			PackagesSold:  0,
		},
		{
			Name:          "Oregon Coast Getaway",
			Slug:          "oregon-coast-getaway",
			Category:      "Weekend Getaway",
			SKU:           "OC39",
			Description:   "Enjoy the ocean air and quaint coastal towns!",
			PriceInCents:  269995,
			Tags:          Tags{"weekend getaway", "oregon coast", "beachcombing"},
			InSeason:      false,
			MaximumGuests: 8,
			Available:     true,
			PackagesSold:  0,
		},
		{
			Name:           "Rock Climbing in Bend",
			Slug:           "rock-climbing-in-bend",
			Category:       "Adventure",
			SKU:            "B99",
			Description:    "Experience the thrill of rock climbing in the high desert.",
			PriceInCents:   289995,
			Tags:           Tags{"weekend getaway", "bend", "high desert", "rock climbing", "hiking", "skiing"},
			InSeason:       true,
			RequiresWaiver: true,
			MaximumGuests:  4,
			Available:      false,
			PackagesSold:   0,
			Notes:          "The tour guide is currently recovering from a skiing accident.",
		},
	}
}
