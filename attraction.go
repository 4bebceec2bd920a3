package meadowlark

import "time"

const EventCreated = "created"

// A Location is a point on a map.
type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// An Attraction is a point of interest submitted by visitors.
// Attractions are not listed until approved.
type Attraction struct {
	Model
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Location    Location          `json:"location" gorm:"embedded;embeddedPrefix:location_"`
	History     []AttractionEvent `json:"history,omitempty"`
	Approved    bool              `json:"approved"`
}

// An AttractionEvent records something that happened to an Attraction.
type AttractionEvent struct {
	ID           uint      `json:"-" gorm:"primaryKey"`
	AttractionID uint      `json:"-"`
	Event        string    `json:"event"`
	Email        string    `json:"email"`
	Date         time.Time `json:"date"`
}

// NewAttraction constructs an unapproved Attraction
// whose history holds a single "created" event attributed to email.
func NewAttraction(name, description string, loc Location, email string, at time.Time) Attraction {
	return Attraction{
		Name:        name,
		Description: description,
		Location:    loc,
		History:     []AttractionEvent{{Event: EventCreated, Email: email, Date: at}},
		Approved:    false,
	}
}

// AttractionSummary is the public view of an Attraction.
type AttractionSummary struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Location    Location `json:"location"`
}

// Summary drops the history and moderation state of the Attraction.
func (a Attraction) Summary() AttractionSummary {
	return AttractionSummary{Name: a.Name, Description: a.Description, Location: a.Location}
}
