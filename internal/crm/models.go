package crm

import "time"

// Prospect is a potential customer tracked inside a sales territory.
//
// Coordinate invariant: Lat and Lng are either both set or both nil.
// A prospect with only one of the two is a data defect; use SetCoordinates
// and ClearCoordinates to keep the pair consistent.
//
// LastContactAt is nil when the prospect has never been contacted; the
// dialer treats that as highest urgency.

type Prospect struct {
	ID        string `json:"id" db:"id"`
	Territory string `json:"territory" db:"territory"`

	Name      string `json:"name" db:"name"`
	Specialty string `json:"specialty" db:"specialty"`
	Phone     string `json:"phone" db:"phone"`

	Address string `json:"address,omitempty" db:"address"`
	City    string `json:"city,omitempty" db:"city"`
	State   string `json:"state,omitempty" db:"state"`

	Lat *float64 `json:"lat,omitempty" db:"lat"`
	Lng *float64 `json:"lng,omitempty" db:"lng"`

	LastContactAt   *time.Time `json:"last_contact_at,omitempty" db:"last_contact_at"`
	LastCallOutcome string     `json:"last_call_outcome,omitempty" db:"last_call_outcome"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// HasCoordinates reports whether both coordinates are known.
func (p Prospect) HasCoordinates() bool {
	return p.Lat != nil && p.Lng != nil
}

// SetCoordinates sets both coordinates atomically.
func (p *Prospect) SetCoordinates(lat, lng float64) {
	p.Lat = &lat
	p.Lng = &lng
}

// ClearCoordinates unsets both coordinates atomically.
func (p *Prospect) ClearCoordinates() {
	p.Lat = nil
	p.Lng = nil
}

// FieldRep is a field representative assigned to one territory.
//
// Home coordinates follow the same all-or-nothing rule as Prospect
// coordinates. A rep without home coordinates still gets a calling list,
// just without geographic routing.

type FieldRep struct {
	ID        string `json:"id" db:"id"`
	Territory string `json:"territory" db:"territory"`

	Name string `json:"name" db:"name"`

	HomeLat *float64 `json:"home_lat,omitempty" db:"home_lat"`
	HomeLng *float64 `json:"home_lng,omitempty" db:"home_lng"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// HasHomeCoordinates reports whether both home coordinates are known.
func (r FieldRep) HasHomeCoordinates() bool {
	return r.HomeLat != nil && r.HomeLng != nil
}
