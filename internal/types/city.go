package types

// City is an immutable reference record from the geographic dataset.
// Rows are bulk-loaded by an external process and treated as read-only
// for the lifetime of this service.
type City struct {
	GeonameID   int     `db:"geoname_id" json:"geoname_id"`
	Name        string  `db:"name" json:"city_name"`
	CountryCode string  `db:"country_code" json:"country_code"`
	StateCode   string  `db:"state_code" json:"state_code"`
	StateName   *string `db:"state_name" json:"state_name"`
	Latitude    float64 `db:"latitude" json:"latitude"`
	Longitude   float64 `db:"longitude" json:"longitude"`
	Population  *int64  `db:"population" json:"population"`
}

// Coords returns the city's coordinates as a Coords pair.
func (c *City) Coords() Coords {
	return NewCoords(c.Latitude, c.Longitude)
}
