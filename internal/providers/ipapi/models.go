package ipapi

// GeolocationResponse is the upstream JSON payload for one IP lookup.
// Lat/Lon are pointers so a payload missing either coordinate is
// distinguishable from a lookup at (0, 0).
type GeolocationResponse struct {
	Status      string   `json:"status"` // "success" or "fail"
	Message     string   `json:"message,omitempty"`
	Country     string   `json:"country"`
	CountryCode string   `json:"countryCode"`
	Region      string   `json:"region"`
	RegionName  string   `json:"regionName"`
	City        string   `json:"city"`
	Lat         *float64 `json:"lat"`
	Lon         *float64 `json:"lon"`
}
