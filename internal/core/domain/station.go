package domain

// Station is a testing location. NumGrounds is informational; nothing limits
// how many bookings a station receives.
type Station struct {
	ID         int64  `json:"station_id" bson:"_id"`
	Name       string `json:"name" bson:"name"`
	NumGrounds int    `json:"num_grounds" bson:"num_grounds"`
}

// DefaultStations are inserted by the seed command when missing by name.
var DefaultStations = []Station{
	{Name: "Main Station", NumGrounds: 5},
	{Name: "North Station", NumGrounds: 3},
	{Name: "South Station", NumGrounds: 4},
	{Name: "East Station", NumGrounds: 2},
	{Name: "West Station", NumGrounds: 3},
}

// StationPatch lists the station fields an update changes; nil means keep.
type StationPatch struct {
	Name       *string
	NumGrounds *int
}
