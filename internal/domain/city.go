package domain

// City is a candidate stop on the trip. Identity is the (Name, Country)
// pair; two cities with the same name in different countries are distinct.
// Cities are small immutable values and are always passed by value so that
// the distance matrix, route and weather join never share mutable state.
type City struct {
	Name    string
	Country string
	Lat     float64
	Lon     float64
}

// Key returns the identity string used for matrix and store lookups.
func (c City) Key() string { return c.Name + "|" + c.Country }

// HasValidCoordinates reports whether Lat/Lon fall in the valid ranges.
// Coordinate validation happens at the geodata boundary; the planning
// pipeline assumes cities that pass this check.
func (c City) HasValidCoordinates() bool {
	return c.Lat >= -90 && c.Lat <= 90 && c.Lon >= -180 && c.Lon <= 180
}

// Return coordinates as [lon, lat] for external API compatibility.
func (c City) CoordsToList() []float64 { return []float64{c.Lon, c.Lat} }
