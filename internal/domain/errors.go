package domain

import "fmt"

// InvalidStartError reports a start city that is not part of the active city
// set. It halts route building; nothing downstream recomputes until the user
// picks a valid start.
type InvalidStartError struct {
	Name    string
	Country string
}

func (e *InvalidStartError) Error() string {
	return fmt.Sprintf("start city %q (%s) is not in the active city set", e.Name, e.Country)
}

// IncompleteInputError reports leg durations that are missing, too few or
// negative. The itinerary stage is withheld until the input is complete.
type IncompleteInputError struct {
	Reason string
}

func (e *IncompleteInputError) Error() string {
	return "incomplete itinerary input: " + e.Reason
}

// MissingWeatherDataError annotates a single stop whose city has no
// historical record for the arrival day. It never halts the pipeline; the
// remaining stops still compute.
type MissingWeatherDataError struct {
	City      City
	DayOfYear int
}

func (e *MissingWeatherDataError) Error() string {
	return fmt.Sprintf("no weather normal for %q (%s) on day %d", e.City.Name, e.City.Country, e.DayOfYear)
}
