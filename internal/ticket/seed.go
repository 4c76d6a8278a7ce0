package ticket

import "time"

// Route is an ordered origin/destination pair.
type Route struct {
	Origin      string
	Destination string
}

// DemoRoutes is the built-in seed set. Note Paris→London is its own
// route; reverse directions are never derived automatically.
var DemoRoutes = []Route{
	{Origin: "Chennai", Destination: "Bangalore"},
	{Origin: "London", Destination: "Paris"},
	{Origin: "Paris", Destination: "London"},
}

// Demo seed window.
const (
	DemoDays        = 5
	DemoSlotsPerDay = 4
)

// DemoSet generates the full demo schedule for every route in
// DemoRoutes, starting at start's local day.
func DemoSet(start time.Time, days, slotsPerDay int) []Ticket {
	var tickets []Ticket
	for _, r := range DemoRoutes {
		tickets = append(tickets, Generate(r.Origin, r.Destination, start, days, slotsPerDay)...)
	}
	return tickets
}
