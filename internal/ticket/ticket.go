// Package ticket holds the ticket data model, the key codec that maps
// routes and dates onto the store's partition/sort keys, and the
// synthetic schedule generator.
package ticket

import "time"

// Ticket is one scheduled departure on a route. Tickets are created by
// the generator, persisted once, and never updated.
type Ticket struct {
	// RecordKey is the globally unique identifier, derived from the
	// partition and sort keys. See RecordKey.
	RecordKey string `dynamodbav:"id" json:"recordKey"`
	// Route is the partition key: "origin#destination".
	Route string `dynamodbav:"route" json:"partitionKey"`
	// RouteDate is the sort key: "YYYY-MM-DD#HH:MM". The date prefix is
	// what whole-day queries match on; the clock suffix keeps departures
	// on the same day distinct and lexicographically ordered.
	RouteDate string `dynamodbav:"route_date" json:"sortKey"`

	Origin      string `dynamodbav:"origin" json:"origin"`
	Destination string `dynamodbav:"destination" json:"destination"`
	// ServiceDate is the route-local calendar day, "YYYY-MM-DD".
	ServiceDate string `dynamodbav:"service_date" json:"serviceDate"`

	DepartureAt time.Time `dynamodbav:"departure_at" json:"departureAt"`
	ArrivalAt   time.Time `dynamodbav:"arrival_at" json:"arrivalAt"`

	// Fares are whole currency units. PlusFare is StandardFare plus a
	// fixed premium.
	StandardFare int64 `dynamodbav:"standard_price" json:"standardFare"`
	PlusFare     int64 `dynamodbav:"plus_price" json:"plusFare"`
}
