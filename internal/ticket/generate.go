package ticket

import "time"

// Schedule constants. The timetable is synthetic: fixed slot spacing and
// trip duration, fares derived from the day and slot index.
const (
	baseDepartureHour = 6
	slotSpacingHours  = 2
	tripDuration      = 2 * time.Hour

	baseFare          = 150
	slotFareIncrement = 10
	dayFareIncrement  = 5
	plusFarePremium   = 50
)

// Generate builds the synthetic schedule for one route: days consecutive
// calendar days starting at start's local day, each with slotsPerDay
// departures. Slot i departs at 06:00 + 2h*i local wall-clock time and
// arrives two hours later. Timestamps are UTC-normalized; the service
// date and sort-key clock stay in start's location.
//
// Generate is a pure function of its arguments. Callers wanting a
// "starting today" schedule resolve time.Now at the call site.
func Generate(origin, destination string, start time.Time, days, slotsPerDay int) []Ticket {
	loc := start.Location()
	tickets := make([]Ticket, 0, days*slotsPerDay)
	for day := 0; day < days; day++ {
		serviceDay := time.Date(start.Year(), start.Month(), start.Day()+day, 0, 0, 0, 0, loc)
		serviceDate := serviceDay.Format(DateFormat)
		for slot := 0; slot < slotsPerDay; slot++ {
			departure := time.Date(
				serviceDay.Year(), serviceDay.Month(), serviceDay.Day(),
				baseDepartureHour+slotSpacingHours*slot, 0, 0, 0, loc,
			)
			standard := int64(baseFare + slot*slotFareIncrement + day*dayFareIncrement)

			pk := PartitionKey(origin, destination)
			sk := SortKey(serviceDate, departure)
			tickets = append(tickets, Ticket{
				RecordKey:    RecordKey(pk, sk),
				Route:        pk,
				RouteDate:    sk,
				Origin:       origin,
				Destination:  destination,
				ServiceDate:  serviceDate,
				DepartureAt:  departure.UTC(),
				ArrivalAt:    departure.Add(tripDuration).UTC(),
				StandardFare: standard,
				PlusFare:     standard + plusFarePremium,
			})
		}
	}
	return tickets
}
