package ticket

import "time"

// Key layout:
//
//	partition key  origin#destination
//	sort key       YYYY-MM-DD#HH:MM
//	record key     <partition key>|<sort key>
//
// The same convention is applied on the write and the read path. A
// whole-day query is a begins_with on the sort key using the bare
// service date; the clock suffix makes each departure's primary key
// unique and orders departures within a day lexicographically, which is
// also chronologically since the clock is zero-padded.
//
// No normalization is performed: route names must match byte-for-byte
// between writes and queries. Keeping "#" and "|" out of route names is
// the caller's input validation problem, not handled here.
const (
	keyDelim    = "#"
	recordDelim = "|"

	// DateFormat is the service-date layout used in sort keys.
	DateFormat  = "2006-01-02"
	clockLayout = "15:04"
)

// PartitionKey returns the route partition key for an origin/destination
// pair. Routes are asymmetric: A→B and B→A are distinct partitions.
func PartitionKey(origin, destination string) string {
	return origin + keyDelim + destination
}

// SortKey returns the range key for a departure on the given service
// date. departure is the local wall-clock departure time.
func SortKey(serviceDate string, departure time.Time) string {
	return serviceDate + keyDelim + departure.Format(clockLayout)
}

// RecordKey joins a partition key and sort key into the item's unique
// identifier. Record keys are unique within this key scheme's namespace;
// the older combined route#date#time partition scheme is not supported.
func RecordKey(partitionKey, sortKey string) string {
	return partitionKey + recordDelim + sortKey
}

// QueryRange resolves a (origin, destination, serviceDate) lookup into
// the partition key and sort-key prefix for a whole-day range query.
func QueryRange(origin, destination, serviceDate string) (partitionKey, sortKeyPrefix string) {
	return PartitionKey(origin, destination), serviceDate
}
