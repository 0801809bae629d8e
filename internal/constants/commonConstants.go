package constants

type (
	ResourceKind  string
	APIStatus     string
	CachePrefix   string
	RequestSource string
)

const (
	ResourceAircraft   ResourceKind = "aircraft"
	ResourceInstructor ResourceKind = "instructor"

	APIStatusOk    APIStatus = "ok"
	APIStatusError APIStatus = "error"

	CachePrefixDaySchedule  CachePrefix = "SCHED_DAY_"
	CachePrefixAircraftList CachePrefix = "AIRCRAFT_"
	CachePrefixRateTable    CachePrefix = "RATES_"
	CachePrefixInvoiceLink  CachePrefix = "INV_LINK_"

	RequestSourceAPI       RequestSource = "API"
	RequestSourceWebClient RequestSource = "WEB_CLIENT"
)

// MeterEpsilon is the minimum hobbs/tacho delta accepted at check-in.
// A reading that moved by this much or less is treated as a data-entry error.
const MeterEpsilon = 0.1
