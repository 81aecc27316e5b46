package enums

// RangeKey names a reporting window for the dashboard metrics pipeline.
type RangeKey string

const (
	RangeKeyToday         RangeKey = "today"
	RangeKeyThisWeek      RangeKey = "thisWeek"
	RangeKeyPastTwoWeeks  RangeKey = "pastTwoWeeks"
	RangeKeyThisMonth     RangeKey = "thisMonth"
	RangeKeyFromBeginning RangeKey = "fromBeginning"
)

var validRangeKeys = []RangeKey{
	RangeKeyToday,
	RangeKeyThisWeek,
	RangeKeyPastTwoWeeks,
	RangeKeyThisMonth,
	RangeKeyFromBeginning,
}

// String implements fmt.Stringer.
func (r RangeKey) String() string {
	return string(r)
}

// IsValid reports whether the value is a known RangeKey.
func (r RangeKey) IsValid() bool {
	for _, candidate := range validRangeKeys {
		if candidate == r {
			return true
		}
	}
	return false
}

// NormalizeRangeKey maps unknown or empty input onto the permissive default.
// The filter contract never rejects a range key.
func NormalizeRangeKey(value string) RangeKey {
	key := RangeKey(value)
	if key.IsValid() {
		return key
	}
	return RangeKeyFromBeginning
}
