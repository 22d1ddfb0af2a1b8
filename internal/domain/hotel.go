package domain

import "time"

// NA is the placeholder shown or logged for any missing scalar.
const NA = "NA"

type Amenity struct {
	Key   string // CSV column, e.g. pool_available
	Value string
}

type Room struct {
	Name       string
	MaxGuests  int
	Amenities  []Amenity
	Speciality string
}

type PricingRecord struct {
	Property string
	Date     time.Time
	Price    float64
}

// Table is an order-preserving, schema-less CSV table. Every row has
// len(Columns) cells; missing cells hold NA.
type Table struct {
	Columns []string
	Rows    [][]string
}

func (t Table) Empty() bool { return len(t.Rows) == 0 }

// Col returns the index of the named column or -1.
func (t Table) Col(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Dataset holds the five static hotel datasets. Immutable after load.
type Dataset struct {
	Rooms        []Room
	Rules        Table
	StaffQueries Table
	Pricing      []PricingRecord
	Discounts    Table
}

// IsNA reports whether v should be treated as a missing value.
func IsNA(v string) bool {
	switch v {
	case "", NA, "NaN", "nan":
		return true
	}
	return false
}
