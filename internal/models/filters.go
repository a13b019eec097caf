package models

import "time"

// Poll list sort orders. SortTop orders by the denormalized counter sum,
// which is the counters' intended fast path.
const (
	SortNew = "new"
	SortTop = "top"
)

// PollFilter narrows and orders a poll listing.
type PollFilter struct {
	Sort   string
	Active *bool
	Now    time.Time
	Limit  int
	Offset int
}

// CounterDrift describes an option whose stored counter disagrees
// with the count of its vote rows.
type CounterDrift struct {
	OptionID string
	Stored   int64
	Actual   int64
}
