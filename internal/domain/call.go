package domain

import (
	"strconv"
	"strings"
)

// CallRecord is one row of the call-summary log. Optional fields hold NA
// once normalized.
type CallRecord struct {
	CallTime       string
	PhoneNumber    string
	CallOutcome    string
	CustomerName   string
	RoomName       string
	CheckIn        string
	CheckOut       string
	NumberOfGuests *int
	CallSummary    string
}

// Row renders the record as the nine log columns, in log order.
func (c CallRecord) Row() []any {
	var guests any = NA
	if c.NumberOfGuests != nil {
		guests = *c.NumberOfGuests
	}
	return []any{
		c.CallTime,
		c.PhoneNumber,
		c.CallOutcome,
		OrNA(c.CustomerName),
		OrNA(c.RoomName),
		OrNA(c.CheckIn),
		OrNA(c.CheckOut),
		guests,
		c.CallSummary,
	}
}

// GuestsString is the guest count column as text.
func (c CallRecord) GuestsString() string {
	if c.NumberOfGuests == nil {
		return NA
	}
	return strconv.Itoa(*c.NumberOfGuests)
}

// OrNA returns NA for blank strings.
func OrNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return NA
	}
	return s
}
