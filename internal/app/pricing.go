package app

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"hotel_voice/internal/domain"
)

const DateLayout = "2006-01-02"

// CalculatePrice totals nightly prices for room over [checkIn, checkOut).
// Every outcome, including bad input and no match, is caller-facing text.
func CalculatePrice(data *domain.Dataset, room, checkIn, checkOut string) string {
	in, err1 := time.Parse(DateLayout, checkIn)
	out, err2 := time.Parse(DateLayout, checkOut)
	if err1 != nil || err2 != nil {
		return "Invalid check-in or check-out date format. Please use YYYY-MM-DD."
	}

	var (
		total   float64
		matched int
	)
	for _, p := range data.Pricing {
		if !strings.EqualFold(p.Property, room) {
			continue
		}
		if p.Date.Before(in) || !p.Date.Before(out) {
			continue
		}
		total += p.Price
		matched++
	}
	if matched == 0 {
		return fmt.Sprintf("No pricing found for %s between %s and %s.", room, checkIn, checkOut)
	}

	// nights is the calendar span; it is not reconciled with gaps in pricing data.
	nights := int(out.Sub(in).Hours() / 24)
	return fmt.Sprintf("The total price for %s from %s to %s (%d nights) is %s.",
		room, checkIn, checkOut, nights, strconv.FormatFloat(total, 'f', -1, 64))
}
