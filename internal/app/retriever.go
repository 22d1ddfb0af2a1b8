package app

import (
	"fmt"
	"strings"

	"hotel_voice/internal/domain"
)

const (
	noRulesText     = "No hotel rules available."
	noStaffText     = "No staff queries available."
	noDiscountsText = "No discount information available."
	noInfoText      = "I'm sorry, I do not have information on that topic. Can I assist you with something else?"
)

// Amenity columns shown in room listings, in display order.
var shownAmenities = []string{"baby_cot_available", "pool_available", "gym", "pets_allowed"}

type Retriever struct {
	data  *domain.Dataset
	hotel string
}

func NewRetriever(data *domain.Dataset, hotelName string) *Retriever {
	return &Retriever{data: data, hotel: hotelName}
}

// Retrieve renders the information text for an intent. Only a booking
// request without a guest count is an error.
func (r *Retriever) Retrieve(q domain.RetrieveQuery) (string, error) {
	switch q.Intent {
	case domain.IntentBooking:
		if q.GuestCount == nil || *q.GuestCount <= 0 {
			return "", domain.Invalidf("guest_count is required for booking info")
		}
		text := r.Rooms(*q.GuestCount)
		if q.RoomName != "" && q.CheckIn != "" && q.CheckOut != "" {
			text += "\n\n" + CalculatePrice(r.data, q.RoomName, q.CheckIn, q.CheckOut)
		}
		return text, nil
	case domain.IntentPolicy:
		return formatTable(r.data.Rules, noRulesText), nil
	case domain.IntentStaff:
		return formatTable(r.data.StaffQueries, noStaffText), nil
	case domain.IntentDiscount:
		return r.Discounts(), nil
	default:
		return fmt.Sprintf("I can provide information about rooms, pricing, policies, staff services, and discounts at %s.", r.hotel), nil
	}
}

// Rooms lists every room that fits guests, one line per room.
func (r *Retriever) Rooms(guests int) string {
	var lines []string
	for _, room := range r.data.Rooms {
		if room.MaxGuests < guests {
			continue
		}
		lines = append(lines, fmt.Sprintf("Room: %s, Max Guests: %d, Amenities: %s, Speciality: %s",
			room.Name, room.MaxGuests, amenityList(room), domain.OrNA(room.Speciality)))
	}
	return strings.Join(lines, "\n")
}

func amenityList(room domain.Room) string {
	var parts []string
	for _, key := range shownAmenities {
		for _, a := range room.Amenities {
			if a.Key != key {
				continue
			}
			if domain.IsNA(a.Value) || strings.EqualFold(a.Value, "No") {
				break
			}
			parts = append(parts, amenityLabel(key)+": "+a.Value)
			break
		}
	}
	if len(parts) == 0 {
		return "None"
	}
	return strings.Join(parts, ", ")
}

// amenityLabel turns baby_cot_available into "Baby Cot Available".
func amenityLabel(key string) string {
	words := strings.Fields(strings.ReplaceAll(key, "_", " "))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
	}
	return strings.Join(words, " ")
}

// Discounts lists one line per member type.
func (r *Retriever) Discounts() string {
	t := r.data.Discounts
	mi, di := t.Col("Member Type"), t.Col("Discount")
	if mi < 0 || di < 0 {
		return noDiscountsText
	}
	lines := make([]string, 0, len(t.Rows))
	for _, row := range t.Rows {
		lines = append(lines, "Member Type: "+domain.OrNA(row[mi])+", Discount: "+domain.OrNA(row[di]))
	}
	return strings.Join(lines, "\n")
}

// formatTable renders each row as "Column: value" lines, skipping missing
// cells, with a blank line between rows.
func formatTable(t domain.Table, empty string) string {
	if t.Empty() {
		return empty
	}
	blocks := make([]string, 0, len(t.Rows))
	for _, row := range t.Rows {
		var parts []string
		for i, col := range t.Columns {
			v := strings.TrimSpace(row[i])
			if domain.IsNA(v) {
				continue
			}
			parts = append(parts, col+": "+v)
		}
		blocks = append(blocks, strings.Join(parts, "\n"))
	}
	return strings.Join(blocks, "\n\n")
}
