package csvstore

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"hotel_voice/internal/domain"
)

const (
	RoomsFile     = "room_info.csv"
	RulesFile     = "hotel_rules.csv"
	StaffFile     = "staff_queries.csv"
	PricingFile   = "room_pricing.csv"
	DiscountsFile = "discounts.csv"
)

const (
	colRoomName   = "Room Name"
	colMaxGuests  = "Max Guests"
	colSpeciality = "Speciality (additional Information)"
	colProperty   = "Property Name"
	colDate       = "Date"
	colPrice      = "price"
)

// Pricing dates are day-first in the source sheets; ISO dates are accepted too.
var pricingDateLayouts = []string{"02/01/2006", "2006-01-02"}

// Store reads the five hotel datasets from CSV files in one directory.
type Store struct{ dir string }

func New(dir string) *Store { return &Store{dir: dir} }

// Load reads all datasets concurrently. Any missing or unreadable file fails
// the whole load.
func (s *Store) Load(ctx context.Context) (*domain.Dataset, error) {
	var (
		ds                                  domain.Dataset
		rooms, rules, staff, prices, discnt domain.Table
	)
	g, ctx := errgroup.WithContext(ctx)
	for name, dst := range map[string]*domain.Table{
		RoomsFile:     &rooms,
		RulesFile:     &rules,
		StaffFile:     &staff,
		PricingFile:   &prices,
		DiscountsFile: &discnt,
	} {
		name, dst := name, dst
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			t, err := ReadTable(filepath.Join(s.dir, name))
			if err != nil {
				return fmt.Errorf("csvstore: load %s: %w", name, err)
			}
			*dst = t
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	ds.Rooms = parseRooms(rooms)
	ds.Pricing = parsePricing(prices)
	ds.Rules = rules
	ds.StaffQueries = staff
	ds.Discounts = discnt

	log.Info().
		Str("dir", s.dir).
		Int("rooms", len(ds.Rooms)).
		Int("rules", len(ds.Rules.Rows)).
		Int("staff_queries", len(ds.StaffQueries.Rows)).
		Int("pricing", len(ds.Pricing)).
		Int("discounts", len(ds.Discounts.Rows)).
		Msg("hotel data loaded")
	return &ds, nil
}

// ReadTable reads a headered CSV file. Blank or absent cells become NA and
// every row is padded to the header width.
func ReadTable(path string) (domain.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return domain.Table{}, err
	}
	defer f.Close()
	return readTable(f)
}

func readTable(r io.Reader) (domain.Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return domain.Table{}, nil
	}
	if err != nil {
		return domain.Table{}, err
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	t := domain.Table{Columns: header}
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return domain.Table{}, err
		}
		row := make([]string, len(header))
		for i := range row {
			row[i] = domain.NA
			if i < len(rec) {
				if v := strings.TrimSpace(rec[i]); v != "" {
					row[i] = v
				}
			}
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

func parseRooms(t domain.Table) []domain.Room {
	name, maxCol, spec := t.Col(colRoomName), t.Col(colMaxGuests), t.Col(colSpeciality)
	if name < 0 || maxCol < 0 {
		log.Warn().Strs("columns", t.Columns).Msg("room table lacks Room Name or Max Guests")
		return nil
	}
	rooms := make([]domain.Room, 0, len(t.Rows))
	for _, row := range t.Rows {
		guests, err := parseInt(row[maxCol])
		if err != nil {
			log.Warn().Str("room", row[name]).Str("max_guests", row[maxCol]).Msg("skipping room with bad guest count")
			continue
		}
		room := domain.Room{Name: row[name], MaxGuests: guests, Speciality: domain.NA}
		if spec >= 0 {
			room.Speciality = row[spec]
		}
		for i, col := range t.Columns {
			if i == name || i == maxCol || i == spec {
				continue
			}
			room.Amenities = append(room.Amenities, domain.Amenity{Key: col, Value: row[i]})
		}
		rooms = append(rooms, room)
	}
	return rooms
}

func parsePricing(t domain.Table) []domain.PricingRecord {
	prop, date, price := t.Col(colProperty), t.Col(colDate), colIndexFold(t, colPrice)
	if prop < 0 || date < 0 || price < 0 {
		log.Warn().Strs("columns", t.Columns).Msg("pricing table lacks Property Name, Date or price")
		return nil
	}
	out := make([]domain.PricingRecord, 0, len(t.Rows))
	for _, row := range t.Rows {
		d, ok := parseDate(row[date])
		if !ok {
			continue
		}
		p, err := strconv.ParseFloat(strings.ReplaceAll(row[price], ",", ""), 64)
		if err != nil || p < 0 {
			continue
		}
		out = append(out, domain.PricingRecord{Property: row[prop], Date: d, Price: p})
	}
	return out
}

func parseDate(s string) (time.Time, bool) {
	for _, layout := range pricingDateLayouts {
		if d, err := time.Parse(layout, s); err == nil {
			return d, true
		}
	}
	return time.Time{}, false
}

// parseInt accepts "3" and spreadsheet-style "3.0".
func parseInt(s string) (int, error) {
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	return int(f), nil
}

func colIndexFold(t domain.Table, name string) int {
	for i, c := range t.Columns {
		if strings.EqualFold(c, name) {
			return i
		}
	}
	return -1
}
