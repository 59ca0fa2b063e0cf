package booking

import (
	"time"

	"gestion-turnos/internal/domain/room"
)

const WeekendSurchargePercent = 20

type PriceCalculator interface {
	ComputePrice(size room.Size, start, end time.Time) (int64, error)
}

// Tariff prices a booking from the hourly rate of its room size.
// Weekends are decided in the venue's time zone, not the caller's.
type Tariff struct {
	rates    map[room.Size]int64
	location *time.Location
}

func DefaultRates() map[room.Size]int64 {
	return map[room.Size]int64{
		room.SizeSmall:  500,
		room.SizeMedium: 8000,
		room.SizeLarge:  1200,
	}
}

func NewTariff(rates map[room.Size]int64, location *time.Location) *Tariff {
	table := make(map[room.Size]int64, len(rates))
	for size, rate := range rates {
		if rate > 0 {
			table[size] = rate
		}
	}
	if location == nil {
		location = time.UTC
	}
	return &Tariff{rates: table, location: location}
}

func NewDefaultTariff() *Tariff {
	return NewTariff(DefaultRates(), time.UTC)
}

func (t *Tariff) Location() *time.Location {
	return t.location
}

func (t *Tariff) BaseRate(size room.Size) (int64, error) {
	rate, ok := t.rates[size]
	if !ok {
		return 0, ErrUnknownRoomSize
	}
	return rate, nil
}

// ComputePrice returns 0 together with the error for an empty or inverted range.
func (t *Tariff) ComputePrice(size room.Size, start, end time.Time) (int64, error) {
	if !end.After(start) {
		return 0, ErrInvalidRange
	}
	rate, err := t.BaseRate(size)
	if err != nil {
		return 0, err
	}

	subtotal := rate * BilledHours(end.Sub(start))
	if t.IsWeekend(start) {
		return applySurcharge(subtotal, WeekendSurchargePercent), nil
	}
	return subtotal, nil
}

func (t *Tariff) IsWeekend(at time.Time) bool {
	switch at.In(t.location).Weekday() {
	case time.Saturday, time.Sunday:
		return true
	default:
		return false
	}
}

// BilledHours rounds any partial hour up, with a one hour minimum.
func BilledHours(d time.Duration) int64 {
	hours := int64(d / time.Hour)
	if d%time.Hour != 0 {
		hours++
	}
	if hours < 1 {
		hours = 1
	}
	return hours
}

// half-up rounding in integer maths; amounts are never negative here
func applySurcharge(amount int64, percent int64) int64 {
	return (amount*(100+percent) + 50) / 100
}
