package booking

import (
	"errors"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidSortField     = errors.New("invalid sort field")
	ErrInvalidSortDirection = errors.New("invalid sort direction")
)

type SortField string

const (
	SortByDate   SortField = "DATE"
	SortByAmount SortField = "AMOUNT"
)

type SortDirection string

const (
	SortAsc  SortDirection = "ASC"
	SortDesc SortDirection = "DESC"
)

func ParseSortField(s string) (SortField, error) {
	switch normalizeKey(s) {
	case "", "DATE", "FECHA":
		return SortByDate, nil
	case "AMOUNT", "MONTO":
		return SortByAmount, nil
	default:
		return "", ErrInvalidSortField
	}
}

func ParseSortDirection(s string) (SortDirection, error) {
	switch normalizeKey(s) {
	case "", "DESC":
		return SortDesc, nil
	case "ASC":
		return SortAsc, nil
	default:
		return "", ErrInvalidSortDirection
	}
}

type Sort struct {
	Field     SortField
	Direction SortDirection
}

// DefaultSort lists newest bookings first.
func DefaultSort() Sort {
	return Sort{Field: SortByDate, Direction: SortDesc}
}

// Filters narrow a history listing. A nil pointer or empty string means "all".
type Filters struct {
	DateFrom           *time.Time
	DateTo             *time.Time
	Status             *Status
	RoomNumber         *int
	PayerEmailContains string
	PaymentMethod      *PaymentMethod
	AmountMin          *int64
	AmountMax          *int64
}

// MergeByID concatenates collections, keeping the first booking seen for each id.
func MergeByID(collections ...[]*Booking) []*Booking {
	seen := make(map[uuid.UUID]struct{})
	var merged []*Booking
	for _, c := range collections {
		for _, b := range c {
			if b == nil {
				continue
			}
			if _, dup := seen[b.id]; dup {
				continue
			}
			seen[b.id] = struct{}{}
			merged = append(merged, b)
		}
	}
	return merged
}

// FilterAndSort returns a new slice; bookings is not reordered.
func FilterAndSort(bookings []*Booking, f Filters, s Sort) []*Booking {
	term := strings.ToLower(strings.TrimSpace(f.PayerEmailContains))

	out := make([]*Booking, 0, len(bookings))
	for _, b := range bookings {
		if b != nil && f.matches(b, term) {
			out = append(out, b)
		}
	}

	slices.SortStableFunc(out, func(a, b *Booking) int {
		c := compareBy(a, b, s.Field)
		if c == 0 {
			// ids break ties so the order is the same on every run
			c = strings.Compare(a.id.String(), b.id.String())
		}
		if s.Direction == SortAsc {
			return c
		}
		return -c
	})
	return out
}

func (f Filters) matches(b *Booking, emailTerm string) bool {
	start := b.slot.Start()
	if f.DateFrom != nil && start.Before(*f.DateFrom) {
		return false
	}
	if f.DateTo != nil && start.After(*f.DateTo) {
		return false
	}
	if f.Status != nil && b.status != *f.Status {
		return false
	}
	if f.RoomNumber != nil && b.room.Number != *f.RoomNumber {
		return false
	}
	if emailTerm != "" && !strings.Contains(strings.ToLower(b.payer.Email), emailTerm) {
		return false
	}
	if f.PaymentMethod != nil && b.paymentMethod != *f.PaymentMethod {
		return false
	}
	if f.AmountMin != nil && b.amount < *f.AmountMin {
		return false
	}
	if f.AmountMax != nil && b.amount > *f.AmountMax {
		return false
	}
	return true
}

func compareBy(a, b *Booking, field SortField) int {
	if field == SortByAmount {
		switch {
		case a.amount < b.amount:
			return -1
		case a.amount > b.amount:
			return 1
		default:
			return 0
		}
	}
	return a.slot.Start().Compare(b.slot.Start())
}
