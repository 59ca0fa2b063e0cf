//go:build unit

package booking_test

import (
	"slices"
	"testing"
	"time"

	"gestion-turnos/internal/domain/booking"
	"gestion-turnos/internal/domain/room"
	"gestion-turnos/internal/pkg/ptr"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeByID(t *testing.T) {
	shared := uuid.New()
	historical := newBookingBuilder().WithID(shared).WithStatus(booking.StatusFinished).Build()
	active := newBookingBuilder().WithID(shared).WithStatus(booking.StatusActive).Build()
	other := newBookingBuilder().Build()

	t.Run("first seen wins", func(t *testing.T) {
		merged := booking.MergeByID([]*booking.Booking{historical}, []*booking.Booking{active, other})

		require.Len(t, merged, 2)
		assert.Same(t, historical, merged[0])
		assert.Same(t, other, merged[1])
	})

	t.Run("duplicates inside one collection", func(t *testing.T) {
		merged := booking.MergeByID([]*booking.Booking{other, other, nil})
		assert.Len(t, merged, 1)
	})

	t.Run("no collections", func(t *testing.T) {
		assert.Empty(t, booking.MergeByID())
	})
}

func historyFixture() []*booking.Booking {
	return []*booking.Booking{
		newBookingBuilder().WithRoom(1, room.SizeSmall).WithPayerEmail("ana@example.com").
			WithStart(monday).WithAmount(500).WithStatus(booking.StatusActive).Build(),
		newBookingBuilder().WithRoom(2, room.SizeMedium).WithPayerEmail("beto@example.com").
			WithStart(monday.Add(24 * time.Hour)).WithAmount(8000).WithMethod(booking.PaymentTransfer).
			WithStatus(booking.StatusPendingPayment).Build(),
		newBookingBuilder().WithRoom(3, room.SizeLarge).WithPayerEmail("Ana.Maria@Example.com").
			WithStart(monday.Add(48 * time.Hour)).WithAmount(1200).WithMethod(booking.PaymentCard).
			WithStatus(booking.StatusFinished).Build(),
		newBookingBuilder().WithRoom(1, room.SizeSmall).WithPayerEmail("carla@example.com").
			WithStart(monday.Add(72 * time.Hour)).WithAmount(1000).WithStatus(booking.StatusCancelled).Build(),
	}
}

func TestFilterAndSort_Filters(t *testing.T) {
	all := historyFixture()
	pick := func(idx ...int) []uuid.UUID {
		out := make([]uuid.UUID, 0, len(idx))
		for _, i := range idx {
			out = append(out, all[i].ID())
		}
		return out
	}
	asc := booking.Sort{Field: booking.SortByDate, Direction: booking.SortAsc}

	tests := []struct {
		name    string
		filters booking.Filters
		want    []uuid.UUID
	}{
		{name: "no filters", filters: booking.Filters{}, want: pick(0, 1, 2, 3)},
		{name: "date from is inclusive", filters: booking.Filters{DateFrom: ptr.Of(monday.Add(24 * time.Hour))}, want: pick(1, 2, 3)},
		{name: "date to is inclusive", filters: booking.Filters{DateTo: ptr.Of(monday.Add(24 * time.Hour))}, want: pick(0, 1)},
		{name: "status", filters: booking.Filters{Status: ptr.Of(booking.StatusFinished)}, want: pick(2)},
		{name: "room number", filters: booking.Filters{RoomNumber: ptr.Of(1)}, want: pick(0, 3)},
		{name: "email contains ignores case and spaces", filters: booking.Filters{PayerEmailContains: "  ANA "}, want: pick(0, 2)},
		{name: "payment method", filters: booking.Filters{PaymentMethod: ptr.Of(booking.PaymentTransfer)}, want: pick(1)},
		{name: "amount min", filters: booking.Filters{AmountMin: ptr.Of(int64(1000))}, want: pick(1, 2, 3)},
		{name: "amount max", filters: booking.Filters{AmountMax: ptr.Of(int64(1000))}, want: pick(0, 3)},
		{
			name: "filters combine with and",
			filters: booking.Filters{
				RoomNumber:         ptr.Of(1),
				PayerEmailContains: "ana",
				AmountMin:          ptr.Of(int64(100)),
			},
			want: pick(0),
		},
		{name: "nothing matches", filters: booking.Filters{RoomNumber: ptr.Of(99)}, want: []uuid.UUID{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := booking.FilterAndSort(all, tt.filters, asc)
			if diff := cmp.Diff(tt.want, ids(got)); diff != "" {
				t.Errorf("FilterAndSort() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFilterAndSort_Sort(t *testing.T) {
	all := historyFixture()

	t.Run("default is newest first", func(t *testing.T) {
		got := booking.FilterAndSort(all, booking.Filters{}, booking.DefaultSort())
		assert.Equal(t, []uuid.UUID{all[3].ID(), all[2].ID(), all[1].ID(), all[0].ID()}, ids(got))
	})

	t.Run("amount ascending", func(t *testing.T) {
		got := booking.FilterAndSort(all, booking.Filters{}, booking.Sort{Field: booking.SortByAmount, Direction: booking.SortAsc})
		assert.Equal(t, []uuid.UUID{all[0].ID(), all[3].ID(), all[2].ID(), all[1].ID()}, ids(got))
	})

	t.Run("amount descending", func(t *testing.T) {
		got := booking.FilterAndSort(all, booking.Filters{}, booking.Sort{Field: booking.SortByAmount, Direction: booking.SortDesc})
		assert.Equal(t, []uuid.UUID{all[1].ID(), all[2].ID(), all[3].ID(), all[0].ID()}, ids(got))
	})

	t.Run("ties are ordered by id", func(t *testing.T) {
		a := newBookingBuilder().WithAmount(700).Build()
		b := newBookingBuilder().WithAmount(700).Build()
		c := newBookingBuilder().WithAmount(700).Build()
		want := ids([]*booking.Booking{a, b, c})
		slices.SortFunc(want, func(x, y uuid.UUID) int { return compareIDs(x, y) })

		got1 := booking.FilterAndSort([]*booking.Booking{c, a, b}, booking.Filters{}, booking.Sort{Field: booking.SortByAmount, Direction: booking.SortAsc})
		got2 := booking.FilterAndSort([]*booking.Booking{b, c, a}, booking.Filters{}, booking.Sort{Field: booking.SortByAmount, Direction: booking.SortAsc})

		assert.Equal(t, want, ids(got1))
		assert.Equal(t, want, ids(got2))
	})
}

func TestFilterAndSort_IdempotentAndPure(t *testing.T) {
	all := historyFixture()
	input := slices.Clone(all)
	f := booking.Filters{AmountMin: ptr.Of(int64(600))}
	s := booking.Sort{Field: booking.SortByAmount, Direction: booking.SortDesc}

	once := booking.FilterAndSort(input, f, s)
	twice := booking.FilterAndSort(once, f, s)

	assert.Equal(t, ids(once), ids(twice))
	assert.Equal(t, ids(all), ids(input), "input order must not change")

	once[0] = nil
	for _, b := range input {
		assert.NotNil(t, b, "result must not share the input backing array")
	}
}

func TestParseSort(t *testing.T) {
	field, err := booking.ParseSortField("monto")
	require.NoError(t, err)
	assert.Equal(t, booking.SortByAmount, field)

	field, err = booking.ParseSortField("FECHA")
	require.NoError(t, err)
	assert.Equal(t, booking.SortByDate, field)

	field, err = booking.ParseSortField("")
	require.NoError(t, err)
	assert.Equal(t, booking.SortByDate, field)

	_, err = booking.ParseSortField("room")
	assert.ErrorIs(t, err, booking.ErrInvalidSortField)

	dir, err := booking.ParseSortDirection("asc")
	require.NoError(t, err)
	assert.Equal(t, booking.SortAsc, dir)

	dir, err = booking.ParseSortDirection("")
	require.NoError(t, err)
	assert.Equal(t, booking.SortDesc, dir)

	_, err = booking.ParseSortDirection("sideways")
	assert.ErrorIs(t, err, booking.ErrInvalidSortDirection)
}

func compareIDs(a, b uuid.UUID) int {
	as, bs := a.String(), b.String()
	switch {
	case as < bs:
		return -1
	case as > bs:
		return 1
	default:
		return 0
	}
}
