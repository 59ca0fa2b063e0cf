//go:build unit || e2e

// Package memstore is an in-memory UnitOfWork for use case tests. It only
// builds under the unit and e2e tags and is never wired into the app.
package memstore

import (
	"context"
	"maps"
	"slices"
	"strings"
	"sync"
	"time"

	"gestion-turnos/internal/domain/booking"
	"gestion-turnos/internal/domain/room"
	"gestion-turnos/internal/domain/user"
	"gestion-turnos/internal/infra"
	"gestion-turnos/internal/usecase/shared"

	"github.com/google/uuid"
)

type Store struct {
	mu       sync.Mutex
	bookings map[uuid.UUID]*booking.Booking
	rooms    map[uuid.UUID]*room.Room
	users    map[uuid.UUID]*user.User

	// Fail, when set, is returned as a DB failure by every repository call.
	Fail error
}

func New() *Store {
	return &Store{
		bookings: map[uuid.UUID]*booking.Booking{},
		rooms:    map[uuid.UUID]*room.Room{},
		users:    map[uuid.UUID]*user.User{},
	}
}

// Within restores the previous state when fn fails.
func (s *Store) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	s.mu.Lock()
	bookings, rooms, users := maps.Clone(s.bookings), maps.Clone(s.rooms), maps.Clone(s.users)
	s.mu.Unlock()

	if err := fn(ctx, s); err != nil {
		s.mu.Lock()
		s.bookings, s.rooms, s.users = bookings, rooms, users
		s.mu.Unlock()
		return err
	}
	return nil
}

func (s *Store) Bookings() shared.BookingRepository { return bookingRepo{s} }
func (s *Store) Rooms() shared.RoomRepository       { return roomRepo{s} }
func (s *Store) Users() shared.UserRepository       { return userRepo{s} }

func (s *Store) PutBooking(b *booking.Booking) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bookings[b.ID()] = b
}

func (s *Store) PutRoom(r *room.Room) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rooms[r.ID()] = r
}

func (s *Store) PutUser(u *user.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.ID()] = u
}

func (s *Store) Booking(id uuid.UUID) (*booking.Booking, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bookings[id]
	return b, ok
}

func (s *Store) failure(msg string) error {
	if s.Fail == nil {
		return nil
	}
	return infra.WrapRepoErr(msg, s.Fail, infra.KindDBFailure)
}

func notFound(what string) error {
	return infra.WrapRepoErr(what+" not found", nil, infra.KindNotFound)
}

type bookingRepo struct{ s *Store }

func (r bookingRepo) Create(_ context.Context, b *booking.Booking) error {
	if err := r.s.failure("create booking"); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.bookings[b.ID()]; ok {
		return infra.WrapRepoErr("booking exists", nil, infra.KindDuplicateKey)
	}
	r.s.bookings[b.ID()] = b
	return nil
}

func (r bookingRepo) Update(_ context.Context, b *booking.Booking) error {
	if err := r.s.failure("update booking"); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.bookings[b.ID()]; !ok {
		return notFound("booking")
	}
	r.s.bookings[b.ID()] = b
	return nil
}

func (r bookingRepo) Delete(_ context.Context, id uuid.UUID) error {
	if err := r.s.failure("delete booking"); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.bookings[id]; !ok {
		return notFound("booking")
	}
	delete(r.s.bookings, id)
	return nil
}

func (r bookingRepo) FindByID(_ context.Context, id uuid.UUID) (*booking.Booking, error) {
	if err := r.s.failure("find booking"); err != nil {
		return nil, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	b, ok := r.s.bookings[id]
	if !ok {
		return nil, notFound("booking")
	}
	return b, nil
}

func (r bookingRepo) FindByStatus(_ context.Context, statuses ...booking.Status) ([]*booking.Booking, error) {
	return r.where("find bookings by status", func(b *booking.Booking) bool {
		return slices.Contains(statuses, b.Status())
	})
}

func (r bookingRepo) FindByPayer(_ context.Context, payerID uuid.UUID) ([]*booking.Booking, error) {
	return r.where("find bookings by payer", func(b *booking.Booking) bool {
		return b.Payer().ID == payerID
	})
}

func (r bookingRepo) FindStartingBetween(_ context.Context, from, to time.Time) ([]*booking.Booking, error) {
	return r.where("find bookings in window", func(b *booking.Booking) bool {
		return !b.StartTime().Before(from) && b.StartTime().Before(to)
	})
}

func (r bookingRepo) FindActiveEndedBefore(_ context.Context, t time.Time) ([]*booking.Booking, error) {
	return r.where("find elapsed bookings", func(b *booking.Booking) bool {
		return b.IsActive() && b.HasElapsed(t)
	})
}

func (r bookingRepo) HasOverlap(_ context.Context, roomID uuid.UUID, slot booking.TimeSlot, excludeID *uuid.UUID) (bool, error) {
	found, err := r.where("check overlap", func(b *booking.Booking) bool {
		if excludeID != nil && b.ID() == *excludeID {
			return false
		}
		return b.Room().ID == roomID && b.Status().Occupies() && b.TimeSlot().Overlaps(slot)
	})
	return len(found) > 0, err
}

// where returns matches ordered by start, then id, so tests see a stable order.
func (r bookingRepo) where(msg string, keep func(*booking.Booking) bool) ([]*booking.Booking, error) {
	if err := r.s.failure(msg); err != nil {
		return nil, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	out := make([]*booking.Booking, 0)
	for _, b := range r.s.bookings {
		if keep(b) {
			out = append(out, b)
		}
	}
	slices.SortFunc(out, func(a, b *booking.Booking) int {
		if c := a.StartTime().Compare(b.StartTime()); c != 0 {
			return c
		}
		return strings.Compare(a.ID().String(), b.ID().String())
	})
	return out, nil
}

type roomRepo struct{ s *Store }

func (r roomRepo) Create(_ context.Context, rm *room.Room) error {
	if err := r.s.failure("create room"); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.rooms {
		if existing.Number() == rm.Number() {
			return infra.WrapRepoErr("room number exists", nil, infra.KindDuplicateKey)
		}
	}
	r.s.rooms[rm.ID()] = rm
	return nil
}

func (r roomRepo) Update(_ context.Context, rm *room.Room) error {
	if err := r.s.failure("update room"); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.rooms[rm.ID()]; !ok {
		return notFound("room")
	}
	r.s.rooms[rm.ID()] = rm
	return nil
}

func (r roomRepo) Delete(_ context.Context, id uuid.UUID) error {
	if err := r.s.failure("delete room"); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.rooms[id]; !ok {
		return notFound("room")
	}
	for _, b := range r.s.bookings {
		if b.Room().ID == id {
			return infra.WrapRepoErr("room referenced", nil, infra.KindForeignKeyViolated)
		}
	}
	delete(r.s.rooms, id)
	return nil
}

func (r roomRepo) FindByID(_ context.Context, id uuid.UUID) (*room.Room, error) {
	if err := r.s.failure("find room"); err != nil {
		return nil, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rm, ok := r.s.rooms[id]
	if !ok {
		return nil, notFound("room")
	}
	return rm, nil
}

func (r roomRepo) Lock(ctx context.Context, id uuid.UUID) (*room.Room, error) {
	return r.FindByID(ctx, id)
}

func (r roomRepo) List(_ context.Context) ([]*room.Room, error) {
	if err := r.s.failure("list rooms"); err != nil {
		return nil, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := slices.Collect(maps.Values(r.s.rooms))
	slices.SortFunc(out, func(a, b *room.Room) int { return a.Number() - b.Number() })
	return out, nil
}

type userRepo struct{ s *Store }

func (r userRepo) Create(_ context.Context, u *user.User) error {
	if err := r.s.failure("create user"); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.users {
		if existing.Email() == u.Email() {
			return infra.WrapRepoErr("email exists", nil, infra.KindDuplicateKey)
		}
	}
	r.s.users[u.ID()] = u
	return nil
}

func (r userRepo) FindByEmail(_ context.Context, email user.Email) (*user.User, error) {
	if err := r.s.failure("find user by email"); err != nil {
		return nil, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email() == email {
			return u, nil
		}
	}
	return nil, notFound("user")
}

func (r userRepo) FindByID(_ context.Context, id uuid.UUID) (*user.User, error) {
	if err := r.s.failure("find user"); err != nil {
		return nil, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, notFound("user")
	}
	return u, nil
}

// Recorder is an EventPublisher that keeps what it was given.
type Recorder struct {
	mu     sync.Mutex
	Events []shared.BookingEvent
	Err    error
}

func (p *Recorder) Publish(_ context.Context, event shared.BookingEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Events = append(p.Events, event)
	return p.Err
}

func (p *Recorder) Kinds() []shared.EventKind {
	p.mu.Lock()
	defer p.mu.Unlock()
	kinds := make([]shared.EventKind, len(p.Events))
	for i, e := range p.Events {
		kinds[i] = e.Kind
	}
	return kinds
}
