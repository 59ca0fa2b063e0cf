package booking

import (
	"slices"
	"time"

	"gestion-turnos/internal/domain/user"
)

type edge struct {
	to    Status
	roles []user.Role
	// owner lets the paying client through even though CLIENT is not in roles
	owner bool
}

var transitions = map[Status]map[Action]edge{
	StatusPendingPayment: {
		ActionConfirmPayment: {to: StatusActive, roles: []user.Role{user.RoleEmployee}},
		ActionRejectPayment:  {to: StatusCancelled, roles: []user.Role{user.RoleEmployee}},
		ActionCancel:         {to: StatusCancelled, roles: []user.Role{user.RoleEmployee}, owner: true},
	},
	StatusActive: {
		ActionCancel: {to: StatusCancelled, roles: []user.Role{user.RoleEmployee}, owner: true},
		ActionFinish: {to: StatusFinished, roles: []user.Role{user.RoleSystem}},
	},
}

// Transition applies action and returns the moved booking; b itself is left untouched.
// Persisting the result and any side effect belong to the caller.
func Transition(b *Booking, action Action, actor Actor, now time.Time) (*Booking, error) {
	if actor.Role == user.RoleClient && !actor.IsOwner(b) {
		return nil, ErrForbidden
	}

	e, ok := transitions[b.status][action]
	if !ok {
		return nil, ErrInvalidTransition
	}

	if !permits(e, actor, b) {
		return nil, ErrForbidden
	}

	next := b.clone()
	next.status = e.to
	next.updatedAt = now
	return next, nil
}

// CanTransition reports whether action is defined for the current status, ignoring who asks.
func CanTransition(status Status, action Action) bool {
	_, ok := transitions[status][action]
	return ok
}

func permits(e edge, actor Actor, b *Booking) bool {
	if actor.Role == user.RoleAdmin {
		return true
	}
	if slices.Contains(e.roles, actor.Role) {
		return true
	}
	return e.owner && actor.Role == user.RoleClient && actor.IsOwner(b)
}

type Changes struct {
	Room          RoomRef
	Start         time.Time
	End           time.Time
	PaymentMethod PaymentMethod
}

// Edit replaces room, range and payment method of an active booking and re-prices it.
func Edit(b *Booking, changes Changes, actor Actor, prices PriceCalculator, now time.Time) (*Booking, error) {
	switch actor.Role {
	case user.RoleAdmin, user.RoleEmployee:
	case user.RoleClient:
		if !actor.IsOwner(b) {
			return nil, ErrForbidden
		}
	default:
		return nil, ErrForbidden
	}

	if b.status != StatusActive {
		return nil, ErrNotEditable
	}
	if !changes.PaymentMethod.IsValid() {
		return nil, ErrInvalidPaymentMethod
	}

	slot, err := NewTimeSlot(changes.Start, changes.End)
	if err != nil {
		return nil, err
	}
	amount, err := prices.ComputePrice(changes.Room.Size, slot.Start(), slot.End())
	if err != nil {
		return nil, err
	}
	if amount < 0 {
		return nil, ErrNegativeAmount
	}

	next := b.clone()
	next.room = changes.Room
	next.slot = slot
	next.paymentMethod = changes.PaymentMethod
	next.amount = amount
	next.updatedAt = now
	return next, nil
}
