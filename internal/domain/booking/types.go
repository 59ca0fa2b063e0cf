package booking

import (
	"errors"
	"strings"
)

var (
	ErrInvalidStatus        = errors.New("invalid booking status")
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
	ErrInvalidAction        = errors.New("invalid booking action")
)

type Status string

const (
	StatusPendingPayment Status = "PENDING_PAYMENT_CONFIRMATION"
	StatusActive         Status = "ACTIVE"
	StatusCancelled      Status = "CANCELLED"
	StatusFinished       Status = "FINISHED"
)

// legacy backends send Spanish, sometimes gendered, status names
var statusAliases = map[string]Status{
	"PENDING_PAYMENT_CONFIRMATION": StatusPendingPayment,
	"PENDIENTE_CONFIRMACION_PAGO":  StatusPendingPayment,
	"PENDIENTE_PAGO":               StatusPendingPayment,
	"ACTIVE":                       StatusActive,
	"ACTIVA":                       StatusActive,
	"ACTIVO":                       StatusActive,
	"CANCELLED":                    StatusCancelled,
	"CANCELED":                     StatusCancelled,
	"CANCELADA":                    StatusCancelled,
	"CANCELADO":                    StatusCancelled,
	"FINISHED":                     StatusFinished,
	"FINALIZADA":                   StatusFinished,
	"FINALIZADO":                   StatusFinished,
}

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPendingPayment, StatusActive, StatusCancelled, StatusFinished:
		return true
	default:
		return false
	}
}

func (s Status) IsTerminal() bool {
	return s == StatusCancelled || s == StatusFinished
}

// Occupies reports whether a booking in this status holds its room.
func (s Status) Occupies() bool {
	return s == StatusActive || s == StatusPendingPayment
}

func ParseStatus(s string) (Status, error) {
	status, ok := statusAliases[normalizeKey(s)]
	if !ok {
		return "", ErrInvalidStatus
	}
	return status, nil
}

type PaymentMethod string

const (
	PaymentCash          PaymentMethod = "CASH"
	PaymentCard          PaymentMethod = "CARD"
	PaymentTransfer      PaymentMethod = "TRANSFER"
	PaymentOnlineGateway PaymentMethod = "ONLINE_GATEWAY"
)

var paymentAliases = map[string]PaymentMethod{
	"CASH":            PaymentCash,
	"EFECTIVO":        PaymentCash,
	"CARD":            PaymentCard,
	"TARJETA":         PaymentCard,
	"TRANSFER":        PaymentTransfer,
	"TRANSFERENCIA":   PaymentTransfer,
	"ONLINE_GATEWAY":  PaymentOnlineGateway,
	"PASARELA_ONLINE": PaymentOnlineGateway,
}

func (m PaymentMethod) String() string {
	return string(m)
}

func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentCash, PaymentCard, PaymentTransfer, PaymentOnlineGateway:
		return true
	default:
		return false
	}
}

// RequiresConfirmation reports whether staff must confirm the payment before the booking is active.
func (m PaymentMethod) RequiresConfirmation() bool {
	return m == PaymentTransfer || m == PaymentOnlineGateway
}

func ParsePaymentMethod(s string) (PaymentMethod, error) {
	method, ok := paymentAliases[normalizeKey(s)]
	if !ok {
		return "", ErrInvalidPaymentMethod
	}
	return method, nil
}

type Action string

const (
	ActionConfirmPayment Action = "confirmPayment"
	ActionRejectPayment  Action = "rejectPayment"
	ActionCancel         Action = "cancel"
	ActionFinish         Action = "finish"
)

func (a Action) String() string {
	return string(a)
}

func ParseAction(s string) (Action, error) {
	switch strings.ToLower(strings.NewReplacer("-", "", "_", "").Replace(strings.TrimSpace(s))) {
	case "confirmpayment":
		return ActionConfirmPayment, nil
	case "rejectpayment":
		return ActionRejectPayment, nil
	case "cancel":
		return ActionCancel, nil
	case "finish":
		return ActionFinish, nil
	default:
		return "", ErrInvalidAction
	}
}

func normalizeKey(s string) string {
	key := strings.ToUpper(strings.TrimSpace(s))
	key = strings.ReplaceAll(key, " ", "_")
	return strings.ReplaceAll(key, "-", "_")
}
