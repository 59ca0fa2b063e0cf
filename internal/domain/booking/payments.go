package booking

import (
	"slices"
	"strings"
	"time"
)

const latestPaymentsLimit = 10

type PaymentState string

const (
	PaymentPaid      PaymentState = "PAID"
	PaymentPending   PaymentState = "PENDING"
	PaymentCancelled PaymentState = "CANCELLED"
)

func PaymentStateOf(b *Booking) PaymentState {
	switch b.status {
	case StatusCancelled:
		return PaymentCancelled
	case StatusPendingPayment:
		return PaymentPending
	default:
		return PaymentPaid
	}
}

type MonthTotal struct {
	Month  string
	Amount int64
}

type MethodTotal struct {
	Method PaymentMethod
	Count  int
	Amount int64
}

type PaymentSummary struct {
	PaidCount      int
	PendingCount   int
	CancelledCount int
	TotalPaid      int64
	TotalPending   int64
	AveragePaid    float64
	ByMonth        []MonthTotal
	ByMethod       []MethodTotal
	LatestPaid     []*Booking
	Pending        []*Booking
}

// SummarizePayments groups months in loc so a booking at 23:30 local time lands in its local month.
func SummarizePayments(bookings []*Booking, loc *time.Location) PaymentSummary {
	if loc == nil {
		loc = time.UTC
	}

	var (
		summary  PaymentSummary
		paid     []*Booking
		byMonth  = make(map[string]int64)
		byMethod = make(map[PaymentMethod]*MethodTotal)
	)

	for _, b := range bookings {
		switch PaymentStateOf(b) {
		case PaymentCancelled:
			summary.CancelledCount++
		case PaymentPending:
			summary.PendingCount++
			summary.TotalPending += b.amount
			summary.Pending = append(summary.Pending, b)
		case PaymentPaid:
			summary.PaidCount++
			summary.TotalPaid += b.amount
			paid = append(paid, b)

			byMonth[b.slot.Start().In(loc).Format("2006-01")] += b.amount

			mt, ok := byMethod[b.paymentMethod]
			if !ok {
				mt = &MethodTotal{Method: b.paymentMethod}
				byMethod[b.paymentMethod] = mt
			}
			mt.Count++
			mt.Amount += b.amount
		}
	}

	if summary.PaidCount > 0 {
		summary.AveragePaid = float64(summary.TotalPaid) / float64(summary.PaidCount)
	}

	for month, amount := range byMonth {
		summary.ByMonth = append(summary.ByMonth, MonthTotal{Month: month, Amount: amount})
	}
	slices.SortFunc(summary.ByMonth, func(a, b MonthTotal) int {
		return strings.Compare(a.Month, b.Month)
	})

	for _, mt := range byMethod {
		summary.ByMethod = append(summary.ByMethod, *mt)
	}
	slices.SortFunc(summary.ByMethod, func(a, b MethodTotal) int {
		return strings.Compare(string(a.Method), string(b.Method))
	})

	summary.LatestPaid = FilterAndSort(paid, Filters{}, DefaultSort())
	if len(summary.LatestPaid) > latestPaymentsLimit {
		summary.LatestPaid = summary.LatestPaid[:latestPaymentsLimit]
	}
	return summary
}
