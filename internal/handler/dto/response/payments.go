package response

import (
	"gestion-turnos/internal/domain/booking"

	"github.com/jinzhu/copier"
)

type MonthTotalResponse struct {
	Month  string `json:"month"`
	Amount int64  `json:"amount"`
}

type MethodTotalResponse struct {
	Method string `json:"method"`
	Count  int    `json:"count"`
	Amount int64  `json:"amount"`
}

type PaymentsDashboardResponse struct {
	PaidCount      int                   `json:"paidCount"`
	PendingCount   int                   `json:"pendingCount"`
	CancelledCount int                   `json:"cancelledCount"`
	TotalPaid      int64                 `json:"totalPaid"`
	TotalPending   int64                 `json:"totalPending"`
	AveragePaid    float64               `json:"averagePaid"`
	ByMonth        []MonthTotalResponse  `json:"byMonth"`
	ByMethod       []MethodTotalResponse `json:"byMethod"`
	LatestPaid     []*BookingResponse    `json:"latestPaid"`
	Pending        []*BookingResponse    `json:"pending"`
}

func FromPaymentSummary(s booking.PaymentSummary) (*PaymentsDashboardResponse, error) {
	out := &PaymentsDashboardResponse{
		PaidCount:      s.PaidCount,
		PendingCount:   s.PendingCount,
		CancelledCount: s.CancelledCount,
		TotalPaid:      s.TotalPaid,
		TotalPending:   s.TotalPending,
		AveragePaid:    s.AveragePaid,
		ByMonth:        make([]MonthTotalResponse, 0, len(s.ByMonth)),
		ByMethod:       make([]MethodTotalResponse, 0, len(s.ByMethod)),
		LatestPaid:     FromBookings(s.LatestPaid),
		Pending:        FromBookings(s.Pending),
	}
	if err := copier.Copy(&out.ByMonth, &s.ByMonth); err != nil {
		return nil, err
	}
	if err := copier.Copy(&out.ByMethod, &s.ByMethod); err != nil {
		return nil, err
	}
	return out, nil
}
