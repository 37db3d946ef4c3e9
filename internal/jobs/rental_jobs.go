package jobs

import (
	"context"

	"equipment-rental-manager/internal/logger"
)

// ReportOverdueRentals logs every active rental past its return date.
// Overdue is computed on read, so nothing is written.
func (jr *JobRunner) ReportOverdueRentals() {
	jr.runWithRecovery("ReportOverdueRentals", func(ctx context.Context) error {
		_, err := jr.reportOverdueRentals(ctx)
		return err
	})
}

func (jr *JobRunner) reportOverdueRentals(ctx context.Context) (int, error) {
	overdue, err := jr.services.Rental.ListOverdueRentals(ctx)
	if err != nil {
		return 0, err
	}

	for _, r := range overdue {
		logger.Warn("Rental overdue",
			"rental_id", r.ID,
			"folio", r.Folio,
			"client", r.ClientName,
			"return_date", r.ReturnDate,
			"total", r.Total.StringFixed(2),
		)
	}
	logger.Info("Overdue rentals reported", "count", len(overdue))
	return len(overdue), nil
}
