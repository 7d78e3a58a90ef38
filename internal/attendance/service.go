package attendance

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/hmranwar/guardpost-backend/internal/leaveperiods"
	"github.com/hmranwar/guardpost-backend/pkg/db/models"
	"github.com/hmranwar/guardpost-backend/pkg/db/types"
	"github.com/hmranwar/guardpost-backend/pkg/enums"
	pkgerrors "github.com/hmranwar/guardpost-backend/pkg/errors"
	"github.com/hmranwar/guardpost-backend/pkg/logger"
	"github.com/hmranwar/guardpost-backend/pkg/metrics"
	"github.com/hmranwar/guardpost-backend/pkg/pubsub"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service reconciles daily attendance sheets and derives leave periods
// from them.
type Service interface {
	BulkUpsert(ctx context.Context, input BulkUpsertInput) (int, error)
	ListByDate(ctx context.Context, day types.Date) (*DaySheet, error)
	ListByRange(ctx context.Context, from, to types.Date) ([]models.AttendanceRecord, error)
	ListByEmployee(ctx context.Context, employeeID string, from, to types.Date) ([]models.AttendanceRecord, error)
	Summary(ctx context.Context, from, to types.Date) (*Summary, error)
}

// RecordInput is one employee's sheet entry for the batch date. Optional
// fields are pointers; an absent field nulls the stored column on replace.
type RecordInput struct {
	EmployeeID      string                 `json:"employee_id" validate:"required"`
	Status          enums.AttendanceStatus `json:"status" validate:"required"`
	Note            *string                `json:"note"`
	OvertimeMinutes *int                   `json:"overtime_minutes"`
	OvertimeRate    *decimal.Decimal       `json:"overtime_rate"`
	LateMinutes     *int                   `json:"late_minutes"`
	LateDeduction   *decimal.Decimal       `json:"late_deduction"`
	LeaveType       *string                `json:"leave_type"`
	FineAmount      *decimal.Decimal       `json:"fine_amount"`
}

// BulkUpsertInput is a full attendance sheet for one date.
type BulkUpsertInput struct {
	Date    types.Date    `json:"date" validate:"required"`
	Records []RecordInput `json:"records" validate:"required,dive"`
}

// DaySheet is the per-date read model.
type DaySheet struct {
	Date    types.Date                `json:"date"`
	Records []models.AttendanceRecord `json:"records"`
}

// Summary is a status histogram over a date range.
type Summary struct {
	FromDate     types.Date     `json:"from_date"`
	ToDate       types.Date     `json:"to_date"`
	TotalRecords int            `json:"total_records"`
	ByStatus     map[string]int `json:"by_status"`
}

// queuedLeave is an entry waiting for leave period reconciliation.
type queuedLeave struct {
	employeeID string
	day        types.Date
	leaveType  string
	note       *string
}

type service struct {
	repo    Repository
	leaves  leaveperiods.Repository
	tx      txRunner
	events  pubsub.LeaveEventPublisher
	logg    *logger.Logger
	metrics *metrics.ReconcilerMetrics
}

// NewService builds the attendance service. The event publisher, logger,
// and metrics are optional.
func NewService(repo Repository, leaves leaveperiods.Repository, tx txRunner, events pubsub.LeaveEventPublisher, logg *logger.Logger, m *metrics.ReconcilerMetrics) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("attendance repository required")
	}
	if leaves == nil {
		return nil, fmt.Errorf("leave period repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{
		repo:    repo,
		leaves:  leaves,
		tx:      tx,
		events:  events,
		logg:    logg,
		metrics: m,
	}, nil
}

// BulkUpsert replaces each (employee_id, date) row with the submitted
// entry and then reconciles leave periods for every leave entry that
// names a leave type. Each row and each queued leave entry runs in its
// own transaction; on failure, prior commits stand and the error is
// returned for the batch.
func (s *service) BulkUpsert(ctx context.Context, input BulkUpsertInput) (int, error) {
	if input.Date.IsZero() {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "date is required")
	}
	if len(input.Records) == 0 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "records must not be empty")
	}
	for i, rec := range input.Records {
		if rec.EmployeeID == "" {
			return 0, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("records[%d]: employee_id is required", i))
		}
		if !rec.Status.IsValid() {
			return 0, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("records[%d]: invalid status %q", i, rec.Status))
		}
	}

	upserted := 0
	queued := []queuedLeave{}

	for _, rec := range input.Records {
		if err := s.upsertOne(ctx, input.Date, rec); err != nil {
			s.metrics.IncBatchFailures()
			return upserted, err
		}
		upserted++

		if rec.Status == enums.AttendanceStatusLeave && rec.LeaveType != nil && *rec.LeaveType != "" {
			queued = append(queued, queuedLeave{
				employeeID: rec.EmployeeID,
				day:        input.Date,
				leaveType:  *rec.LeaveType,
				note:       rec.Note,
			})
		}
	}
	s.metrics.AddRowsUpserted(upserted)

	for _, entry := range queued {
		if err := s.reconcileLeave(ctx, entry); err != nil {
			s.metrics.IncBatchFailures()
			return upserted, err
		}
	}

	return upserted, nil
}

// upsertOne runs the row's check-then-write pair in one transaction.
func (s *service) upsertOne(ctx context.Context, day types.Date, rec RecordInput) error {
	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		row := &models.AttendanceRecord{
			EmployeeID:      rec.EmployeeID,
			Date:            day,
			Status:          rec.Status,
			Note:            rec.Note,
			OvertimeMinutes: rec.OvertimeMinutes,
			OvertimeRate:    rec.OvertimeRate,
			LateMinutes:     rec.LateMinutes,
			LateDeduction:   rec.LateDeduction,
			LeaveType:       rec.LeaveType,
			FineAmount:      rec.FineAmount,
		}

		existing, err := repo.FindByEmployeeDate(ctx, rec.EmployeeID, day)
		if err != nil {
			return err
		}
		if existing != nil {
			row.ID = existing.ID
			row.CreatedAt = existing.CreatedAt
			return repo.Replace(ctx, row)
		}
		return repo.Create(ctx, row)
	})
}

// reconcileLeave merges the leave day into an adjacent period or opens a
// new single-day one. The merge is greedy and single-step: a period
// ending the day before wins over one starting the day after, and no
// second pass joins the two. Entries are processed in batch order, so an
// out-of-order batch can leave two touching periods; a later adjacent
// day will still only extend one of them. This mirrors the behavior the
// payroll team already audits against, so it stays as-is.
func (s *service) reconcileLeave(ctx context.Context, entry queuedLeave) error {
	var action string
	var period *models.LeavePeriod

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		leaves := s.leaves.WithTx(tx)

		yesterday := entry.day.AddDays(-1)
		tomorrow := entry.day.AddDays(1)

		forward, err := leaves.FindEndingOn(ctx, entry.employeeID, entry.leaveType, yesterday)
		if err != nil {
			return err
		}
		if forward != nil {
			forward.ToDate = entry.day
			if err := leaves.Update(ctx, forward); err != nil {
				return err
			}
			action, period = pubsub.LeaveEventExtended, forward
			return nil
		}

		backward, err := leaves.FindStartingOn(ctx, entry.employeeID, entry.leaveType, tomorrow)
		if err != nil {
			return err
		}
		if backward != nil {
			backward.FromDate = entry.day
			if err := leaves.Update(ctx, backward); err != nil {
				return err
			}
			action, period = pubsub.LeaveEventExtended, backward
			return nil
		}

		existing, err := leaves.FindExactDay(ctx, entry.employeeID, entry.day)
		if err != nil {
			return err
		}
		if existing != nil {
			return nil
		}

		reason := fmt.Sprintf("Auto-created from attendance (%s)", entry.leaveType)
		if entry.note != nil && *entry.note != "" {
			reason = *entry.note
		}
		created := &models.LeavePeriod{
			EmployeeID: entry.employeeID,
			FromDate:   entry.day,
			ToDate:     entry.day,
			LeaveType:  entry.leaveType,
			Reason:     reason,
		}
		if err := leaves.Create(ctx, created); err != nil {
			return err
		}
		action, period = pubsub.LeaveEventCreated, created
		return nil
	})
	if err != nil {
		return err
	}

	if period != nil {
		if action == pubsub.LeaveEventCreated {
			s.metrics.IncLeavePeriodsOpened()
		}
		s.publish(ctx, action, period)
	}
	return nil
}

func (s *service) ListByDate(ctx context.Context, day types.Date) (*DaySheet, error) {
	if day.IsZero() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "date is required")
	}
	records, err := s.repo.ListByDate(ctx, day)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing attendance by date")
	}
	return &DaySheet{Date: day, Records: records}, nil
}

func (s *service) ListByRange(ctx context.Context, from, to types.Date) ([]models.AttendanceRecord, error) {
	if err := validateRange(from, to); err != nil {
		return nil, err
	}
	records, err := s.repo.ListByRange(ctx, from, to)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing attendance by range")
	}
	return records, nil
}

func (s *service) ListByEmployee(ctx context.Context, employeeID string, from, to types.Date) ([]models.AttendanceRecord, error) {
	if employeeID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "employee_id is required")
	}
	if err := validateRange(from, to); err != nil {
		return nil, err
	}
	records, err := s.repo.ListByEmployee(ctx, employeeID, from, to)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing attendance by employee")
	}
	return records, nil
}

func (s *service) Summary(ctx context.Context, from, to types.Date) (*Summary, error) {
	records, err := s.ListByRange(ctx, from, to)
	if err != nil {
		return nil, err
	}

	summary := &Summary{
		FromDate:     from,
		ToDate:       to,
		TotalRecords: len(records),
		ByStatus:     map[string]int{},
	}
	for _, r := range records {
		summary.ByStatus[string(r.Status)]++
	}
	return summary, nil
}

func validateRange(from, to types.Date) error {
	if from.IsZero() || to.IsZero() {
		return pkgerrors.New(pkgerrors.CodeValidation, "from_date and to_date are required")
	}
	if to.Before(from) {
		return pkgerrors.New(pkgerrors.CodeValidation, "to_date must not precede from_date")
	}
	return nil
}

func (s *service) publish(ctx context.Context, action string, period *models.LeavePeriod) {
	if s.events == nil {
		return
	}
	evt := pubsub.LeavePeriodEvent{
		EventID:    uuid.NewString(),
		Action:     action,
		PeriodID:   period.ID.String(),
		EmployeeID: period.EmployeeID,
		FromDate:   period.FromDate.String(),
		ToDate:     period.ToDate.String(),
		LeaveType:  period.LeaveType,
		Reason:     period.Reason,
		Source:     "attendance",
		OccurredAt: time.Now().UTC(),
	}
	if err := s.events.PublishLeavePeriodEvent(ctx, evt); err != nil && s.logg != nil {
		s.logg.Warn(s.logg.WithField(ctx, "period_id", period.ID.String()), "leave event publish failed")
	}
}
