package leaveperiods

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/hmranwar/guardpost-backend/pkg/db/models"
	"github.com/hmranwar/guardpost-backend/pkg/db/types"
	pkgerrors "github.com/hmranwar/guardpost-backend/pkg/errors"
	"github.com/hmranwar/guardpost-backend/pkg/logger"
	"github.com/hmranwar/guardpost-backend/pkg/pubsub"
)

// alertWindowDays is how close to its last day a period must be before
// it shows up in Alerts.
const alertWindowDays = 3

// Service exposes the manual leave period CRUD path. The attendance
// reconciler writes through the same repository but bypasses this service.
type Service interface {
	List(ctx context.Context, filter ListFilter) ([]models.LeavePeriod, error)
	Create(ctx context.Context, input CreateInput) (*models.LeavePeriod, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*models.LeavePeriod, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Alerts(ctx context.Context, asOf types.Date, employeeID *string) ([]Alert, error)
}

// CreateInput captures a manually entered leave period.
type CreateInput struct {
	EmployeeID string     `json:"employee_id" validate:"required"`
	FromDate   types.Date `json:"from_date" validate:"required"`
	ToDate     types.Date `json:"to_date" validate:"required"`
	LeaveType  string     `json:"leave_type" validate:"required"`
	Reason     string     `json:"reason"`
}

// UpdateInput carries partial updates; nil fields are left untouched.
type UpdateInput struct {
	FromDate  *types.Date `json:"from_date"`
	ToDate    *types.Date `json:"to_date"`
	LeaveType *string     `json:"leave_type"`
	Reason    *string     `json:"reason"`
}

// Alert flags a leave period ending within the alert window.
type Alert struct {
	LeavePeriodID uuid.UUID  `json:"leave_period_id"`
	EmployeeID    string     `json:"employee_id"`
	FromDate      types.Date `json:"from_date"`
	ToDate        types.Date `json:"to_date"`
	LeaveType     string     `json:"leave_type"`
	Reason        string     `json:"reason"`
	LastDay       types.Date `json:"last_day"`
	Message       string     `json:"message"`
}

type service struct {
	repo   Repository
	events pubsub.LeaveEventPublisher
	logg   *logger.Logger
}

// NewService wires a leave period service. The event publisher may be nil.
func NewService(repo Repository, events pubsub.LeaveEventPublisher, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("leave period repository required")
	}
	return &service{repo: repo, events: events, logg: logg}, nil
}

func (s *service) List(ctx context.Context, filter ListFilter) ([]models.LeavePeriod, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Create(ctx context.Context, input CreateInput) (*models.LeavePeriod, error) {
	if input.EmployeeID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "employee_id is required")
	}
	if input.LeaveType == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "leave_type is required")
	}
	if input.FromDate.IsZero() || input.ToDate.IsZero() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "from_date and to_date are required")
	}
	if input.ToDate.Before(input.FromDate) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "to_date must not precede from_date")
	}

	period := &models.LeavePeriod{
		EmployeeID: input.EmployeeID,
		FromDate:   input.FromDate,
		ToDate:     input.ToDate,
		LeaveType:  input.LeaveType,
		Reason:     input.Reason,
	}
	if err := s.repo.Create(ctx, period); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating leave period")
	}

	s.publish(ctx, pubsub.LeaveEventCreated, period)
	return period, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*models.LeavePeriod, error) {
	period, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading leave period")
	}
	if period == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "leave period not found")
	}

	if input.FromDate != nil {
		period.FromDate = *input.FromDate
	}
	if input.ToDate != nil {
		period.ToDate = *input.ToDate
	}
	if input.LeaveType != nil {
		period.LeaveType = *input.LeaveType
	}
	if input.Reason != nil {
		period.Reason = *input.Reason
	}
	if period.ToDate.Before(period.FromDate) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "to_date must not precede from_date")
	}

	if err := s.repo.Update(ctx, period); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating leave period")
	}

	s.publish(ctx, pubsub.LeaveEventExtended, period)
	return period, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	period, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading leave period")
	}
	if period == nil {
		return pkgerrors.New(pkgerrors.CodeNotFound, "leave period not found")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "deleting leave period")
	}

	s.publish(ctx, pubsub.LeaveEventDeleted, period)
	return nil
}

func (s *service) Alerts(ctx context.Context, asOf types.Date, employeeID *string) ([]Alert, error) {
	if asOf.IsZero() {
		asOf = types.DateOf(time.Now())
	}

	periods, err := s.repo.ListEndingBetween(ctx, asOf, asOf.AddDays(alertWindowDays))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing ending leave periods")
	}

	alerts := make([]Alert, 0, len(periods))
	for _, p := range periods {
		if employeeID != nil && p.EmployeeID != *employeeID {
			continue
		}
		alerts = append(alerts, Alert{
			LeavePeriodID: p.ID,
			EmployeeID:    p.EmployeeID,
			FromDate:      p.FromDate,
			ToDate:        p.ToDate,
			LeaveType:     p.LeaveType,
			Reason:        p.Reason,
			LastDay:       p.ToDate,
			Message:       "Leave period ending soon",
		})
	}
	return alerts, nil
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
		Source:     "manual",
		OccurredAt: time.Now().UTC(),
	}
	if err := s.events.PublishLeavePeriodEvent(ctx, evt); err != nil && s.logg != nil {
		s.logg.Warn(s.logg.WithField(ctx, "period_id", period.ID.String()), "leave event publish failed")
	}
}
