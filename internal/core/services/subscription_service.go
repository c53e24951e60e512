package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fintrackr/fintrackr_backend/internal/apperrors"
	"github.com/fintrackr/fintrackr_backend/internal/core/domain"
	portsrepo "github.com/fintrackr/fintrackr_backend/internal/core/ports/repositories"
	portssvc "github.com/fintrackr/fintrackr_backend/internal/core/ports/services"
	"github.com/fintrackr/fintrackr_backend/internal/dto"
	"github.com/fintrackr/fintrackr_backend/internal/utils/dateutil"
)

// reminderLeadDays is how many days before a charge its reminder fires.
const reminderLeadDays = 3

type subscriptionService struct {
	BaseService
	repo portsrepo.SubscriptionRepository
	now  func() time.Time
}

// NewSubscriptionService creates the subscription service.
func NewSubscriptionService(repo portsrepo.SubscriptionRepository) portssvc.SubscriptionService {
	return &subscriptionService{repo: repo, now: time.Now}
}

// NextChargeDate returns the charge date one frequency interval after from.
// Monthly and yearly steps clamp to the end of shorter target months.
func NextChargeDate(from time.Time, freq domain.Frequency) time.Time {
	switch freq {
	case domain.Weekly:
		return dateutil.AddWeeks(from, 1)
	case domain.Yearly:
		return dateutil.AddYears(from, 1)
	default:
		return dateutil.AddMonths(from, 1)
	}
}

func (s *subscriptionService) CreateSubscription(ctx context.Context, userID string, req dto.CreateSubscriptionRequest) (*dto.SubscriptionResponse, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: subscription name is required", apperrors.ErrValidation)
	}
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: subscription amount must be positive", apperrors.ErrValidation)
	}
	if !domain.ValidFrequency(req.Frequency) {
		return nil, fmt.Errorf("%w: unknown frequency %q", apperrors.ErrValidation, req.Frequency)
	}

	now := s.now()
	startDate := now
	if req.StartDate != nil {
		startDate = *req.StartDate
	}
	nextPayment := NextChargeDate(startDate, req.Frequency)

	sub := domain.Subscription{
		SubscriptionID:  uuid.NewString(),
		UserID:          userID,
		Name:            strings.TrimSpace(req.Name),
		Amount:          req.Amount,
		Frequency:       req.Frequency,
		StartDate:       startDate,
		NextPaymentDate: nextPayment,
		IsActive:        true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}
	reminder := s.reminderFor(sub.SubscriptionID, nextPayment, now)

	if err := s.repo.SaveSubscription(ctx, sub, reminder); err != nil {
		s.LogError(ctx, err, "failed to save subscription", "subscription_id", sub.SubscriptionID)
		return nil, err
	}

	s.LogInfo(ctx, "subscription created",
		"subscription_id", sub.SubscriptionID,
		"frequency", string(sub.Frequency),
		"next_payment_date", nextPayment.Format(time.DateOnly),
	)
	resp := dto.ToSubscriptionResponse(&sub)
	return &resp, nil
}

func (s *subscriptionService) GetSubscriptionByID(ctx context.Context, userID, subscriptionID string) (*dto.SubscriptionResponse, error) {
	sub, err := s.findOwnedSubscription(ctx, userID, subscriptionID)
	if err != nil {
		return nil, err
	}
	resp := dto.ToSubscriptionResponse(sub)
	return &resp, nil
}

func (s *subscriptionService) ListSubscriptions(ctx context.Context, userID string) ([]dto.SubscriptionResponse, error) {
	subs, err := s.repo.ListSubscriptions(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "failed to list subscriptions")
		return nil, err
	}
	return dto.ToListSubscriptionResponse(subs), nil
}

func (s *subscriptionService) UpdateSubscription(ctx context.Context, userID, subscriptionID string, req dto.UpdateSubscriptionRequest) (*dto.SubscriptionResponse, error) {
	sub, err := s.findOwnedSubscription(ctx, userID, subscriptionID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, fmt.Errorf("%w: subscription name cannot be empty", apperrors.ErrValidation)
		}
		sub.Name = strings.TrimSpace(*req.Name)
	}
	if req.Amount != nil {
		if req.Amount.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("%w: subscription amount must be positive", apperrors.ErrValidation)
		}
		sub.Amount = *req.Amount
	}
	if req.Frequency != nil {
		if !domain.ValidFrequency(*req.Frequency) {
			return nil, fmt.Errorf("%w: unknown frequency %q", apperrors.ErrValidation, *req.Frequency)
		}
		// The scheduled next charge keeps its slot; the new frequency
		// applies from the next cycle advance.
		sub.Frequency = *req.Frequency
	}
	if req.IsActive != nil {
		sub.IsActive = *req.IsActive
	}
	sub.LastUpdatedAt = s.now()

	if err := s.repo.UpdateSubscription(ctx, *sub); err != nil {
		s.LogError(ctx, err, "failed to update subscription", "subscription_id", subscriptionID)
		return nil, err
	}

	resp := dto.ToSubscriptionResponse(sub)
	return &resp, nil
}

func (s *subscriptionService) DeleteSubscription(ctx context.Context, userID, subscriptionID string) error {
	if _, err := s.findOwnedSubscription(ctx, userID, subscriptionID); err != nil {
		return err
	}

	if err := s.repo.DeleteSubscription(ctx, subscriptionID); err != nil {
		s.LogError(ctx, err, "failed to delete subscription", "subscription_id", subscriptionID)
		return err
	}

	s.LogInfo(ctx, "subscription deleted", "subscription_id", subscriptionID)
	return nil
}

func (s *subscriptionService) AdvanceCycle(ctx context.Context, userID, subscriptionID string) (*dto.SubscriptionResponse, error) {
	sub, err := s.findOwnedSubscription(ctx, userID, subscriptionID)
	if err != nil {
		return nil, err
	}
	if !sub.IsActive {
		return nil, fmt.Errorf("%w: subscription is inactive", apperrors.ErrValidation)
	}

	now := s.now()
	sub.NextPaymentDate = NextChargeDate(sub.NextPaymentDate, sub.Frequency)
	sub.LastUpdatedAt = now
	reminder := s.reminderFor(sub.SubscriptionID, sub.NextPaymentDate, now)

	if err := s.repo.AdvanceNextPayment(ctx, *sub, reminder); err != nil {
		s.LogError(ctx, err, "failed to advance subscription cycle", "subscription_id", subscriptionID)
		return nil, err
	}

	s.LogInfo(ctx, "subscription cycle advanced",
		"subscription_id", subscriptionID,
		"next_payment_date", sub.NextPaymentDate.Format(time.DateOnly),
	)
	resp := dto.ToSubscriptionResponse(sub)
	return &resp, nil
}

func (s *subscriptionService) ListReminders(ctx context.Context, userID, subscriptionID string) ([]dto.ReminderResponse, error) {
	if _, err := s.findOwnedSubscription(ctx, userID, subscriptionID); err != nil {
		return nil, err
	}

	reminders, err := s.repo.ListUnsentReminders(ctx, subscriptionID)
	if err != nil {
		s.LogError(ctx, err, "failed to list reminders", "subscription_id", subscriptionID)
		return nil, err
	}
	return dto.ToReminderResponses(reminders), nil
}

func (s *subscriptionService) reminderFor(subscriptionID string, paymentDate time.Time, now time.Time) domain.SubscriptionReminder {
	return domain.SubscriptionReminder{
		ReminderID:     uuid.NewString(),
		SubscriptionID: subscriptionID,
		ReminderDate:   paymentDate.AddDate(0, 0, -reminderLeadDays),
		Sent:           false,
		CreatedAt:      now,
	}
}

func (s *subscriptionService) findOwnedSubscription(ctx context.Context, userID, subscriptionID string) (*domain.Subscription, error) {
	sub, err := s.repo.FindSubscriptionByID(ctx, subscriptionID)
	if err != nil {
		return nil, err
	}
	if sub.UserID != userID {
		return nil, fmt.Errorf("%w: subscription %s", apperrors.ErrNotFound, subscriptionID)
	}
	return sub, nil
}
