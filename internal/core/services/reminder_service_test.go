package services_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/fintrackr/fintrackr_backend/internal/core/domain"
	portssvc "github.com/fintrackr/fintrackr_backend/internal/core/ports/services"
	"github.com/fintrackr/fintrackr_backend/internal/core/services"
)

// MockReminderRepository is a mock type for the ReminderRepository interface.
type MockReminderRepository struct {
	mock.Mock
}

func (m *MockReminderRepository) FindDueReminders(ctx context.Context, asOf time.Time) ([]domain.DueReminder, error) {
	args := m.Called(ctx, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DueReminder), args.Error(1)
}

func (m *MockReminderRepository) MarkReminderSent(ctx context.Context, reminderID string) error {
	args := m.Called(ctx, reminderID)
	return args.Error(0)
}

// MockNotificationSender is a mock type for the NotificationSender interface.
type MockNotificationSender struct {
	mock.Mock
}

func (m *MockNotificationSender) SendReminder(ctx context.Context, recipient string, due domain.DueReminder) error {
	args := m.Called(ctx, recipient, due)
	return args.Error(0)
}

type ReminderServiceTestSuite struct {
	suite.Suite
	mockRepo   *MockReminderRepository
	mockSender *MockNotificationSender
	service    portssvc.ReminderService
}

func (suite *ReminderServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockReminderRepository)
	suite.mockSender = new(MockNotificationSender)
	suite.service = services.NewReminderService(suite.mockRepo, suite.mockSender)
}

func dueReminder(active bool, email string) domain.DueReminder {
	return domain.DueReminder{
		Reminder: domain.SubscriptionReminder{
			ReminderID:     uuid.NewString(),
			SubscriptionID: uuid.NewString(),
			ReminderDate:   time.Now().Add(-24 * time.Hour),
		},
		SubscriptionName:   "Streaming",
		NextPaymentDate:    time.Now().Add(72 * time.Hour),
		SubscriptionActive: active,
		UserEmail:          email,
	}
}

func (suite *ReminderServiceTestSuite) TestSweep_SendsAndMarks() {
	ctx := context.Background()
	first := dueReminder(true, "a@example.com")
	second := dueReminder(true, "b@example.com")

	suite.mockRepo.On("FindDueReminders", ctx, mock.AnythingOfType("time.Time")).
		Return([]domain.DueReminder{first, second}, nil).Once()
	suite.mockSender.On("SendReminder", ctx, "a@example.com", first).Return(nil).Once()
	suite.mockSender.On("SendReminder", ctx, "b@example.com", second).Return(nil).Once()
	suite.mockRepo.On("MarkReminderSent", ctx, first.Reminder.ReminderID).Return(nil).Once()
	suite.mockRepo.On("MarkReminderSent", ctx, second.Reminder.ReminderID).Return(nil).Once()

	sent, err := suite.service.SweepDueReminders(ctx)

	suite.Require().NoError(err)
	suite.Equal(2, sent)
	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockSender.AssertExpectations(suite.T())
}

func (suite *ReminderServiceTestSuite) TestSweep_SkipsInactiveWithoutMarking() {
	ctx := context.Background()
	inactive := dueReminder(false, "a@example.com")

	suite.mockRepo.On("FindDueReminders", ctx, mock.AnythingOfType("time.Time")).
		Return([]domain.DueReminder{inactive}, nil).Once()

	sent, err := suite.service.SweepDueReminders(ctx)

	// Left unsent so a reactivated subscription still gets its reminder
	suite.Require().NoError(err)
	suite.Equal(0, sent)
	suite.mockSender.AssertNotCalled(suite.T(), "SendReminder")
	suite.mockRepo.AssertNotCalled(suite.T(), "MarkReminderSent")
}

func (suite *ReminderServiceTestSuite) TestSweep_ContinuesPastSendFailure() {
	ctx := context.Background()
	failing := dueReminder(true, "a@example.com")
	working := dueReminder(true, "b@example.com")

	suite.mockRepo.On("FindDueReminders", ctx, mock.AnythingOfType("time.Time")).
		Return([]domain.DueReminder{failing, working}, nil).Once()
	suite.mockSender.On("SendReminder", ctx, "a@example.com", failing).
		Return(fmt.Errorf("smtp connection reset")).Once()
	suite.mockSender.On("SendReminder", ctx, "b@example.com", working).Return(nil).Once()
	suite.mockRepo.On("MarkReminderSent", ctx, working.Reminder.ReminderID).Return(nil).Once()

	sent, err := suite.service.SweepDueReminders(ctx)

	// The failed reminder stays unsent and will be retried next run
	suite.Require().NoError(err)
	suite.Equal(1, sent)
	suite.mockRepo.AssertNotCalled(suite.T(), "MarkReminderSent", ctx, failing.Reminder.ReminderID)
	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockSender.AssertExpectations(suite.T())
}

func (suite *ReminderServiceTestSuite) TestSweep_RepoError() {
	ctx := context.Background()
	repoErr := fmt.Errorf("connection refused")

	suite.mockRepo.On("FindDueReminders", ctx, mock.AnythingOfType("time.Time")).
		Return(nil, repoErr).Once()

	sent, err := suite.service.SweepDueReminders(ctx)

	suite.Require().Error(err)
	suite.Equal(0, sent)
	suite.mockSender.AssertNotCalled(suite.T(), "SendReminder")
}

func TestReminderServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReminderServiceTestSuite))
}
