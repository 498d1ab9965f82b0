package service_test

import (
	"context"
	"testing"

	"dealerdesk-backend/internal/domain"
	"dealerdesk-backend/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func platformProfile(id int32) *domain.Profile {
	return &domain.Profile{
		ID:    id,
		Name:  "Operator",
		Email: "operator@example.com",
		Role:  domain.ProfileRoleSuperAdmin,
	}
}

func newFeedbackService() (service.FeedbackService, *MockFeedbackRepo, *MockProfileRepo, *MockEmailService) {
	feedbackRepo := new(MockFeedbackRepo)
	profileRepo := new(MockProfileRepo)
	emailSvc := new(MockEmailService)
	svc := service.NewFeedbackService(feedbackRepo, profileRepo, emailSvc)
	return svc, feedbackRepo, profileRepo, emailSvc
}

func TestFeedbackService_CreateFeedback(t *testing.T) {
	ctx := context.Background()

	t.Run("Dealership Sends Feedback", func(t *testing.T) {
		svc, feedbackRepo, profileRepo, emailSvc := newFeedbackService()

		profileRepo.On("GetByID", ctx, int32(10)).Return(adminProfile(10, 1), nil)
		feedbackRepo.On("Create", ctx, mock.MatchedBy(func(f *domain.Feedback) bool {
			return f.DealershipID == 1 && f.SenderType == domain.FeedbackSenderDealership &&
				f.Status == domain.FeedbackStatusUnread
		})).Return(nil)

		feedback, err := svc.CreateFeedback(ctx, 10, 1, domain.FeedbackTypeFeedback, "Billing question", "How do I change tiers?")
		assert.NoError(t, err)
		assert.Equal(t, domain.FeedbackSenderDealership, feedback.SenderType)
		emailSvc.AssertNotCalled(t, "SendFeedbackReceivedNotification")
	})

	t.Run("Platform Reminder Notifies Admins", func(t *testing.T) {
		svc, feedbackRepo, profileRepo, emailSvc := newFeedbackService()

		profileRepo.On("GetByID", ctx, int32(1)).Return(platformProfile(1), nil)
		feedbackRepo.On("Create", ctx, mock.AnythingOfType("*domain.Feedback")).Return(nil)
		profileRepo.On("ListAdminsByDealership", ctx, int32(1)).Return([]domain.Profile{*adminProfile(10, 1)}, nil)
		emailSvc.On("SendFeedbackReceivedNotification", ctx, "admin@example.com", "Admin", "Renewal due").Return(nil)

		feedback, err := svc.CreateFeedback(ctx, 1, 1, domain.FeedbackTypeReminder, "Renewal due", "Your membership expires soon.")
		assert.NoError(t, err)
		assert.Equal(t, domain.FeedbackSenderPlatform, feedback.SenderType)
		emailSvc.AssertExpectations(t)
	})

	t.Run("Reminder From Dealership Rejected", func(t *testing.T) {
		svc, feedbackRepo, profileRepo, _ := newFeedbackService()

		profileRepo.On("GetByID", ctx, int32(10)).Return(adminProfile(10, 1), nil)

		_, err := svc.CreateFeedback(ctx, 10, 1, domain.FeedbackTypeReminder, "Reminder", "content")
		assert.Equal(t, service.ErrUnauthorized, err)
		feedbackRepo.AssertNotCalled(t, "Create")
	})

	t.Run("Reply Type Rejected", func(t *testing.T) {
		svc, feedbackRepo, profileRepo, _ := newFeedbackService()

		profileRepo.On("GetByID", ctx, int32(10)).Return(adminProfile(10, 1), nil)

		_, err := svc.CreateFeedback(ctx, 10, 1, domain.FeedbackTypeReply, "Re: x", "content")
		assert.Error(t, err)
		feedbackRepo.AssertNotCalled(t, "Create")
	})
}

func TestFeedbackService_ReplyToFeedback(t *testing.T) {
	ctx := context.Background()

	parent := func() *domain.Feedback {
		return &domain.Feedback{
			ID:           7,
			DealershipID: 1,
			SenderType:   domain.FeedbackSenderDealership,
			SenderID:     10,
			MessageType:  domain.FeedbackTypeFeedback,
			Title:        "Billing question",
			Status:       domain.FeedbackStatusUnread,
		}
	}

	t.Run("Platform Replies And Notifies Sender", func(t *testing.T) {
		svc, feedbackRepo, profileRepo, emailSvc := newFeedbackService()

		feedbackRepo.On("GetByID", ctx, int32(7)).Return(parent(), nil)
		profileRepo.On("GetByID", ctx, int32(1)).Return(platformProfile(1), nil)
		feedbackRepo.On("Create", ctx, mock.MatchedBy(func(f *domain.Feedback) bool {
			return f.ParentID != nil && *f.ParentID == 7 && f.DealershipID == 1 &&
				f.MessageType == domain.FeedbackTypeReply && f.Title == "Re: Billing question"
		})).Return(nil)
		profileRepo.On("GetByID", ctx, int32(10)).Return(adminProfile(10, 1), nil)
		emailSvc.On("SendFeedbackReceivedNotification", ctx, "admin@example.com", "Admin", "Re: Billing question").Return(nil)

		reply, err := svc.ReplyToFeedback(ctx, 1, 7, "You can change tiers from the membership page.")
		assert.NoError(t, err)
		assert.Equal(t, domain.FeedbackSenderPlatform, reply.SenderType)
		emailSvc.AssertExpectations(t)
	})

	t.Run("Reply To A Reply Rejected", func(t *testing.T) {
		svc, feedbackRepo, _, _ := newFeedbackService()

		parentID := int32(7)
		nested := &domain.Feedback{ID: 8, DealershipID: 1, ParentID: &parentID, MessageType: domain.FeedbackTypeReply}
		feedbackRepo.On("GetByID", ctx, int32(8)).Return(nested, nil)

		_, err := svc.ReplyToFeedback(ctx, 1, 8, "nested")
		assert.Equal(t, service.ErrReplyToReply, err)
		feedbackRepo.AssertNotCalled(t, "Create")
	})

	t.Run("Same Side Reply Sends No Email", func(t *testing.T) {
		svc, feedbackRepo, profileRepo, emailSvc := newFeedbackService()

		feedbackRepo.On("GetByID", ctx, int32(7)).Return(parent(), nil)
		profileRepo.On("GetByID", ctx, int32(20)).Return(employeeProfile(20, 1), nil)
		feedbackRepo.On("Create", ctx, mock.AnythingOfType("*domain.Feedback")).Return(nil)

		_, err := svc.ReplyToFeedback(ctx, 20, 7, "adding context")
		assert.NoError(t, err)
		emailSvc.AssertNotCalled(t, "SendFeedbackReceivedNotification")
	})
}

func TestFeedbackService_ListFeedbacks(t *testing.T) {
	ctx := context.Background()

	t.Run("Platform Lists All Tenants", func(t *testing.T) {
		svc, feedbackRepo, profileRepo, _ := newFeedbackService()

		profileRepo.On("GetByID", ctx, int32(1)).Return(platformProfile(1), nil)
		feedbackRepo.On("ListAll", ctx).Return([]domain.Feedback{{ID: 7, DealershipID: 1}}, nil)
		feedbackRepo.On("ListReplies", ctx, int32(7)).Return([]domain.Feedback{{ID: 8, DealershipID: 1}}, nil)

		feedbacks, err := svc.ListFeedbacks(ctx, 1, nil)
		assert.NoError(t, err)
		assert.Len(t, feedbacks, 1)
		assert.Len(t, feedbacks[0].Replies, 1)
	})

	t.Run("Dealership Cannot List All Tenants", func(t *testing.T) {
		svc, _, profileRepo, _ := newFeedbackService()

		profileRepo.On("GetByID", ctx, int32(10)).Return(adminProfile(10, 1), nil)

		_, err := svc.ListFeedbacks(ctx, 10, nil)
		assert.Equal(t, service.ErrUnauthorized, err)
	})

	t.Run("Dealership Lists Own Thread", func(t *testing.T) {
		svc, feedbackRepo, profileRepo, _ := newFeedbackService()

		dealershipID := int32(1)
		profileRepo.On("GetByID", ctx, int32(10)).Return(adminProfile(10, 1), nil)
		feedbackRepo.On("ListByDealership", ctx, int32(1)).Return([]domain.Feedback{{ID: 7, DealershipID: 1}}, nil)
		feedbackRepo.On("ListReplies", ctx, int32(7)).Return([]domain.Feedback{}, nil)

		feedbacks, err := svc.ListFeedbacks(ctx, 10, &dealershipID)
		assert.NoError(t, err)
		assert.Len(t, feedbacks, 1)
	})
}

func TestFeedbackService_MarkAsRead(t *testing.T) {
	ctx := context.Background()

	t.Run("Member Marks Read", func(t *testing.T) {
		svc, feedbackRepo, profileRepo, _ := newFeedbackService()

		feedbackRepo.On("GetByID", ctx, int32(7)).Return(&domain.Feedback{ID: 7, DealershipID: 1}, nil)
		profileRepo.On("GetByID", ctx, int32(20)).Return(employeeProfile(20, 1), nil)
		feedbackRepo.On("MarkAsRead", ctx, int32(7), mock.AnythingOfType("time.Time")).Return(nil)

		assert.NoError(t, svc.MarkAsRead(ctx, 20, 7))
	})

	t.Run("Outsider Rejected", func(t *testing.T) {
		svc, feedbackRepo, profileRepo, _ := newFeedbackService()

		feedbackRepo.On("GetByID", ctx, int32(7)).Return(&domain.Feedback{ID: 7, DealershipID: 1}, nil)
		profileRepo.On("GetByID", ctx, int32(30)).Return(employeeProfile(30, 2), nil)

		err := svc.MarkAsRead(ctx, 30, 7)
		assert.Equal(t, service.ErrUnauthorized, err)
		feedbackRepo.AssertNotCalled(t, "MarkAsRead")
	})
}
