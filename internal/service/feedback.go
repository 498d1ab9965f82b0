package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dealerdesk-backend/internal/domain"
	"dealerdesk-backend/internal/logger"
	"dealerdesk-backend/internal/repository"
)

var ErrReplyToReply = errors.New("cannot reply to a reply")

type feedbackService struct {
	feedbackRepo repository.FeedbackRepository
	profileRepo  repository.ProfileRepository
	emailSvc     EmailService
}

func NewFeedbackService(feedbackRepo repository.FeedbackRepository, profileRepo repository.ProfileRepository, emailSvc EmailService) FeedbackService {
	return &feedbackService{
		feedbackRepo: feedbackRepo,
		profileRepo:  profileRepo,
		emailSvc:     emailSvc,
	}
}

func senderTypeFor(profile *domain.Profile) domain.FeedbackSender {
	if profile.Role == domain.ProfileRoleSuperAdmin {
		return domain.FeedbackSenderPlatform
	}
	return domain.FeedbackSenderDealership
}

func (s *feedbackService) CreateFeedback(ctx context.Context, actorID, dealershipID int32, messageType domain.FeedbackType, title, content string) (*domain.Feedback, error) {
	logger.EnterMethod("feedbackService.CreateFeedback", "actorID", actorID, "dealershipID", dealershipID, "type", messageType)

	actor, err := s.profileRepo.GetByID(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if !actor.BelongsTo(dealershipID) {
		return nil, ErrUnauthorized
	}

	if title == "" || content == "" {
		return nil, validationf("title and content are required")
	}
	if messageType == domain.FeedbackTypeReply {
		return nil, validationf("replies must reference a parent message")
	}
	// Reminders originate from the platform side only.
	if messageType == domain.FeedbackTypeReminder && actor.Role != domain.ProfileRoleSuperAdmin {
		return nil, ErrUnauthorized
	}

	feedback := &domain.Feedback{
		DealershipID: dealershipID,
		SenderType:   senderTypeFor(actor),
		SenderID:     actor.ID,
		MessageType:  messageType,
		Title:        title,
		Content:      content,
		Status:       domain.FeedbackStatusUnread,
	}
	if err := s.feedbackRepo.Create(ctx, feedback); err != nil {
		logger.ExitMethodWithError("feedbackService.CreateFeedback", err, "dealershipID", dealershipID)
		return nil, err
	}

	// Dealership-originated feedback notifies dealership admins on the
	// platform's behalf when the platform later replies; platform-originated
	// messages notify the dealership admins now, best effort.
	if feedback.SenderType == domain.FeedbackSenderPlatform {
		admins, err := s.profileRepo.ListAdminsByDealership(ctx, dealershipID)
		if err == nil {
			for _, admin := range admins {
				_ = s.emailSvc.SendFeedbackReceivedNotification(ctx, admin.Email, admin.Name, feedback.Title)
			}
		}
	}

	logger.ExitMethod("feedbackService.CreateFeedback", "feedbackID", feedback.ID)
	return feedback, nil
}

// ReplyToFeedback creates a reply under a top-level message. Threading is one
// level deep; the reply inherits the parent's dealership scope.
func (s *feedbackService) ReplyToFeedback(ctx context.Context, actorID, parentID int32, content string) (*domain.Feedback, error) {
	logger.EnterMethod("feedbackService.ReplyToFeedback", "actorID", actorID, "parentID", parentID)

	parent, err := s.feedbackRepo.GetByID(ctx, parentID)
	if err != nil {
		logger.ExitMethodWithError("feedbackService.ReplyToFeedback", err, "parentID", parentID)
		return nil, err
	}
	if parent.ParentID != nil {
		return nil, ErrReplyToReply
	}

	actor, err := s.profileRepo.GetByID(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if !actor.BelongsTo(parent.DealershipID) {
		return nil, ErrUnauthorized
	}
	if content == "" {
		return nil, validationf("content is required")
	}

	reply := &domain.Feedback{
		DealershipID: parent.DealershipID,
		ParentID:     &parent.ID,
		SenderType:   senderTypeFor(actor),
		SenderID:     actor.ID,
		MessageType:  domain.FeedbackTypeReply,
		Title:        fmt.Sprintf("Re: %s", parent.Title),
		Content:      content,
		Status:       domain.FeedbackStatusUnread,
	}
	if err := s.feedbackRepo.Create(ctx, reply); err != nil {
		logger.ExitMethodWithError("feedbackService.ReplyToFeedback", err, "parentID", parentID)
		return nil, err
	}

	// Cross-side replies notify the original sender, best effort.
	if reply.SenderType != parent.SenderType {
		if sender, err := s.profileRepo.GetByID(ctx, parent.SenderID); err == nil {
			_ = s.emailSvc.SendFeedbackReceivedNotification(ctx, sender.Email, sender.Name, reply.Title)
		}
	}

	logger.ExitMethod("feedbackService.ReplyToFeedback", "replyID", reply.ID)
	return reply, nil
}

func (s *feedbackService) GetFeedback(ctx context.Context, actorID, feedbackID int32) (*domain.Feedback, error) {
	feedback, err := s.feedbackRepo.GetByID(ctx, feedbackID)
	if err != nil {
		return nil, err
	}

	actor, err := s.profileRepo.GetByID(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if !actor.BelongsTo(feedback.DealershipID) {
		return nil, ErrUnauthorized
	}

	if feedback.ParentID == nil {
		replies, err := s.feedbackRepo.ListReplies(ctx, feedback.ID)
		if err != nil {
			return nil, err
		}
		feedback.Replies = replies
	}
	return feedback, nil
}

// ListFeedbacks returns top-level messages with their replies nested. A nil
// dealershipID lists every tenant's messages and is platform-only.
func (s *feedbackService) ListFeedbacks(ctx context.Context, actorID int32, dealershipID *int32) ([]domain.Feedback, error) {
	logger.EnterMethod("feedbackService.ListFeedbacks", "actorID", actorID)

	actor, err := s.profileRepo.GetByID(ctx, actorID)
	if err != nil {
		return nil, err
	}

	var feedbacks []domain.Feedback
	if dealershipID == nil {
		if actor.Role != domain.ProfileRoleSuperAdmin {
			return nil, ErrUnauthorized
		}
		feedbacks, err = s.feedbackRepo.ListAll(ctx)
	} else {
		if !actor.BelongsTo(*dealershipID) {
			return nil, ErrUnauthorized
		}
		feedbacks, err = s.feedbackRepo.ListByDealership(ctx, *dealershipID)
	}
	if err != nil {
		logger.ExitMethodWithError("feedbackService.ListFeedbacks", err, "actorID", actorID)
		return nil, err
	}

	for i := range feedbacks {
		replies, err := s.feedbackRepo.ListReplies(ctx, feedbacks[i].ID)
		if err != nil {
			return nil, err
		}
		feedbacks[i].Replies = replies
	}

	logger.ExitMethod("feedbackService.ListFeedbacks", "count", len(feedbacks))
	return feedbacks, nil
}

// MarkAsRead is idempotent: re-reading an already-read message succeeds
// without touching the original read_at timestamp.
func (s *feedbackService) MarkAsRead(ctx context.Context, actorID, feedbackID int32) error {
	feedback, err := s.feedbackRepo.GetByID(ctx, feedbackID)
	if err != nil {
		return err
	}

	actor, err := s.profileRepo.GetByID(ctx, actorID)
	if err != nil {
		return err
	}
	if !actor.BelongsTo(feedback.DealershipID) {
		return ErrUnauthorized
	}

	return s.feedbackRepo.MarkAsRead(ctx, feedbackID, time.Now())
}
