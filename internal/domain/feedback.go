package domain

import "time"

type FeedbackSender string

const (
	FeedbackSenderPlatform   FeedbackSender = "platform"
	FeedbackSenderDealership FeedbackSender = "dealership"
)

type FeedbackType string

const (
	FeedbackTypeFeedback FeedbackType = "feedback"
	FeedbackTypeReminder FeedbackType = "reminder"
	FeedbackTypeReply    FeedbackType = "reply"
)

type FeedbackStatus string

const (
	FeedbackStatusUnread FeedbackStatus = "unread"
	FeedbackStatusRead   FeedbackStatus = "read"
)

// Feedback is a threaded message between a dealership and the platform.
// Replies reference their parent via ParentID and always carry the parent's
// dealership scope. Threading is one level deep: replies never have replies.
type Feedback struct {
	ID           int32          `json:"id"`
	DealershipID int32          `json:"dealership_id"`
	ParentID     *int32         `json:"parent_id"`
	SenderType   FeedbackSender `json:"sender_type"`
	SenderID     int32          `json:"sender_id"`
	MessageType  FeedbackType   `json:"message_type"`
	Title        string         `json:"title"`
	Content      string         `json:"content"`
	Status       FeedbackStatus `json:"status"`
	ReadAt       *time.Time     `json:"read_at"`
	CreatedAt    time.Time      `json:"created_at"`
	Replies      []Feedback     `json:"replies,omitempty"` // populated on fetch
}
