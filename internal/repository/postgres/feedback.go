package postgres

import (
	"context"
	"database/sql"
	"time"

	"dealerdesk-backend/internal/domain"
	"dealerdesk-backend/internal/logger"
	"dealerdesk-backend/internal/repository"
)

type feedbackRepository struct {
	db *sql.DB
}

func NewFeedbackRepository(db *sql.DB) repository.FeedbackRepository {
	return &feedbackRepository{db: db}
}

const feedbackColumns = `id, dealership_id, parent_id, sender_type, sender_id,
	       message_type, title, content, status, read_at, created_at`

func scanFeedback(row interface{ Scan(...interface{}) error }) (*domain.Feedback, error) {
	f := &domain.Feedback{}
	err := row.Scan(
		&f.ID, &f.DealershipID, &f.ParentID, &f.SenderType, &f.SenderID,
		&f.MessageType, &f.Title, &f.Content, &f.Status, &f.ReadAt, &f.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return f, nil
}

func (r *feedbackRepository) Create(ctx context.Context, feedback *domain.Feedback) error {
	logger.EnterMethod("feedbackRepository.Create", "dealershipID", feedback.DealershipID, "type", feedback.MessageType)

	query := `
		INSERT INTO feedbacks (
			dealership_id, parent_id, sender_type, sender_id,
			message_type, title, content, status, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at
	`
	err := r.db.QueryRowContext(ctx, query,
		feedback.DealershipID, feedback.ParentID, feedback.SenderType, feedback.SenderID,
		feedback.MessageType, feedback.Title, feedback.Content, feedback.Status, time.Now(),
	).Scan(&feedback.ID, &feedback.CreatedAt)
	if err != nil {
		logger.ExitMethodWithError("feedbackRepository.Create", err, "dealershipID", feedback.DealershipID)
		return err
	}

	logger.ExitMethod("feedbackRepository.Create", "feedbackID", feedback.ID)
	return nil
}

func (r *feedbackRepository) GetByID(ctx context.Context, id int32) (*domain.Feedback, error) {
	query := `
		SELECT ` + feedbackColumns + `
		FROM feedbacks
		WHERE id = $1
	`
	return scanFeedback(r.db.QueryRowContext(ctx, query, id))
}

func (r *feedbackRepository) listFeedbacks(ctx context.Context, query string, args ...interface{}) ([]domain.Feedback, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	feedbacks := []domain.Feedback{}
	for rows.Next() {
		f, err := scanFeedback(rows)
		if err != nil {
			return nil, err
		}
		feedbacks = append(feedbacks, *f)
	}
	return feedbacks, nil
}

// ListByDealership returns top-level messages only; replies are fetched
// separately and nested by the service layer.
func (r *feedbackRepository) ListByDealership(ctx context.Context, dealershipID int32) ([]domain.Feedback, error) {
	query := `
		SELECT ` + feedbackColumns + `
		FROM feedbacks
		WHERE dealership_id = $1 AND parent_id IS NULL
		ORDER BY created_at DESC
	`
	return r.listFeedbacks(ctx, query, dealershipID)
}

func (r *feedbackRepository) ListAll(ctx context.Context) ([]domain.Feedback, error) {
	query := `
		SELECT ` + feedbackColumns + `
		FROM feedbacks
		WHERE parent_id IS NULL
		ORDER BY created_at DESC
	`
	return r.listFeedbacks(ctx, query)
}

func (r *feedbackRepository) ListReplies(ctx context.Context, parentID int32) ([]domain.Feedback, error) {
	query := `
		SELECT ` + feedbackColumns + `
		FROM feedbacks
		WHERE parent_id = $1
		ORDER BY created_at ASC
	`
	return r.listFeedbacks(ctx, query, parentID)
}

// MarkAsRead flips an unread message to read. Already-read messages are left
// untouched so the first read_at timestamp is preserved.
func (r *feedbackRepository) MarkAsRead(ctx context.Context, id int32, readAt time.Time) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE feedbacks
		SET status = 'read', read_at = $1
		WHERE id = $2 AND status = 'unread'
	`, readAt, id)
	return err
}
