package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/SumitGhughtyal/Suraksha-Setu/internal/model"
)

var ErrNotificationNotFound = errors.New("notification not found")

const notificationsSchema = `
CREATE TABLE IF NOT EXISTS notifications (
	id SERIAL PRIMARY KEY,
	user_id INT NOT NULL,
	message TEXT NOT NULL,
	is_read BOOLEAN DEFAULT FALSE,
	created_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP
)`

// NotificationRepository handles notification persistence.
type NotificationRepository struct {
	db *sql.DB
}

// NewNotificationRepository creates a new NotificationRepository.
func NewNotificationRepository(db *sql.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

// EnsureSchema creates the notifications table if it does not exist.
func (r *NotificationRepository) EnsureSchema(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, notificationsSchema)
	return err
}

// Create inserts a notification and fills in the generated fields.
func (r *NotificationRepository) Create(ctx context.Context, n *model.Notification) error {
	query := `INSERT INTO notifications (user_id, message)
		VALUES ($1, $2) RETURNING id, is_read, created_at`

	return r.db.QueryRowContext(ctx, query, n.UserID, n.Message).
		Scan(&n.ID, &n.IsRead, &n.CreatedAt)
}

// ListByUser returns a user's notifications, newest first.
func (r *NotificationRepository) ListByUser(ctx context.Context, userID int64) ([]model.Notification, error) {
	query := `SELECT id, user_id, message, is_read, created_at
		FROM notifications WHERE user_id = $1 ORDER BY created_at DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notifications := []model.Notification{}
	for rows.Next() {
		var n model.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Message, &n.IsRead, &n.CreatedAt); err != nil {
			return nil, err
		}
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}

// MarkRead flags a notification as read and returns the updated row.
func (r *NotificationRepository) MarkRead(ctx context.Context, id int64) (*model.Notification, error) {
	query := `UPDATE notifications SET is_read = TRUE WHERE id = $1
		RETURNING id, user_id, message, is_read, created_at`

	n := &model.Notification{}
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&n.ID, &n.UserID, &n.Message, &n.IsRead, &n.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotificationNotFound
		}
		return nil, err
	}
	return n, nil
}
