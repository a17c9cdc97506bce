package service

import (
	"context"
	"errors"

	"github.com/SumitGhughtyal/Suraksha-Setu/internal/model"
)

var (
	ErrUserIDRequired  = errors.New("userId is required")
	ErrMessageRequired = errors.New("message is required")
)

// NotificationStore is the persistence surface for notifications.
type NotificationStore interface {
	Create(ctx context.Context, n *model.Notification) error
	ListByUser(ctx context.Context, userID int64) ([]model.Notification, error)
	MarkRead(ctx context.Context, id int64) (*model.Notification, error)
}

// NotificationService maintains a durable per-user inbox.
type NotificationService struct {
	store NotificationStore
}

// NewNotificationService creates a new NotificationService.
func NewNotificationService(store NotificationStore) *NotificationService {
	return &NotificationService{store: store}
}

// Create stores a notification and returns it with server-assigned fields.
func (s *NotificationService) Create(ctx context.Context, req model.CreateNotificationRequest) (*model.Notification, error) {
	if req.UserID == nil {
		return nil, ErrUserIDRequired
	}
	if req.Message == "" {
		return nil, ErrMessageRequired
	}

	n := &model.Notification{
		UserID:  *req.UserID,
		Message: req.Message,
	}
	if err := s.store.Create(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

// ListForUser returns a user's notifications newest first. A user with
// no notifications gets an empty list, not an error.
func (s *NotificationService) ListForUser(ctx context.Context, userID int64) ([]model.Notification, error) {
	return s.store.ListByUser(ctx, userID)
}

// MarkRead flags a notification as read.
func (s *NotificationService) MarkRead(ctx context.Context, id int64) (*model.Notification, error) {
	return s.store.MarkRead(ctx, id)
}
