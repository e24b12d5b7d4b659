package notify

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
)

// Repo stores in-app notifications under users/{uid}/notifications.
type Repo struct {
	fs *firestore.Client
}

func NewRepo(fs *firestore.Client) *Repo {
	return &Repo{fs: fs}
}

func (r *Repo) col(uid string) *firestore.CollectionRef {
	return r.fs.Collection("users").Doc(uid).Collection("notifications")
}

func (r *Repo) Create(ctx context.Context, uid string, n Notification) (*Notification, error) {
	ref := r.col(uid).NewDoc()
	n.ID = ref.ID

	if _, err := ref.Set(ctx, n); err != nil {
		return nil, fmt.Errorf("failed to create notification: %w", err)
	}
	return &n, nil
}

func (r *Repo) List(ctx context.Context, uid string, unreadOnly bool, limit int) (*ListResult, error) {
	query := r.col(uid).Query
	if unreadOnly {
		query = query.Where("read", "==", false)
	}
	query = query.OrderBy("createdAt", firestore.Desc)

	if limit <= 0 || limit > 100 {
		limit = 50
	}
	query = query.Limit(limit)

	iter := query.Documents(ctx)
	defer iter.Stop()

	var notifications []Notification
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list notifications: %w", err)
		}
		var n Notification
		if err := doc.DataTo(&n); err != nil {
			continue
		}
		n.ID = doc.Ref.ID
		notifications = append(notifications, n)
	}

	unreadIter := r.col(uid).Query.Where("read", "==", false).Documents(ctx)
	defer unreadIter.Stop()
	unreadCount := int64(0)
	for {
		_, err := unreadIter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			break
		}
		unreadCount++
	}

	return &ListResult{Notifications: notifications, UnreadCount: unreadCount}, nil
}

// MarkRead marks one notification, or every unread one, as read. Returns the
// number of records touched.
func (r *Repo) MarkRead(ctx context.Context, uid string, in MarkReadInput) (int, error) {
	now := time.Now().UTC()

	if in.MarkAll {
		iter := r.col(uid).Query.Where("read", "==", false).Documents(ctx)
		defer iter.Stop()

		batch := r.fs.Batch()
		count := 0
		for {
			doc, err := iter.Next()
			if err == iterator.Done {
				break
			}
			if err != nil {
				return 0, fmt.Errorf("failed to list notifications: %w", err)
			}

			batch.Set(doc.Ref, map[string]interface{}{
				"read":   true,
				"readAt": now,
			}, firestore.MergeAll)
			count++

			// Firestore batches cap at 500 writes, commit early.
			if count%450 == 0 {
				if _, err := batch.Commit(ctx); err != nil {
					return 0, fmt.Errorf("failed to mark notifications read: %w", err)
				}
				batch = r.fs.Batch()
			}
		}
		if count > 0 && count%450 != 0 {
			if _, err := batch.Commit(ctx); err != nil {
				return 0, fmt.Errorf("failed to mark notifications read: %w", err)
			}
		}
		return count, nil
	}

	ref := r.col(uid).Doc(in.NotificationID)
	if _, err := ref.Get(ctx); err != nil {
		return 0, fmt.Errorf("%w: notification not found", ErrNotFound)
	}
	if _, err := ref.Set(ctx, map[string]interface{}{
		"read":   true,
		"readAt": now,
	}, firestore.MergeAll); err != nil {
		return 0, fmt.Errorf("failed to mark notification read: %w", err)
	}
	return 1, nil
}

func (r *Repo) Delete(ctx context.Context, uid, notificationID string) error {
	ref := r.col(uid).Doc(notificationID)
	if _, err := ref.Get(ctx); err != nil {
		return fmt.Errorf("%w: notification not found", ErrNotFound)
	}
	if _, err := ref.Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete notification: %w", err)
	}
	return nil
}
