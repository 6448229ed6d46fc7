package postgres

import (
	"context"
	"database/sql"

	"lab-equipment-maintenance/internal/domain/notifications"
)

type NotificationsRepo struct {
	db *sql.DB
}

func NewNotificationsRepo(db *sql.DB) *NotificationsRepo {
	return &NotificationsRepo{db: db}
}

func (r *NotificationsRepo) Create(ctx context.Context, n notifications.Notification) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO notifications (id, kind, message, details, link, ts, is_read)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
	`,
		n.ID,
		string(n.Kind),
		n.Message,
		n.Details,
		n.Link,
		n.Timestamp,
		n.IsRead,
	)
	return err
}

func (r *NotificationsRepo) Update(ctx context.Context, n notifications.Notification) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE notifications
		SET kind = $2, message = $3, details = $4, link = $5, is_read = $6
		WHERE id = $1
	`,
		n.ID,
		string(n.Kind),
		n.Message,
		n.Details,
		n.Link,
		n.IsRead,
	)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *NotificationsRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM notifications WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *NotificationsRepo) GetByID(ctx context.Context, id string) (notifications.Notification, error) {
	var n notifications.Notification
	err := r.db.QueryRowContext(ctx, `
		SELECT id, kind, message, details, link, ts, is_read
		FROM notifications
		WHERE id = $1
	`, id).Scan(&n.ID, &n.Kind, &n.Message, &n.Details, &n.Link, &n.Timestamp, &n.IsRead)
	if err != nil {
		if err == sql.ErrNoRows {
			return notifications.Notification{}, ErrNotFound
		}
		return notifications.Notification{}, err
	}
	return n, nil
}

func (r *NotificationsRepo) List(ctx context.Context) ([]notifications.Notification, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, kind, message, details, link, ts, is_read
		FROM notifications
		ORDER BY ts DESC, id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]notifications.Notification, 0)
	for rows.Next() {
		var n notifications.Notification
		if err := rows.Scan(&n.ID, &n.Kind, &n.Message, &n.Details, &n.Link, &n.Timestamp, &n.IsRead); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}
