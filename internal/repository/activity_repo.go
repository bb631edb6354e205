// filepath: internal/repository/activity_repo.go
package repository

import (
	"context"
	"database/sql"
	"flexnas/internal/models"
)

// InsertActivity appends one entry to the activity log.
// userID is nil for entries not attributable to an account.
func (s *Repository) InsertActivity(ctx context.Context, userID *int64, action, details string) (*models.ActivityEntry, error) {
	now := s.timestamp()
	var uid interface{}
	if userID != nil {
		uid = *userID
	}
	query, args, err := s.Builder.Insert("activity_log").
		Columns("timestamp", "user_id", "action", "details").
		Values(now, uid, action, details).
		ToSql()
	if err != nil {
		return nil, err
	}
	res, err := s.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, translateError(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return &models.ActivityEntry{
		ID:        id,
		Timestamp: unixToTime(now),
		UserID:    userID,
		Action:    action,
		Details:   details,
	}, nil
}

// GetRecentActivity returns up to limit entries, newest first.
func (s *Repository) GetRecentActivity(ctx context.Context, limit int) ([]models.ActivityEntry, error) {
	query, args, err := s.Builder.
		Select("a.id", "a.timestamp", "a.user_id", "COALESCE(u.username, '')", "a.action", "a.details").
		From("activity_log a").
		LeftJoin("users u ON u.id = a.user_id").
		OrderBy("a.timestamp DESC", "a.id DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]models.ActivityEntry, 0)
	for rows.Next() {
		var (
			e      models.ActivityEntry
			ts     int64
			userID sql.NullInt64
		)
		if err := rows.Scan(&e.ID, &ts, &userID, &e.Username, &e.Action, &e.Details); err != nil {
			return nil, err
		}
		e.Timestamp = unixToTime(ts)
		if userID.Valid {
			id := userID.Int64
			e.UserID = &id
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// CountActivity returns the number of activity entries.
func (s *Repository) CountActivity(ctx context.Context) (int, error) {
	var n int
	err := s.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM activity_log").Scan(&n)
	return n, err
}
