package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mergington/activities/backend/internal/storage"
	"github.com/mergington/activities/shared/domain"
)

func (s *Storage) Activities(ctx context.Context) ([]domain.Activity, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows, err := s.db.QueryContext(ctx, `
		SELECT a.name, a.description, a.schedule, a.max_participants, p.email
		FROM activities a
		LEFT JOIN participants p ON p.activity_id = a.id
		ORDER BY a.id, p.id`)
	if err != nil {
		return nil, fmt.Errorf("query activities: %w", err)
	}
	defer rows.Close()

	var activities []domain.Activity
	for rows.Next() {
		var a domain.Activity
		var email sql.NullString
		if err := rows.Scan(&a.Name, &a.Description, &a.Schedule, &a.MaxParticipants, &email); err != nil {
			return nil, fmt.Errorf("scan activity: %w", err)
		}
		// rows of one activity are adjacent
		if n := len(activities); n == 0 || activities[n-1].Name != a.Name {
			a.Participants = []domain.Email{}
			activities = append(activities, a)
		}
		if email.Valid {
			last := &activities[len(activities)-1]
			last.Participants = append(last.Participants, email.String)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate activities: %w", err)
	}
	return activities, nil
}

// AddParticipant locks the activity row so concurrent signups cannot both
// take the last spot.
func (s *Storage) AddParticipant(ctx context.Context, activity string, email domain.Email) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	return s.withTx(ctx, func(tx *sql.Tx) error {
		var id, maxParticipants int
		err := tx.QueryRowContext(ctx,
			"SELECT id, max_participants FROM activities WHERE name = $1 FOR UPDATE", activity,
		).Scan(&id, &maxParticipants)
		if errors.Is(err, sql.ErrNoRows) {
			return storage.ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("lock activity: %w", err)
		}

		var registered bool
		if err := tx.QueryRowContext(ctx,
			"SELECT EXISTS (SELECT 1 FROM participants WHERE activity_id = $1 AND email = $2)", id, email,
		).Scan(&registered); err != nil {
			return fmt.Errorf("check participant: %w", err)
		}
		if registered {
			return storage.ErrAlreadyRegistered
		}

		var count int
		if err := tx.QueryRowContext(ctx,
			"SELECT COUNT(*) FROM participants WHERE activity_id = $1", id,
		).Scan(&count); err != nil {
			return fmt.Errorf("count participants: %w", err)
		}
		if count >= maxParticipants {
			return storage.ErrFull
		}

		if _, err := tx.ExecContext(ctx,
			"INSERT INTO participants (activity_id, email) VALUES ($1, $2)", id, email,
		); err != nil {
			return fmt.Errorf("insert participant: %w", err)
		}
		return nil
	})
}

func (s *Storage) RemoveParticipant(ctx context.Context, activity string, email domain.Email) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	return s.withTx(ctx, func(tx *sql.Tx) error {
		var id int
		err := tx.QueryRowContext(ctx, "SELECT id FROM activities WHERE name = $1", activity).Scan(&id)
		if errors.Is(err, sql.ErrNoRows) {
			return storage.ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("find activity: %w", err)
		}

		res, err := tx.ExecContext(ctx, "DELETE FROM participants WHERE activity_id = $1 AND email = $2", id, email)
		if err != nil {
			return fmt.Errorf("delete participant: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("rows affected: %w", err)
		}
		if n == 0 {
			return storage.ErrNotRegistered
		}
		return nil
	})
}
