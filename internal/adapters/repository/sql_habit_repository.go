package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/comitanigiacomo/kanso-habits/internal/core/domain"
)

var _ domain.HabitRepository = (*SQLHabitRepository)(nil)

// SQLHabitRepository stores habits and their completion dates in any
// driver opened by Open. Queries use '?' and are rebound per driver.
type SQLHabitRepository struct {
	db *sqlx.DB
}

func NewSQLHabitRepository(db *sqlx.DB) *SQLHabitRepository {
	return &SQLHabitRepository{db: db}
}

type habitRow struct {
	ID          string    `db:"id"`
	UserID      string    `db:"user_id"`
	Name        string    `db:"name"`
	Description string    `db:"description"`
	Frequency   string    `db:"frequency"`
	Color       string    `db:"color"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

func (r habitRow) toDomain(dates []string) *domain.Habit {
	if dates == nil {
		dates = []string{}
	}
	return &domain.Habit{
		ID:             r.ID,
		UserID:         r.UserID,
		Name:           r.Name,
		Description:    r.Description,
		Frequency:      r.Frequency,
		Color:          r.Color,
		CompletedDates: dates,
		CreatedAt:      r.CreatedAt.UTC(),
		UpdatedAt:      r.UpdatedAt.UTC(),
	}
}

type completionRow struct {
	HabitID string `db:"habit_id"`
	Date    string `db:"completion_date"`
}

const habitColumns = `id, user_id, name, description, frequency, color, created_at, updated_at`

func (r *SQLHabitRepository) Create(ctx context.Context, h *domain.Habit) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := tx.Rebind(`
        INSERT INTO habits (` + habitColumns + `)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)

	_, err = tx.ExecContext(ctx, query,
		h.ID, h.UserID, h.Name, h.Description, h.Frequency, h.Color,
		h.CreatedAt, h.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert habit: %w", err)
	}

	insert := tx.Rebind(`INSERT INTO habit_completions (habit_id, completion_date, created_at) VALUES (?, ?, ?)`)
	for _, d := range domain.NormalizeDates(h.CompletedDates) {
		if _, err := tx.ExecContext(ctx, insert, h.ID, d, h.CreatedAt); err != nil {
			return fmt.Errorf("failed to insert completion %s: %w", d, err)
		}
	}

	return tx.Commit()
}

func (r *SQLHabitRepository) GetByID(ctx context.Context, id string) (*domain.Habit, error) {
	var row habitRow
	query := r.db.Rebind(`SELECT ` + habitColumns + ` FROM habits WHERE id = ?`)

	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrHabitNotFound
		}
		return nil, fmt.Errorf("database scan error: %w", err)
	}

	var dates []string
	datesQuery := r.db.Rebind(`
        SELECT completion_date FROM habit_completions
        WHERE habit_id = ? ORDER BY completion_date ASC`)
	if err := r.db.SelectContext(ctx, &dates, datesQuery, id); err != nil {
		return nil, fmt.Errorf("completion query error: %w", err)
	}

	return row.toDomain(dates), nil
}

// ListByUserID loads the habits and then every completion of those habits in
// a single IN query.
func (r *SQLHabitRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.Habit, error) {
	var rows []habitRow
	query := r.db.Rebind(`
        SELECT ` + habitColumns + ` FROM habits
        WHERE user_id = ?
        ORDER BY created_at ASC, id ASC`)

	if err := r.db.SelectContext(ctx, &rows, query, userID); err != nil {
		return nil, fmt.Errorf("query error: %w", err)
	}

	habits := make([]*domain.Habit, 0, len(rows))
	if len(rows) == 0 {
		return habits, nil
	}

	ids := make([]string, len(rows))
	for i, row := range rows {
		ids[i] = row.ID
	}

	inQuery, args, err := sqlx.In(`
        SELECT habit_id, completion_date FROM habit_completions
        WHERE habit_id IN (?)
        ORDER BY completion_date ASC`, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to build completion query: %w", err)
	}

	var completions []completionRow
	if err := r.db.SelectContext(ctx, &completions, r.db.Rebind(inQuery), args...); err != nil {
		return nil, fmt.Errorf("completion query error: %w", err)
	}

	byHabit := make(map[string][]string, len(rows))
	for _, c := range completions {
		byHabit[c.HabitID] = append(byHabit[c.HabitID], c.Date)
	}

	for _, row := range rows {
		habits = append(habits, row.toDomain(byHabit[row.ID]))
	}

	return habits, nil
}

func (r *SQLHabitRepository) Update(ctx context.Context, h *domain.Habit) error {
	query := r.db.Rebind(`
        UPDATE habits SET
            name = ?, description = ?, frequency = ?, color = ?, updated_at = ?
        WHERE id = ?`)

	res, err := r.db.ExecContext(ctx, query,
		h.Name, h.Description, h.Frequency, h.Color, h.UpdatedAt, h.ID,
	)
	if err != nil {
		return fmt.Errorf("update query failed: %w", err)
	}

	return expectAffected(res)
}

func (r *SQLHabitRepository) Delete(ctx context.Context, id string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, tx.Rebind(`DELETE FROM habit_completions WHERE habit_id = ?`), id); err != nil {
		return fmt.Errorf("delete completions failed: %w", err)
	}

	res, err := tx.ExecContext(ctx, tx.Rebind(`DELETE FROM habits WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("delete query failed: %w", err)
	}
	if err := expectAffected(res); err != nil {
		return err
	}

	return tx.Commit()
}

// SetCompletion is idempotent in both directions and bumps updated_at.
func (r *SQLHabitRepository) SetCompletion(ctx context.Context, habitID, date string, done bool) error {
	now := time.Now().UTC()

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, tx.Rebind(`UPDATE habits SET updated_at = ? WHERE id = ?`), now, habitID)
	if err != nil {
		return fmt.Errorf("touch habit failed: %w", err)
	}
	if err := expectAffected(res); err != nil {
		return err
	}

	if done {
		_, err = tx.ExecContext(ctx, tx.Rebind(`
            INSERT INTO habit_completions (habit_id, completion_date, created_at)
            VALUES (?, ?, ?)
            ON CONFLICT (habit_id, completion_date) DO NOTHING`), habitID, date, now)
	} else {
		_, err = tx.ExecContext(ctx, tx.Rebind(`
            DELETE FROM habit_completions
            WHERE habit_id = ? AND completion_date = ?`), habitID, date)
	}
	if err != nil {
		return fmt.Errorf("set completion failed: %w", err)
	}

	return tx.Commit()
}

func expectAffected(res sql.Result) error {
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrHabitNotFound
	}
	return nil
}
