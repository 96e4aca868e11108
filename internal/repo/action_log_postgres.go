package repo

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rogerio-castellano/cart-tracker/internal/models"
)

type PostgresActionLogRepository struct {
	db *sql.DB
}

func NewPostgresActionLogRepository(db *sql.DB) *PostgresActionLogRepository {
	return &PostgresActionLogRepository{db: db}
}

// Log inserts a new history entry
func (r *PostgresActionLogRepository) Log(entry models.ActionLog) error {
	query := `INSERT INTO action_logs (session_id, kind, product_id, quantity, total, created_at) VALUES ($1, $2, $3, $4, $5, $6)`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	createdAt := time.Now().UTC()
	if entry.CreatedAt != "" {
		if ts, err := time.Parse(time.RFC3339, entry.CreatedAt); err == nil {
			createdAt = ts
		}
	}

	_, err := r.db.ExecContext(ctx, query, entry.SessionID, entry.Kind, entry.ProductID, entry.Quantity, entry.Total, createdAt)
	if err != nil {
		return fmt.Errorf("failed to insert action log: %w", err)
	}
	return nil
}

// GetBySession returns the history of a session in dispatch order
func (r *PostgresActionLogRepository) GetBySession(sessionID string, f ActionFilter) ([]models.ActionLog, int, error) {
	whereClause, args := r.buildWhereClause(sessionID, f)

	if f.Offset != nil && *f.Offset < 0 {
		return nil, 0, fmt.Errorf("offset must be non-negative")
	}

	total, err := r.getTotal(whereClause, args)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get total count: %w", err)
	}

	if f.Offset != nil && *f.Offset >= total {
		return []models.ActionLog{}, total, nil
	}

	query, queryArgs := r.buildMainQuery(whereClause, args, f)
	entries, err := r.executeQuery(query, queryArgs)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to execute query: %w", err)
	}

	return entries, total, nil
}

func (r *PostgresActionLogRepository) buildWhereClause(sessionID string, f ActionFilter) (string, []any) {
	args := []any{sessionID}
	whereClause := "WHERE session_id = $1"
	argIndex := 2

	if f.Since != nil {
		whereClause += fmt.Sprintf(" AND created_at >= $%d", argIndex)
		args = append(args, *f.Since)
		argIndex++
	}

	if f.Until != nil {
		whereClause += fmt.Sprintf(" AND created_at <= $%d", argIndex)
		args = append(args, *f.Until)
	}

	return whereClause, args
}

func (r *PostgresActionLogRepository) buildMainQuery(whereClause string, baseArgs []any, f ActionFilter) (string, []any) {
	query := fmt.Sprintf("SELECT id, session_id, kind, product_id, quantity, total, created_at FROM action_logs %s ORDER BY id", whereClause)
	args := make([]any, len(baseArgs))
	copy(args, baseArgs)
	argIndex := len(baseArgs) + 1

	query += fmt.Sprintf(" LIMIT $%d", argIndex)
	args = append(args, pageSize(f))
	argIndex++

	if f.Offset != nil && *f.Offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", argIndex)
		args = append(args, *f.Offset)
	}

	return query, args
}

func (r *PostgresActionLogRepository) getTotal(whereClause string, args []any) (int, error) {
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM action_logs %s", whereClause)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var total int
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

func (r *PostgresActionLogRepository) executeQuery(query string, args []any) ([]models.ActionLog, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []models.ActionLog{}
	for rows.Next() {
		var (
			e         models.ActionLog
			createdAt time.Time
		)
		if err := rows.Scan(&e.ID, &e.SessionID, &e.Kind, &e.ProductID, &e.Quantity, &e.Total, &createdAt); err != nil {
			return nil, err
		}
		e.CreatedAt = createdAt.UTC().Format(time.RFC3339)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}
