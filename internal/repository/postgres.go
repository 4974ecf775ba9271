package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/telhawk-systems/hivebridge/internal/models"
)

// PostgresRepository implements Repository using PostgreSQL
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL repository
func NewPostgresRepository(ctx context.Context, connString string) (*PostgresRepository, error) {
	config, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	config.MaxConns = 10
	config.MinConns = 2
	config.MaxConnLifetime = 5 * time.Minute
	config.MaxConnIdleTime = 1 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresRepository{pool: pool}, nil
}

// RecordDelivery journals one delivery attempt
func (r *PostgresRepository) RecordDelivery(ctx context.Context, rec *models.DeliveryRecord) error {
	query := `
		INSERT INTO deliveries (id, rule_name, source_ref, status, error, artifact_count, tag_count, delivered_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.pool.Exec(ctx, query,
		rec.ID, rec.RuleName, rec.SourceRef, rec.Status,
		rec.Error, rec.ArtifactCount, rec.TagCount, rec.DeliveredAt,
	)
	if err != nil {
		return fmt.Errorf("failed to record delivery: %w", err)
	}

	return nil
}

// ListDeliveries retrieves a paginated list of delivery records
func (r *PostgresRepository) ListDeliveries(ctx context.Context, req *models.ListDeliveriesRequest) ([]*models.DeliveryRecord, int, error) {
	// Build WHERE clause
	whereClause := "WHERE 1=1"
	args := []interface{}{}
	argPos := 1

	if req.RuleName != "" {
		whereClause += fmt.Sprintf(" AND rule_name = $%d", argPos)
		args = append(args, req.RuleName)
		argPos++
	}
	if req.Status != "" {
		whereClause += fmt.Sprintf(" AND status = $%d", argPos)
		args = append(args, req.Status)
		argPos++
	}

	// Count total
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM deliveries %s", whereClause)
	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count deliveries: %w", err)
	}

	offset := (req.Page - 1) * req.Limit
	args = append(args, req.Limit, offset)

	query := fmt.Sprintf(`
		SELECT id, rule_name, source_ref, status, error, artifact_count, tag_count, delivered_at
		FROM deliveries
		%s
		ORDER BY delivered_at DESC
		LIMIT $%d OFFSET $%d
	`, whereClause, argPos, argPos+1)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list deliveries: %w", err)
	}
	defer rows.Close()

	deliveries := []*models.DeliveryRecord{}
	for rows.Next() {
		rec := &models.DeliveryRecord{}
		if err := rows.Scan(
			&rec.ID, &rec.RuleName, &rec.SourceRef, &rec.Status,
			&rec.Error, &rec.ArtifactCount, &rec.TagCount, &rec.DeliveredAt,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan delivery: %w", err)
		}
		deliveries = append(deliveries, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("row iteration error: %w", err)
	}

	return deliveries, total, nil
}

// Close closes the database connection pool
func (r *PostgresRepository) Close() error {
	r.pool.Close()
	return nil
}
