package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"akiya-analysis-service/internal/core/domain"
	output "akiya-analysis-service/internal/core/ports/output"
)

type analysisRunRepo struct {
	pool *pgxpool.Pool
}

// NewAnalysisRunRepository creates a new AnalysisRunRepository
func NewAnalysisRunRepository(pool *pgxpool.Pool) output.AnalysisRunRepository {
	return &analysisRunRepo{pool: pool}
}

// EnsureSchema creates the analysis_run table and its indexes when they do
// not exist yet.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	stmts := []string{
		`
		CREATE TABLE IF NOT EXISTS analysis_run (
			id UUID PRIMARY KEY,
			created_at TIMESTAMPTZ NOT NULL,
			area_code TEXT NOT NULL,
			area_name TEXT NOT NULL,
			factors JSONB NOT NULL,
			epsilon DOUBLE PRECISION NOT NULL,
			results JSONB NOT NULL
		)
		`,
		`CREATE INDEX IF NOT EXISTS idx_analysis_run_created_at ON analysis_run (created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_analysis_run_area_code ON analysis_run (area_code)`,
	}

	for _, stmt := range stmts {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure analysis_run schema: %w", err)
		}
	}
	return nil
}

func (r *analysisRunRepo) Create(ctx context.Context, run *domain.AnalysisRun) error {
	factors, err := json.Marshal(run.Factors)
	if err != nil {
		return fmt.Errorf("encode analysis factors: %w", err)
	}
	results, err := json.Marshal(run.Results)
	if err != nil {
		return fmt.Errorf("encode analysis results: %w", err)
	}

	query := `
		INSERT INTO analysis_run
			(id, created_at, area_code, area_name, factors, epsilon, results)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err = r.pool.Exec(ctx, query,
		run.ID, run.CreatedAt, run.AreaCode, run.AreaName,
		factors, run.Epsilon, results,
	)
	if err != nil {
		return fmt.Errorf("create analysis run: %w", err)
	}
	return nil
}

func (r *analysisRunRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.AnalysisRun, error) {
	query := `
		SELECT id, created_at, area_code, area_name, factors, epsilon, results
		FROM analysis_run
		WHERE id = $1
	`

	run, err := r.scanRun(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRunNotFound
		}
		return nil, fmt.Errorf("get analysis run by id: %w", err)
	}
	return run, nil
}

func (r *analysisRunRepo) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM analysis_run WHERE id = $1`

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete analysis run: %w", err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrRunNotFound
	}
	return nil
}

func (r *analysisRunRepo) List(ctx context.Context, filter output.AnalysisListFilter) ([]*domain.AnalysisRun, int, error) {
	conditions := []string{}
	args := []interface{}{}
	argPos := 1

	if filter.AreaCode != "" {
		conditions = append(conditions, fmt.Sprintf("area_code = $%d", argPos))
		args = append(args, filter.AreaCode)
		argPos++
	}

	whereClause := "TRUE"
	if len(conditions) > 0 {
		whereClause = strings.Join(conditions, " AND ")
	}

	// Count
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM analysis_run WHERE %s", whereClause)
	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count analysis runs: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT id, created_at, area_code, area_name, factors, epsilon, results
		FROM analysis_run
		WHERE %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, whereClause, argPos, argPos+1)

	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list analysis runs: %w", err)
	}
	defer rows.Close()

	var runs []*domain.AnalysisRun
	for rows.Next() {
		run, err := r.scanRunFromRows(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan analysis run row: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate analysis run rows: %w", err)
	}

	return runs, total, nil
}

func (r *analysisRunRepo) scanRun(row pgx.Row) (*domain.AnalysisRun, error) {
	run := &domain.AnalysisRun{}
	var factors, results []byte
	err := row.Scan(
		&run.ID, &run.CreatedAt, &run.AreaCode, &run.AreaName,
		&factors, &run.Epsilon, &results,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(factors, &run.Factors); err != nil {
		return nil, fmt.Errorf("decode analysis factors: %w", err)
	}
	if err := json.Unmarshal(results, &run.Results); err != nil {
		return nil, fmt.Errorf("decode analysis results: %w", err)
	}
	return run, nil
}

func (r *analysisRunRepo) scanRunFromRows(rows pgx.Rows) (*domain.AnalysisRun, error) {
	run := &domain.AnalysisRun{}
	var factors, results []byte
	err := rows.Scan(
		&run.ID, &run.CreatedAt, &run.AreaCode, &run.AreaName,
		&factors, &run.Epsilon, &results,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(factors, &run.Factors); err != nil {
		return nil, fmt.Errorf("decode analysis factors: %w", err)
	}
	if err := json.Unmarshal(results, &run.Results); err != nil {
		return nil, fmt.Errorf("decode analysis results: %w", err)
	}
	return run, nil
}
