package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/internhub/internal/app/models"
	"github.com/yigit/internhub/internal/pkg/logger"
)

// CareerRepository handles career database operations
type CareerRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewCareerRepository creates a new CareerRepository
func NewCareerRepository(db *pgxpool.Pool) *CareerRepository {
	return &CareerRepository{
		db: db,
		sb: statementBuilder(),
	}
}

// ListActiveCareers returns the careers open for registration, by name.
func (r *CareerRepository) ListActiveCareers(ctx context.Context) ([]*models.Career, error) {
	sql, args, err := r.sb.Select("id", "name", "active").
		From("careers").
		Where(squirrel.Eq{"active": true}).
		OrderBy("name", "id").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list active careers SQL")
		return nil, fmt.Errorf("failed to build list careers query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list active careers query")
		return nil, fmt.Errorf("error listing careers: %w", err)
	}
	defer rows.Close()

	var careers []*models.Career
	for rows.Next() {
		career := &models.Career{}
		if err := rows.Scan(&career.ID, &career.Name, &career.Active); err != nil {
			logger.Error().Err(err).Msg("Error scanning career row")
			return nil, fmt.Errorf("error scanning career: %w", err)
		}
		careers = append(careers, career)
	}
	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating career rows")
		return nil, fmt.Errorf("error iterating careers: %w", err)
	}
	return careers, nil
}

// EnsureCareer inserts the career unless one with the same name exists.
// It reports whether a row was inserted.
func (r *CareerRepository) EnsureCareer(ctx context.Context, name string, active bool) (bool, error) {
	sql, args, err := r.sb.Insert("careers").
		Columns("name", "active").
		Values(name, active).
		Suffix("ON CONFLICT (name) DO NOTHING").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build ensure career query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("career", name).Msg("Error inserting career")
		return false, fmt.Errorf("error inserting career %q: %w", name, err)
	}
	return cmdTag.RowsAffected() > 0, nil
}
