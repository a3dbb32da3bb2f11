package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/internhub/internal/app/models"
	"github.com/yigit/internhub/internal/pkg/apperrors"
	"github.com/yigit/internhub/internal/pkg/dberrors"
	"github.com/yigit/internhub/internal/pkg/helpers"
	"github.com/yigit/internhub/internal/pkg/logger"
)

var opportunityColumns = []string{
	"o.id", "o.organization_id", "o.title", "o.description", "o.requirements",
	"o.duration_weeks", "o.weekly_hours", "o.start_date", "o.end_date",
	"o.total_slots", "o.application_deadline", "o.created_at",
	"org.name", "org.sector",
}

// OpportunityRepository handles internship opportunity database operations
type OpportunityRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewOpportunityRepository creates a new OpportunityRepository
func NewOpportunityRepository(db *pgxpool.Pool) *OpportunityRepository {
	return &OpportunityRepository{
		db: db,
		sb: statementBuilder(),
	}
}

func scanOpportunity(row pgx.Row) (*models.Opportunity, error) {
	opp := &models.Opportunity{Organization: &models.Organization{}}
	err := row.Scan(
		&opp.ID, &opp.OrganizationID, &opp.Title, &opp.Description, &opp.Requirements,
		&opp.DurationWeeks, &opp.WeeklyHours, &opp.StartDate, &opp.EndDate,
		&opp.TotalSlots, &opp.ApplicationDeadline, &opp.CreatedAt,
		&opp.Organization.Name, &opp.Organization.Sector,
	)
	if err != nil {
		return nil, err
	}
	opp.Organization.ID = opp.OrganizationID
	return opp, nil
}

func translateOpportunityError(err error, opp *models.Opportunity, op string) error {
	if dberrors.IsForeignKeyError(err) {
		logger.Warn().Int64("organizationID", opp.OrganizationID).Msg("Opportunity references a missing organization")
		return apperrors.ErrOrganizationNotFound
	}
	logger.Error().Err(err).Int64("opportunityID", opp.ID).Msgf("Error executing %s opportunity query", op)
	return fmt.Errorf("error storing opportunity: %w", err)
}

// CreateOpportunity inserts opp and sets its ID and CreatedAt.
func (r *OpportunityRepository) CreateOpportunity(ctx context.Context, opp *models.Opportunity) error {
	sql, args, err := r.sb.Insert("opportunities").
		Columns("organization_id", "title", "description", "requirements", "duration_weeks",
			"weekly_hours", "start_date", "end_date", "total_slots", "application_deadline").
		Values(opp.OrganizationID, opp.Title, opp.Description, opp.Requirements, opp.DurationWeeks,
			opp.WeeklyHours, opp.StartDate, opp.EndDate, opp.TotalSlots, opp.ApplicationDeadline).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create opportunity SQL")
		return fmt.Errorf("failed to build create opportunity query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&opp.ID, &opp.CreatedAt); err != nil {
		return translateOpportunityError(err, opp, "create")
	}

	logger.Info().Int64("opportunityID", opp.ID).Int64("organizationID", opp.OrganizationID).Msg("Opportunity created successfully")
	return nil
}

// UpdateOpportunity stores every editable field of opp.
func (r *OpportunityRepository) UpdateOpportunity(ctx context.Context, opp *models.Opportunity) error {
	sql, args, err := r.sb.Update("opportunities").
		SetMap(map[string]interface{}{
			"organization_id":      opp.OrganizationID,
			"title":                opp.Title,
			"description":          opp.Description,
			"requirements":         opp.Requirements,
			"duration_weeks":       opp.DurationWeeks,
			"weekly_hours":         opp.WeeklyHours,
			"start_date":           opp.StartDate,
			"end_date":             opp.EndDate,
			"total_slots":          opp.TotalSlots,
			"application_deadline": opp.ApplicationDeadline,
		}).
		Where(squirrel.Eq{"id": opp.ID}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update opportunity SQL")
		return fmt.Errorf("failed to build update opportunity query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return translateOpportunityError(err, opp, "update")
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrOpportunityNotFound
	}
	return nil
}

// GetOpportunityByID retrieves an opportunity with its organization's
// name and sector.
func (r *OpportunityRepository) GetOpportunityByID(ctx context.Context, id int64) (*models.Opportunity, error) {
	sql, args, err := r.sb.Select(opportunityColumns...).
		From("opportunities o").
		Join("organizations org ON org.id = o.organization_id").
		Where(squirrel.Eq{"o.id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get opportunity by ID SQL")
		return nil, fmt.Errorf("failed to build get opportunity query: %w", err)
	}

	opp, err := scanOpportunity(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrOpportunityNotFound
		}
		logger.Error().Err(err).Int64("opportunityID", id).Msg("Error scanning opportunity row")
		return nil, fmt.Errorf("error getting opportunity by ID: %w", err)
	}
	return opp, nil
}

// searchConditions translates a search filter: substring matches on title
// and organization sector, equality on organization, inclusive bounds on
// the start date.
func searchConditions(filter models.OpportunityFilter) squirrel.And {
	where := squirrel.And{}
	if filter.Title != "" {
		where = append(where, squirrel.ILike{"o.title": helpers.ContainsPattern(filter.Title)})
	}
	if filter.OrganizationID != nil {
		where = append(where, squirrel.Eq{"o.organization_id": *filter.OrganizationID})
	}
	if filter.Sector != "" {
		where = append(where, squirrel.ILike{"org.sector": helpers.ContainsPattern(filter.Sector)})
	}
	if filter.StartFrom != nil {
		where = append(where, squirrel.GtOrEq{"o.start_date": *filter.StartFrom})
	}
	if filter.StartTo != nil {
		where = append(where, squirrel.LtOrEq{"o.start_date": *filter.StartTo})
	}
	return where
}

func (r *OpportunityRepository) searchQueries(filter models.OpportunityFilter, page, size int) (squirrel.SelectBuilder, squirrel.SelectBuilder) {
	where := searchConditions(filter)
	offset, limit := helpers.CalculateOffsetLimit(page, size)

	list := r.sb.Select(opportunityColumns...).
		From("opportunities o").
		Join("organizations org ON org.id = o.organization_id").
		OrderBy("o.start_date", "o.id").
		Limit(uint64(limit)).
		Offset(offset)
	count := r.sb.Select("COUNT(*)").
		From("opportunities o").
		Join("organizations org ON org.id = o.organization_id")

	if len(where) > 0 {
		list = list.Where(where)
		count = count.Where(where)
	}
	return list, count
}

// SearchOpportunities returns one page of the opportunities matching filter
// and the total number of matches. An empty filter matches everything.
func (r *OpportunityRepository) SearchOpportunities(ctx context.Context, filter models.OpportunityFilter, page, size int) ([]*models.Opportunity, int64, error) {
	listQuery, countQuery := r.searchQueries(filter, page, size)

	countSQL, countArgs, err := countQuery.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building count opportunities SQL")
		return nil, 0, fmt.Errorf("failed to build count opportunities query: %w", err)
	}
	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		logger.Error().Err(err).Msg("Error counting opportunities")
		return nil, 0, fmt.Errorf("error counting opportunities: %w", err)
	}
	if total == 0 {
		return []*models.Opportunity{}, 0, nil
	}

	sql, args, err := listQuery.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building search opportunities SQL")
		return nil, 0, fmt.Errorf("failed to build search opportunities query: %w", err)
	}
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing search opportunities query")
		return nil, 0, fmt.Errorf("error searching opportunities: %w", err)
	}
	defer rows.Close()

	opportunities := []*models.Opportunity{}
	for rows.Next() {
		opp, err := scanOpportunity(rows)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning opportunity row during search")
			return nil, 0, fmt.Errorf("error scanning opportunity: %w", err)
		}
		opportunities = append(opportunities, opp)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating opportunities: %w", err)
	}
	return opportunities, total, nil
}
