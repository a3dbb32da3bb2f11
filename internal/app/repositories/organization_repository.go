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
	"github.com/yigit/internhub/internal/pkg/logger"
)

var organizationColumns = []string{
	"id", "name", "tax_id", "address", "phone", "email", "contact_person",
	"sector", "description", "logo", "active", "created_at",
}

// OrganizationRepository handles organization database operations
type OrganizationRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewOrganizationRepository creates a new OrganizationRepository
func NewOrganizationRepository(db *pgxpool.Pool) *OrganizationRepository {
	return &OrganizationRepository{
		db: db,
		sb: statementBuilder(),
	}
}

func scanOrganization(row pgx.Row, org *models.Organization) error {
	return row.Scan(
		&org.ID, &org.Name, &org.TaxID, &org.Address, &org.Phone, &org.Email, &org.ContactPerson,
		&org.Sector, &org.Description, &org.Logo, &org.Active, &org.CreatedAt,
	)
}

// CreateOrganization inserts org and sets its ID and CreatedAt.
func (r *OrganizationRepository) CreateOrganization(ctx context.Context, org *models.Organization) error {
	sql, args, err := r.sb.Insert("organizations").
		Columns("name", "tax_id", "address", "phone", "email", "contact_person", "sector", "description", "logo", "active").
		Values(org.Name, org.TaxID, org.Address, org.Phone, org.Email, org.ContactPerson,
			org.Sector, org.Description, org.Logo, org.Active).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create organization SQL")
		return fmt.Errorf("failed to build create organization query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&org.ID, &org.CreatedAt); err != nil {
		logger.Error().Err(err).Str("name", org.Name).Msg("Error executing create organization query")
		return fmt.Errorf("error creating organization: %w", err)
	}

	logger.Info().Int64("organizationID", org.ID).Str("name", org.Name).Msg("Organization created successfully")
	return nil
}

// UpdateOrganization stores every editable field of org.
func (r *OrganizationRepository) UpdateOrganization(ctx context.Context, org *models.Organization) error {
	sql, args, err := r.sb.Update("organizations").
		SetMap(map[string]interface{}{
			"name":           org.Name,
			"tax_id":         org.TaxID,
			"address":        org.Address,
			"phone":          org.Phone,
			"email":          org.Email,
			"contact_person": org.ContactPerson,
			"sector":         org.Sector,
			"description":    org.Description,
			"logo":           org.Logo,
			"active":         org.Active,
		}).
		Where(squirrel.Eq{"id": org.ID}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update organization SQL")
		return fmt.Errorf("failed to build update organization query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("organizationID", org.ID).Msg("Error executing update organization query")
		return fmt.Errorf("error updating organization: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrOrganizationNotFound
	}
	return nil
}

// GetOrganizationByID retrieves an organization, active or not.
func (r *OrganizationRepository) GetOrganizationByID(ctx context.Context, id int64) (*models.Organization, error) {
	sql, args, err := r.sb.Select(organizationColumns...).
		From("organizations").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get organization by ID SQL")
		return nil, fmt.Errorf("failed to build get organization query: %w", err)
	}

	org := &models.Organization{}
	if err := scanOrganization(r.db.QueryRow(ctx, sql, args...), org); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrOrganizationNotFound
		}
		logger.Error().Err(err).Int64("organizationID", id).Msg("Error scanning organization row")
		return nil, fmt.Errorf("error getting organization by ID: %w", err)
	}
	return org, nil
}

// ListActiveOrganizations returns the organizations that may publish
// opportunities, by name.
func (r *OrganizationRepository) ListActiveOrganizations(ctx context.Context) ([]*models.Organization, error) {
	sql, args, err := r.sb.Select(organizationColumns...).
		From("organizations").
		Where(squirrel.Eq{"active": true}).
		OrderBy("name", "id").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list active organizations SQL")
		return nil, fmt.Errorf("failed to build list organizations query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list active organizations query")
		return nil, fmt.Errorf("error listing organizations: %w", err)
	}
	defer rows.Close()

	var orgs []*models.Organization
	for rows.Next() {
		org := &models.Organization{}
		if err := scanOrganization(rows, org); err != nil {
			logger.Error().Err(err).Msg("Error scanning organization row")
			return nil, fmt.Errorf("error scanning organization: %w", err)
		}
		orgs = append(orgs, org)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating organizations: %w", err)
	}
	return orgs, nil
}
