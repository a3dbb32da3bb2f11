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
	"github.com/yigit/internhub/internal/pkg/logger"
)

// DocumentRepository handles enrollment document database operations
type DocumentRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewDocumentRepository creates a new DocumentRepository
func NewDocumentRepository(db *pgxpool.Pool) *DocumentRepository {
	return &DocumentRepository{
		db: db,
		sb: statementBuilder(),
	}
}

// CreateDocument inserts doc and sets its ID and UploadedAt.
func (r *DocumentRepository) CreateDocument(ctx context.Context, doc *models.EnrollmentDocument) error {
	sql, args, err := r.sb.Insert("enrollment_documents").
		Columns("enrollment_id", "type", "name", "file").
		Values(doc.EnrollmentID, doc.Type, doc.Name, doc.File).
		Suffix("RETURNING id, uploaded_at").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create document SQL")
		return fmt.Errorf("failed to build create document query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&doc.ID, &doc.UploadedAt); err != nil {
		if dberrors.IsForeignKeyError(err) {
			return apperrors.ErrEnrollmentNotFound
		}
		logger.Error().Err(err).Int64("enrollmentID", doc.EnrollmentID).Msg("Error executing create document query")
		return fmt.Errorf("error creating document: %w", err)
	}

	logger.Info().Int64("documentID", doc.ID).Int64("enrollmentID", doc.EnrollmentID).Str("type", string(doc.Type)).Msg("Document attached")
	return nil
}

// UpdateDocument stores type, name and file of doc.
func (r *DocumentRepository) UpdateDocument(ctx context.Context, doc *models.EnrollmentDocument) error {
	sql, args, err := r.sb.Update("enrollment_documents").
		Set("type", doc.Type).
		Set("name", doc.Name).
		Set("file", doc.File).
		Where(squirrel.Eq{"id": doc.ID, "enrollment_id": doc.EnrollmentID}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update document SQL")
		return fmt.Errorf("failed to build update document query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("documentID", doc.ID).Msg("Error executing update document query")
		return fmt.Errorf("error updating document: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrDocumentNotFound
	}
	return nil
}

// GetDocument retrieves a document of the given enrollment.
func (r *DocumentRepository) GetDocument(ctx context.Context, enrollmentID, documentID int64) (*models.EnrollmentDocument, error) {
	sql, args, err := r.sb.Select("id", "enrollment_id", "type", "name", "file", "uploaded_at").
		From("enrollment_documents").
		Where(squirrel.Eq{"id": documentID, "enrollment_id": enrollmentID}).
		Limit(1).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get document SQL")
		return nil, fmt.Errorf("failed to build get document query: %w", err)
	}

	doc := &models.EnrollmentDocument{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(&doc.ID, &doc.EnrollmentID, &doc.Type, &doc.Name, &doc.File, &doc.UploadedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrDocumentNotFound
		}
		logger.Error().Err(err).Int64("documentID", documentID).Msg("Error scanning document row")
		return nil, fmt.Errorf("error getting document: %w", err)
	}
	return doc, nil
}
