package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/internhub/internal/app/models"
	"github.com/yigit/internhub/internal/db"
	"github.com/yigit/internhub/internal/pkg/apperrors"
	"github.com/yigit/internhub/internal/pkg/dberrors"
	"github.com/yigit/internhub/internal/pkg/logger"
)

var studentColumns = []string{
	"id", "user_id", "code", "career_id", "current_term", "phone", "address", "birth_date", "photo", "created_at",
}

// StudentRepository handles student profile database operations
type StudentRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewStudentRepository creates a new StudentRepository
func NewStudentRepository(db *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{
		db: db,
		sb: statementBuilder(),
	}
}

// CreateStudent inserts the profile through q. student.UserID must be set.
func (r *StudentRepository) CreateStudent(ctx context.Context, q db.Querier, student *models.Student) error {
	sql, args, err := r.sb.Insert("students").
		Columns("user_id", "code", "career_id", "current_term", "phone", "address", "birth_date", "photo").
		Values(student.UserID, student.Code, student.CareerID, student.CurrentTerm,
			student.Phone, student.Address, student.BirthDate, student.Photo).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create student SQL")
		return fmt.Errorf("failed to build create student query: %w", err)
	}

	if err := q.QueryRow(ctx, sql, args...).Scan(&student.ID, &student.CreatedAt); err != nil {
		return r.translateWriteError(err, student, "create")
	}

	logger.Info().Int64("userID", student.UserID).Str("code", student.Code).Msg("Student created successfully")
	return nil
}

// GetStudentByID retrieves a student profile by ID
func (r *StudentRepository) GetStudentByID(ctx context.Context, id int64) (*models.Student, error) {
	sql, args, err := r.sb.Select(studentColumns...).
		From("students").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get student by ID SQL")
		return nil, fmt.Errorf("failed to build get student query: %w", err)
	}

	student := &models.Student{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&student.ID, &student.UserID, &student.Code, &student.CareerID, &student.CurrentTerm,
		&student.Phone, &student.Address, &student.BirthDate, &student.Photo, &student.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		logger.Error().Err(err).Int64("studentID", id).Msg("Error scanning student row")
		return nil, fmt.Errorf("error getting student by ID: %w", err)
	}
	return student, nil
}

// UpdateStudent stores the fields a student may edit after registration.
func (r *StudentRepository) UpdateStudent(ctx context.Context, student *models.Student) error {
	sql, args, err := r.sb.Update("students").
		Set("current_term", student.CurrentTerm).
		Set("phone", student.Phone).
		Set("address", student.Address).
		Set("birth_date", student.BirthDate).
		Set("photo", student.Photo).
		Where(squirrel.Eq{"id": student.ID}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update student SQL")
		return fmt.Errorf("failed to build update student query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return r.translateWriteError(err, student, "update")
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}
	return nil
}

func (r *StudentRepository) translateWriteError(err error, student *models.Student, op string) error {
	switch {
	case dberrors.IsDuplicateConstraintError(err, "students_code_key"):
		logger.Warn().Str("code", student.Code).Msg("Attempted to store student with duplicate code")
		return apperrors.ErrStudentCodeTaken
	case dberrors.IsDuplicateConstraintError(err, "students_user_id_key"):
		return apperrors.ErrStudentUserExists
	case dberrors.IsForeignKeyError(err):
		return apperrors.ErrCareerNotFound
	case dberrors.IsCheckConstraintError(err, "students_current_term_check"):
		return apperrors.NewBadRequestError(fmt.Sprintf("current term %d is out of range", student.CurrentTerm))
	}
	logger.Error().Err(err).Int64("userID", student.UserID).Str("code", student.Code).Msgf("Error executing %s student query", op)
	return fmt.Errorf("error storing student: %w", err)
}
