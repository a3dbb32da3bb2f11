package services

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/yigit/internhub/internal/app/models"
	"github.com/yigit/internhub/internal/db"
	"github.com/yigit/internhub/internal/pkg/auth"
)

// UserStore is the part of the user repository accounts need.
type UserStore interface {
	UsernameExists(ctx context.Context, username string) (bool, error)
	CreateUser(ctx context.Context, q db.Querier, user *models.User) error
}

// StudentCreator inserts student profiles, possibly inside a transaction.
type StudentCreator interface {
	CreateStudent(ctx context.Context, q db.Querier, student *models.Student) error
}

// AccountService owns user credentials: the password policy, hashing and
// the creation of student accounts.
type AccountService struct {
	txs      db.Beginner
	users    UserStore
	students StudentCreator
	logger   zerolog.Logger
}

// NewAccountService creates a new AccountService
func NewAccountService(txs db.Beginner, users UserStore, students StudentCreator, logger zerolog.Logger) *AccountService {
	return &AccountService{
		txs:      txs,
		users:    users,
		students: students,
		logger:   logger,
	}
}

func (s *AccountService) UsernameExists(ctx context.Context, username string) (bool, error) {
	return s.users.UsernameExists(ctx, username)
}

// ValidatePassword applies the password policy. The password may not contain
// the username, the names or the local part of the email of user.
func (s *AccountService) ValidatePassword(password string, user *models.User) error {
	personal := []string{user.Username, user.FirstName, user.LastName}
	if local, _, ok := strings.Cut(user.Email, "@"); ok {
		personal = append(personal, local)
	}
	return auth.ValidatePassword(password, personal...)
}

// SetPassword stores the bcrypt hash of password on user.
func (s *AccountService) SetPassword(user *models.User, password string) error {
	hash, err := auth.HashPassword(password)
	if err != nil {
		s.logger.Error().Err(err).Str("username", user.Username).Msg("Failed to hash password")
		return err
	}
	user.Password = hash
	return nil
}

// CreateStudentAccount inserts user and student in one transaction, so a
// failed student insert leaves no user behind.
func (s *AccountService) CreateStudentAccount(ctx context.Context, user *models.User, student *models.Student) error {
	err := db.WithTransaction(ctx, s.txs, func(ctx context.Context, tx pgx.Tx) error {
		if err := s.users.CreateUser(ctx, tx, user); err != nil {
			return err
		}
		student.UserID = user.ID
		return s.students.CreateStudent(ctx, tx, student)
	})
	if err != nil {
		user.ID = 0
		student.ID, student.UserID = 0, 0
		s.logger.Warn().Err(err).Str("username", user.Username).Str("code", student.Code).Msg("Student account was not created")
		return err
	}

	s.logger.Info().Int64("userID", user.ID).Int64("studentID", student.ID).Msg("Student account created")
	return nil
}
