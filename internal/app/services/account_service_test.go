package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/internhub/internal/app/models"
	"github.com/yigit/internhub/internal/db"
	"github.com/yigit/internhub/internal/pkg/apperrors"
	"github.com/yigit/internhub/internal/pkg/auth"
	"golang.org/x/crypto/bcrypt"
)

type fakeTx struct {
	pgx.Tx
	committed  bool
	rolledBack bool
}

func (f *fakeTx) Commit(ctx context.Context) error {
	f.committed = true
	return nil
}

func (f *fakeTx) Rollback(ctx context.Context) error {
	f.rolledBack = true
	return nil
}

type fakeBeginner struct {
	tx *fakeTx
}

func (f *fakeBeginner) Begin(ctx context.Context) (pgx.Tx, error) {
	return f.tx, nil
}

type fakeUserStore struct {
	usernames map[string]bool
	createdIn []db.Querier
	err       error
}

func (f *fakeUserStore) UsernameExists(ctx context.Context, username string) (bool, error) {
	return f.usernames[username], nil
}

func (f *fakeUserStore) CreateUser(ctx context.Context, q db.Querier, user *models.User) error {
	if f.err != nil {
		return f.err
	}
	f.createdIn = append(f.createdIn, q)
	user.ID = 42
	user.DateJoined = time.Now()
	return nil
}

type fakeStudentCreator struct {
	createdIn []db.Querier
	students  []*models.Student
	err       error
}

func (f *fakeStudentCreator) CreateStudent(ctx context.Context, q db.Querier, student *models.Student) error {
	if f.err != nil {
		return f.err
	}
	f.createdIn = append(f.createdIn, q)
	student.ID = 7
	f.students = append(f.students, student)
	return nil
}

func newAccountService(users *fakeUserStore, students *fakeStudentCreator) (*AccountService, *fakeTx) {
	tx := &fakeTx{}
	return NewAccountService(&fakeBeginner{tx: tx}, users, students, zerolog.Nop()), tx
}

func TestCreateStudentAccountCommitsBothRows(t *testing.T) {
	users, students := &fakeUserStore{}, &fakeStudentCreator{}
	svc, tx := newAccountService(users, students)

	user := &models.User{Username: "mgarcia"}
	student := &models.Student{Code: "20231045", CareerID: 1, CurrentTerm: 6}
	require.NoError(t, svc.CreateStudentAccount(context.Background(), user, student))

	assert.True(t, tx.committed)
	assert.Equal(t, int64(42), user.ID)
	assert.Equal(t, int64(42), student.UserID)
	assert.Equal(t, int64(7), student.ID)
	require.Len(t, users.createdIn, 1)
	require.Len(t, students.createdIn, 1)
	assert.Same(t, tx, users.createdIn[0])
	assert.Same(t, tx, students.createdIn[0])
}

func TestCreateStudentAccountRollsBackUserOnStudentFailure(t *testing.T) {
	users := &fakeUserStore{}
	students := &fakeStudentCreator{err: apperrors.ErrStudentCodeTaken}
	svc, tx := newAccountService(users, students)

	user := &models.User{Username: "mgarcia"}
	student := &models.Student{Code: "20231045"}
	err := svc.CreateStudentAccount(context.Background(), user, student)

	assert.ErrorIs(t, err, apperrors.ErrStudentCodeTaken)
	assert.True(t, tx.rolledBack)
	assert.False(t, tx.committed)
	assert.Zero(t, user.ID)
	assert.Zero(t, student.UserID)
}

func TestCreateStudentAccountDuplicateUsername(t *testing.T) {
	users := &fakeUserStore{err: apperrors.ErrUsernameTaken}
	students := &fakeStudentCreator{}
	svc, tx := newAccountService(users, students)

	err := svc.CreateStudentAccount(context.Background(), &models.User{Username: "mgarcia"}, &models.Student{})
	assert.True(t, errors.Is(err, apperrors.ErrUsernameTaken))
	assert.True(t, tx.rolledBack)
	assert.Empty(t, students.students)
}

func TestValidatePasswordUsesPersonalData(t *testing.T) {
	svc, _ := newAccountService(&fakeUserStore{}, &fakeStudentCreator{})
	user := &models.User{Username: "mgarcia", FirstName: "María", LastName: "García", Email: "practicante.mg@uni.edu.pe"}

	assert.NoError(t, svc.ValidatePassword("Intern2026pass", user))
	assert.ErrorIs(t, svc.ValidatePassword("practicante.mg99", user), auth.ErrPasswordTooSimilar)
	assert.ErrorIs(t, svc.ValidatePassword("short1", user), auth.ErrPasswordTooShort)
}

func TestSetPasswordHashes(t *testing.T) {
	previous := auth.BcryptCost
	auth.BcryptCost = bcrypt.MinCost
	t.Cleanup(func() { auth.BcryptCost = previous })

	svc, _ := newAccountService(&fakeUserStore{}, &fakeStudentCreator{})
	user := &models.User{Username: "mgarcia"}
	require.NoError(t, svc.SetPassword(user, "Intern2026pass"))

	assert.NotEqual(t, "Intern2026pass", user.Password)
	assert.True(t, auth.CheckPassword(user.Password, "Intern2026pass"))
}

func TestUsernameExistsDelegates(t *testing.T) {
	svc, _ := newAccountService(&fakeUserStore{usernames: map[string]bool{"mgarcia": true}}, &fakeStudentCreator{})
	exists, err := svc.UsernameExists(context.Background(), "mgarcia")
	require.NoError(t, err)
	assert.True(t, exists)
}
