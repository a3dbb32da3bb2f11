package repositories

import (
	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository         *UserRepository
	StudentRepository      *StudentRepository
	CareerRepository       *CareerRepository
	OrganizationRepository *OrganizationRepository
	OpportunityRepository  *OpportunityRepository
	EnrollmentRepository   *EnrollmentRepository
	DocumentRepository     *DocumentRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:         NewUserRepository(db),
		StudentRepository:      NewStudentRepository(db),
		CareerRepository:       NewCareerRepository(db),
		OrganizationRepository: NewOrganizationRepository(db),
		OpportunityRepository:  NewOpportunityRepository(db),
		EnrollmentRepository:   NewEnrollmentRepository(db),
		DocumentRepository:     NewDocumentRepository(db),
	}
}

func statementBuilder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}
