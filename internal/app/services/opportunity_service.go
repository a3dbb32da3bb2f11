package services

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/yigit/internhub/internal/app/models"
	"github.com/yigit/internhub/internal/app/models/dto"
	"github.com/yigit/internhub/internal/pkg/helpers"
)

// OpportunitySearcher runs a translated search against the store.
type OpportunitySearcher interface {
	SearchOpportunities(ctx context.Context, filter models.OpportunityFilter, page, size int) ([]*models.Opportunity, int64, error)
}

// OpportunityService serves the opportunity search.
type OpportunityService struct {
	searcher OpportunitySearcher
	logger   zerolog.Logger
}

// NewOpportunityService creates a new OpportunityService
func NewOpportunityService(searcher OpportunitySearcher, logger zerolog.Logger) *OpportunityService {
	return &OpportunityService{searcher: searcher, logger: logger}
}

// Search returns one page of the opportunities matching filter.
func (s *OpportunityService) Search(ctx context.Context, filter models.OpportunityFilter, page, size int) (*dto.PaginatedResponse, error) {
	_, limit := helpers.CalculateOffsetLimit(page, size)
	if page < 1 {
		page = helpers.DefaultPage
	}

	opportunities, total, err := s.searcher.SearchOpportunities(ctx, filter, page, limit)
	if err != nil {
		return nil, err
	}

	s.logger.Debug().
		Bool("unrestricted", filter.IsEmpty()).
		Int64("matches", total).
		Int("page", page).
		Msg("Opportunity search")

	items := make([]dto.OpportunityResponse, 0, len(opportunities))
	for _, opp := range opportunities {
		items = append(items, dto.NewOpportunityResponse(opp))
	}
	return &dto.PaginatedResponse{
		Items:      items,
		Pagination: helpers.NewPaginationInfo(total, page, limit),
	}, nil
}
