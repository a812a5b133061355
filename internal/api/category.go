package api

import "context"

// CreateCategoryPayload is the body of a category creation.
type CreateCategoryPayload struct {
	Name   string  `json:"name"`
	Budget float64 `json:"budget"`
}

// UpdateCategoryPayload is the body of a category update; the target id
// travels in the body.
type UpdateCategoryPayload struct {
	ID     int     `json:"id"`
	Name   string  `json:"name"`
	Budget float64 `json:"budget"`
}

// CategoryService shapes category requests.
type CategoryService struct {
	client Client
}

func NewCategoryService(client Client) *CategoryService {
	return &CategoryService{client: client}
}

// List fetches all categories of the authenticated user.
func (s *CategoryService) List(ctx context.Context) (*Envelope[[]*Category], error) {
	var env Envelope[[]*Category]
	if err := s.client.Get(ctx, "/categories", nil, &env); err != nil {
		return nil, err
	}
	return &env, nil
}

// Stats fetches per-category totals (with budget) for a date range.
func (s *CategoryService) Stats(ctx context.Context, params StatsParams) (*Envelope[[]*CategoryStats], error) {
	var env Envelope[[]*CategoryStats]
	if err := s.client.Get(ctx, "/categories/stats", params.Values(), &env); err != nil {
		return nil, err
	}
	return &env, nil
}

// Create records a new category.
func (s *CategoryService) Create(ctx context.Context, payload CreateCategoryPayload) (*Envelope[*Category], error) {
	var env Envelope[*Category]
	if err := s.client.Post(ctx, "/categories", payload, &env); err != nil {
		return nil, err
	}
	return &env, nil
}

// Update rewrites an existing category.
func (s *CategoryService) Update(ctx context.Context, payload UpdateCategoryPayload) (*Envelope[*Category], error) {
	var env Envelope[*Category]
	if err := s.client.Put(ctx, "/categories", payload, &env); err != nil {
		return nil, err
	}
	return &env, nil
}
