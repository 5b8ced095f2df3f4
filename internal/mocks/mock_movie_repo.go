package mocks

import (
	"context"

	"github.com/movievault/movievault/internal/domain"
)

type MockMovieRepo struct {
	domain.MovieRepository
	GetAllFunc  func(ctx context.Context, pagination domain.Pagination) ([]*domain.Movie, error)
	CountFunc   func(ctx context.Context) (int, error)
	GetByIdFunc func(ctx context.Context, id int64) (*domain.Movie, error)
	CreateFunc  func(ctx context.Context, movie *domain.Movie) error
	UpdateFunc  func(ctx context.Context, movie *domain.Movie) error
	DeleteFunc  func(ctx context.Context, id int64) error
}

func (m *MockMovieRepo) GetAll(ctx context.Context, pagination domain.Pagination) ([]*domain.Movie, error) {
	return m.GetAllFunc(ctx, pagination)
}

func (m *MockMovieRepo) Count(ctx context.Context) (int, error) {
	return m.CountFunc(ctx)
}

func (m *MockMovieRepo) GetById(ctx context.Context, id int64) (*domain.Movie, error) {
	return m.GetByIdFunc(ctx, id)
}

func (m *MockMovieRepo) Create(ctx context.Context, movie *domain.Movie) error {
	return m.CreateFunc(ctx, movie)
}

func (m *MockMovieRepo) Update(ctx context.Context, movie *domain.Movie) error {
	return m.UpdateFunc(ctx, movie)
}

func (m *MockMovieRepo) Delete(ctx context.Context, id int64) error {
	return m.DeleteFunc(ctx, id)
}
