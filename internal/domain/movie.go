package domain

import (
	"context"
	"time"
)

type Movie struct {
	ID             int64
	Title          string
	PublishingYear int
	PosterKey      *string
	CreatedAt      time.Time
}

type Pagination struct {
	Page     int
	PageSize int
}

func (p Pagination) Limit() int {
	return p.PageSize
}

func (p Pagination) Offset() int {
	return (p.Page - 1) * p.PageSize
}

type Metadata struct {
	CurrentPage  int
	TotalPages   int
	TotalRecords int
}

func NewMetadata(totalRecords, page, pageSize int) *Metadata {
	return &Metadata{
		CurrentPage:  page,
		TotalPages:   (totalRecords + pageSize - 1) / pageSize,
		TotalRecords: totalRecords,
	}
}

type MovieRepository interface {
	GetAll(ctx context.Context, pagination Pagination) ([]*Movie, error)
	Count(ctx context.Context) (int, error)
	GetById(ctx context.Context, id int64) (*Movie, error)
	Create(ctx context.Context, movie *Movie) error
	Update(ctx context.Context, movie *Movie) error
	Delete(ctx context.Context, id int64) error
}
