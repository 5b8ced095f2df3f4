package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/movievault/movievault/internal/domain"
)

type PostgresMovieRepository struct {
	db *pgxpool.Pool
}

func NewPostgresMovieRepository(db *pgxpool.Pool) *PostgresMovieRepository {
	return &PostgresMovieRepository{
		db: db,
	}
}

func (p *PostgresMovieRepository) GetAll(ctx context.Context, pagination domain.Pagination) ([]*domain.Movie, error) {
	query := `SELECT id, title, publishing_year, poster_key, created_at
		FROM movies
		ORDER BY created_at DESC, id DESC
		LIMIT $1 OFFSET $2`

	rows, err := p.db.Query(ctx, query, pagination.Limit(), pagination.Offset())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	movies := []*domain.Movie{}

	for rows.Next() {
		var movie domain.Movie

		err := rows.Scan(
			&movie.ID,
			&movie.Title,
			&movie.PublishingYear,
			&movie.PosterKey,
			&movie.CreatedAt,
		)

		if err != nil {
			return nil, err
		}

		movies = append(movies, &movie)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return movies, nil
}

func (p *PostgresMovieRepository) Count(ctx context.Context) (int, error) {
	var count int

	err := p.db.QueryRow(ctx, `SELECT count(*) FROM movies`).Scan(&count)
	if err != nil {
		return 0, err
	}

	return count, nil
}

func (p *PostgresMovieRepository) GetById(ctx context.Context, id int64) (*domain.Movie, error) {
	query := `SELECT id, title, publishing_year, poster_key, created_at
		FROM movies
		WHERE id = $1`

	var movie domain.Movie

	err := p.db.QueryRow(ctx, query, id).Scan(
		&movie.ID,
		&movie.Title,
		&movie.PublishingYear,
		&movie.PosterKey,
		&movie.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return &movie, nil
}

func (p *PostgresMovieRepository) Create(ctx context.Context, movie *domain.Movie) error {
	query := `INSERT INTO movies (title, publishing_year, poster_key)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`

	return p.db.QueryRow(ctx,
		query,
		movie.Title,
		movie.PublishingYear,
		movie.PosterKey).Scan(&movie.ID, &movie.CreatedAt)
}

// Update rewrites title and publishing year and, when a new key is given,
// the poster key. A nil key keeps whatever the row already holds.
func (p *PostgresMovieRepository) Update(ctx context.Context, movie *domain.Movie) error {
	query := `UPDATE movies
		SET title = $1, publishing_year = $2, poster_key = COALESCE($3, poster_key)
		WHERE id = $4
		RETURNING title, publishing_year, poster_key, created_at`

	err := p.db.QueryRow(ctx,
		query,
		movie.Title,
		movie.PublishingYear,
		movie.PosterKey,
		movie.ID).Scan(&movie.Title, &movie.PublishingYear, &movie.PosterKey, &movie.CreatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrRecordNotFound
		}

		return err
	}

	return nil
}

// Delete removes a movie row. Deleting an id that no longer exists is not
// an error.
func (p *PostgresMovieRepository) Delete(ctx context.Context, id int64) error {
	_, err := p.db.Exec(ctx, `DELETE FROM movies WHERE id = $1`, id)

	return err
}
