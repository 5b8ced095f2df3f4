package app

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/movievault/movievault/internal/domain"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 8

	maxPosterFormSize = 32 << 20
)

type MovieResponse struct {
	ID             int64     `json:"id"`
	Title          string    `json:"title"`
	PublishingYear int       `json:"publishing_year"`
	PosterURL      *string   `json:"poster_url"`
	CreatedAt      time.Time `json:"created_at"`
}

type MovieListResponse struct {
	Movies      []MovieResponse `json:"movies"`
	CurrentPage int             `json:"currentPage"`
	TotalPages  int             `json:"totalPages"`
	TotalMovies int             `json:"totalMovies"`
}

type DeleteMovieResponse struct {
	Success bool `json:"success"`
}

func (app *application) GetMovies(w http.ResponseWriter, r *http.Request) {
	qs := r.URL.Query()

	pagination := domain.Pagination{
		Page:     readInt(qs, "page", DefaultPage),
		PageSize: readInt(qs, "limit", DefaultPageSize),
	}

	var (
		movies []*domain.Movie
		count  int
	)

	// Count and page slice are independent reads taken concurrently. Under
	// concurrent writes the totals may lag the slice; that is accepted.
	g, ctx := errgroup.WithContext(r.Context())

	g.Go(func() error {
		var err error
		count, err = app.movieRepo.Count(ctx)
		return err
	})

	g.Go(func() error {
		var err error
		movies, err = app.movieRepo.GetAll(ctx, pagination)
		return err
	})

	if err := g.Wait(); err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	summaries := make([]MovieResponse, len(movies))

	// Posters on the page are signed in parallel. The mediation closures
	// never return an error, so one failed signing cannot cancel its
	// siblings or drop a record from the page.
	var sg errgroup.Group

	for i, movie := range movies {
		sg.Go(func() error {
			summaries[i] = app.toMovieResponse(r, movie)
			return nil
		})
	}

	sg.Wait()

	metadata := domain.NewMetadata(count, pagination.Page, pagination.PageSize)

	resp := MovieListResponse{
		Movies:      summaries,
		CurrentPage: metadata.CurrentPage,
		TotalPages:  metadata.TotalPages,
		TotalMovies: metadata.TotalRecords,
	}

	err := app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) GetMovie(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	movie, err := app.movieRepo.GetById(r.Context(), id)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, app.toMovieResponse(r, movie), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) CreateMovie(w http.ResponseWriter, r *http.Request) {
	form, err := parseMovieForm(r)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	movie := &domain.Movie{
		Title:          form.title,
		PublishingYear: form.year,
	}

	if form.poster != nil {
		defer form.poster.Close()

		key, err := app.uploadPoster(r.Context(), form)
		if err != nil {
			app.serverErrorResponse(w, r, err)
			return
		}

		movie.PosterKey = &key
	}

	err = app.movieRepo.Create(r.Context(), movie)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	// The create response carries the stored key as-is; only reads and
	// updates mediate a signed URL.
	resp := MovieResponse{
		ID:             movie.ID,
		Title:          movie.Title,
		PublishingYear: movie.PublishingYear,
		PosterURL:      movie.PosterKey,
		CreatedAt:      movie.CreatedAt,
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) UpdateMovie(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	form, err := parseMovieForm(r)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	movie := &domain.Movie{
		ID:             id,
		Title:          form.title,
		PublishingYear: form.year,
	}

	if form.poster != nil {
		defer form.poster.Close()

		// The previous poster object stays in place: a client may still
		// hold a signed URL referencing it.
		key, err := app.uploadPoster(r.Context(), form)
		if err != nil {
			app.serverErrorResponse(w, r, err)
			return
		}

		movie.PosterKey = &key
	}

	err = app.movieRepo.Update(r.Context(), movie)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, app.toMovieResponse(r, movie), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) DeleteMovie(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	movie, err := app.movieRepo.GetById(r.Context(), id)
	if err != nil && !errors.Is(err, domain.ErrRecordNotFound) {
		app.logger.Error("failed to read movie before deletion", "id", id, "error", err)
	}

	// Best-effort cleanup: a failed blob removal never blocks retiring the
	// record, it just leaves an orphaned object behind.
	if movie != nil && movie.PosterKey != nil {
		err := app.blobStore.Remove(r.Context(), []string{*movie.PosterKey})
		if err != nil {
			app.logger.Error("failed to remove poster", "key", *movie.PosterKey, "error", err)
		}
	}

	err = app.movieRepo.Delete(r.Context(), id)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, DeleteMovieResponse{Success: true}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// toMovieResponse maps a movie to its response shape, mediating the poster
// key into a signed URL. The raw key is never exposed here; when mediation
// fails the poster URL is simply absent.
func (app *application) toMovieResponse(r *http.Request, movie *domain.Movie) MovieResponse {
	resp := MovieResponse{
		ID:             movie.ID,
		Title:          movie.Title,
		PublishingYear: movie.PublishingYear,
		CreatedAt:      movie.CreatedAt,
	}

	if movie.PosterKey != nil {
		if url := app.posterSignedURL(r.Context(), *movie.PosterKey); url != "" {
			resp.PosterURL = &url
		}
	}

	return resp
}

type movieForm struct {
	title       string
	year        int
	poster      multipart.File
	filename    string
	contentType string
}

func parseMovieForm(r *http.Request) (*movieForm, error) {
	err := r.ParseMultipartForm(maxPosterFormSize)
	if err != nil {
		return nil, err
	}

	form := &movieForm{
		title: r.FormValue("title"),
	}

	// Garbage years coerce to zero rather than failing; this endpoint has
	// always been lenient about the field.
	form.year, _ = strconv.Atoi(r.FormValue("publishing_year"))

	file, header, err := r.FormFile("poster")
	switch {
	case err == nil && header.Size > 0:
		form.poster = file
		form.filename = header.Filename
		form.contentType = header.Header.Get("Content-Type")
	case err == nil:
		file.Close() // zero-byte upload counts as no poster
	case errors.Is(err, http.ErrMissingFile):
	default:
		return nil, err
	}

	return form, nil
}

// uploadPoster writes the submitted poster under a fresh timestamp-derived
// key. The upload refuses to overwrite an existing object, so a key
// collision fails the mutation instead of clobbering another poster.
func (app *application) uploadPoster(ctx context.Context, form *movieForm) (string, error) {
	ext := form.filename
	if i := strings.LastIndex(ext, "."); i >= 0 {
		ext = ext[i+1:]
	}

	key := fmt.Sprintf("%d.%s", time.Now().UnixNano(), ext)

	err := app.blobStore.Upload(ctx, key, form.contentType, form.poster, false)
	if err != nil {
		return "", err
	}

	return key, nil
}
