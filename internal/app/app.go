package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/movievault/movievault/internal/domain"
	"github.com/movievault/movievault/internal/repository"
	"github.com/movievault/movievault/internal/storage"
	"github.com/movievault/movievault/internal/vcs"
)

var (
	version = vcs.Version()
)

type application struct {
	config config
	logger *slog.Logger
	db     *pgxpool.Pool

	movieRepo domain.MovieRepository
	blobStore domain.BlobStore
}

type config struct {
	port int
	env  string
	db   struct {
		dsn          string
		maxOpenConns int
		maxIdleTime  time.Duration
	}
	s3 struct {
		endpoint  string
		region    string
		bucket    string
		accessKey string
		secretKey string
	}
}

func Run() error {
	var cfg config

	flag.IntVar(&cfg.port, "port", 3000, "server port")
	flag.StringVar(&cfg.env, "env", "dev", "Environment (dev|staging|prod)")

	flag.StringVar(&cfg.db.dsn, "db-dsn", "", "PostgreSQL DSN")
	flag.IntVar(&cfg.db.maxOpenConns, "db-max-open-conns", 25, "PostgreSQL max open connections")
	flag.DurationVar(&cfg.db.maxIdleTime, "db-max-idle-time", 15*time.Minute, "PostgreSQL max idle time for connections")

	flag.StringVar(&cfg.s3.endpoint, "s3-endpoint", "", "S3 endpoint (empty for AWS)")
	flag.StringVar(&cfg.s3.region, "s3-region", "eu-central-1", "S3 region")
	flag.StringVar(&cfg.s3.bucket, "s3-bucket", "movie_posters", "S3 poster bucket")
	flag.StringVar(&cfg.s3.accessKey, "s3-access-key", "", "S3 access key")
	flag.StringVar(&cfg.s3.secretKey, "s3-secret-key", "", "S3 secret key")

	displayVersion := flag.Bool("version", false, "Display version and exit")

	flag.Parse()

	if *displayVersion {
		fmt.Printf("Version:\t%s\n", version)
		os.Exit(0)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	db, err := newDatabasePool(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	app := &application{
		config:    cfg,
		logger:    logger,
		db:        db,
		movieRepo: repository.NewPostgresMovieRepository(db),
		blobStore: storage.NewS3BlobStore(storage.Config{
			Endpoint:  cfg.s3.endpoint,
			Region:    cfg.s3.region,
			Bucket:    cfg.s3.bucket,
			AccessKey: cfg.s3.accessKey,
			SecretKey: cfg.s3.secretKey,
		}),
	}

	return app.run()
}

func newDatabasePool(cfg config) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(cfg.db.dsn)
	if err != nil {
		return nil, err
	}

	config.MaxConnIdleTime = cfg.db.maxIdleTime
	config.MaxConns = int32(cfg.db.maxOpenConns)

	db, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err = db.Ping(ctx)
	if err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

func (app *application) run() error {
	srv := &http.Server{
		Addr:         fmt.Sprintf("0.0.0.0:%d", app.config.port),
		Handler:      app.routes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		ErrorLog:     slog.NewLogLogger(app.logger.Handler(), slog.LevelDebug),
	}

	shutdownError := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		app.logger.Info("shutting down server", "signal", s.String())

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		err := srv.Shutdown(ctx)
		if err != nil {
			shutdownError <- err
		}

		shutdownError <- nil
	}()

	app.logger.Info("starting server", "addr", srv.Addr, "env", app.config.env)

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdownError
	if err != nil {
		return err
	}

	app.logger.Info("stopped server", "addr", srv.Addr)

	return nil
}

func (app *application) routes() http.Handler {
	r := chi.NewRouter()

	r.NotFound(app.notFoundResponse)

	r.Use(middleware.Logger)
	r.Use(middleware.RequestID)
	r.Use(app.recoverPanic)

	r.Get("/health", app.GetHealth)

	r.Route("/movies", func(r chi.Router) {
		r.Get("/", app.GetMovies)
		r.Post("/", app.CreateMovie)

		r.Route("/{movieId}", func(r chi.Router) {
			r.Get("/", app.GetMovie)
			r.Patch("/", app.UpdateMovie)
			r.Delete("/", app.DeleteMovie)
		})
	})

	return r
}
