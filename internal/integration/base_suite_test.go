package integration_test

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/movievault/movievault/internal/repository"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
)

const (
	dbName      = "movievault"
	dbUser      = "test_user"
	dbPassword  = "test_password"
	dbImageName = "postgres:17-alpine"
)

type BaseSuite struct {
	suite.Suite
	dbContainer *PostgresContainer
	db          *pgxpool.Pool
	repo        *repository.PostgresMovieRepository
}

func (s *BaseSuite) SetupSuite() {
	ctx := context.Background()

	postgresContainer, err := getDbContainer(ctx)
	if err != nil {
		log.Printf("failed to start container: %s", err)
		return
	}

	s.dbContainer = postgresContainer

	db, err := pgxpool.New(ctx, postgresContainer.ConnectionString)
	if err != nil {
		log.Printf("cannot create connection pool: %s", err)
		return
	}

	s.db = db
	s.repo = repository.NewPostgresMovieRepository(db)
}

func (s *BaseSuite) TearDownSuite() {
	if s.db != nil {
		s.db.Close()
	}
	if s.dbContainer != nil {
		if err := testcontainers.TerminateContainer(s.dbContainer.Container); err != nil {
			log.Printf("failed to terminate container: %s", err)
		}
	}
}

func (s *BaseSuite) SetupTest() {
	_, err := s.db.Exec(context.Background(), "TRUNCATE movies RESTART IDENTITY")
	s.Require().NoError(err)
}
