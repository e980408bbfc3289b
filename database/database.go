package database

import (
	"context"
	"fmt"
	"strings"

	"github.com/glebarez/sqlite"
	"github.com/rpupo63/developer-portfolio-backend/config"
	"github.com/rpupo63/developer-portfolio-backend/models"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/plugin/dbresolver"
)

type Database struct {
	db                 *gorm.DB
	profileRepo        *ProfileRepo
	skillRepo          *SkillRepo
	projectRepo        *ProjectRepo
	contactMessageRepo *ContactMessageRepo
	contactInfoRepo    *ContactInfoRepo
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		db:                 db,
		profileRepo:        NewProfileRepo(db),
		skillRepo:          NewSkillRepo(db),
		projectRepo:        NewProjectRepo(db),
		contactMessageRepo: NewContactMessageRepo(db),
		contactInfoRepo:    NewContactInfoRepo(db),
	}
}

// Ping checks that the primary database answers.
func (d Database) Ping(ctx context.Context) error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Accessor methods for each repository

func (d Database) ProfileRepo() *ProfileRepo {
	return d.profileRepo
}

func (d Database) SkillRepo() *SkillRepo {
	return d.skillRepo
}

func (d Database) ProjectRepo() *ProjectRepo {
	return d.projectRepo
}

func (d Database) ContactMessageRepo() *ContactMessageRepo {
	return d.contactMessageRepo
}

func (d Database) ContactInfoRepo() *ContactInfoRepo {
	return d.contactInfoRepo
}

// Migrate creates or alters the tables, indexes and checks of every model.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

// Open connects to the database selected by DB_TYPE:
//
//	supa     Supabase Postgres built from SUPABASE_DB_* parts
//	postgres any Postgres reachable through DATABASE_URL
//	sqlite   a local file at SQLITE_PATH (pure Go driver)
//
// When DATABASE_REPLICA_URL is set on a Postgres connection, reads are routed
// to that replica.
func Open(cfg map[string]string) (*gorm.DB, error) {
	dbType := strings.ToLower(config.GetString(cfg, "DB_TYPE", "postgres"))

	var dialector gorm.Dialector
	switch dbType {
	case "supa":
		connStr := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=require",
			config.GetString(cfg, "SUPABASE_DB_HOST", ""),
			config.GetString(cfg, "SUPABASE_DB_USER", ""),
			config.GetString(cfg, "SUPABASE_DB_PASSWORD", ""),
			config.GetString(cfg, "SUPABASE_DB_NAME", ""),
			config.GetString(cfg, "SUPABASE_DB_PORT", "5432"),
		)
		log.Info().Msg("Connecting to Supabase database...")
		dialector = postgres.New(postgres.Config{DSN: connStr, PreferSimpleProtocol: true})
	case "postgres":
		dsn := config.GetString(cfg, "DATABASE_URL", "")
		if dsn == "" {
			return nil, fmt.Errorf("DATABASE_URL is required when DB_TYPE is %q", dbType)
		}
		log.Info().Msg("Connecting to Postgres database...")
		dialector = postgres.Open(dsn)
	case "sqlite":
		path := config.GetString(cfg, "SQLITE_PATH", "portfolio.db")
		log.Info().Str("path", path).Msg("Opening SQLite database...")
		dialector = sqlite.Open(path)
	default:
		return nil, fmt.Errorf("unsupported DB_TYPE %q", dbType)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		PrepareStmt:    false,
		TranslateError: true,
		Logger:         NewGormLogger(config.GetString(cfg, "DB_LOG_LEVEL", "warn")),
	})
	if err != nil {
		return nil, fmt.Errorf("connect to %s: %w", dbType, err)
	}

	if replica := config.GetString(cfg, "DATABASE_REPLICA_URL", ""); replica != "" && dbType != "sqlite" {
		err := db.Use(dbresolver.Register(dbresolver.Config{
			Replicas: []gorm.Dialector{postgres.Open(replica)},
			Policy:   dbresolver.RandomPolicy{},
		}))
		if err != nil {
			return nil, fmt.Errorf("register read replica: %w", err)
		}
		log.Info().Msg("Routing reads to replica")
	}

	// Test database connection
	var result int
	if err := db.Raw("SELECT 1").Scan(&result).Error; err != nil {
		return nil, fmt.Errorf("test connection: %w", err)
	}

	return db, nil
}
