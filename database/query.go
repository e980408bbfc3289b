package database

import (
	"context"
	"errors"

	"github.com/rpupo63/developer-portfolio-backend/errs"
	"github.com/rpupo63/developer-portfolio-backend/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/plugin/dbresolver"
)

// updateByID applies changes to the row with the given id in a single
// UPDATE ... RETURNING statement and returns the stored row.
func updateByID[T any](ctx context.Context, db *gorm.DB, entity string, id int64, changes map[string]any) (*T, error) {
	if len(changes) == 0 {
		return findByID[T](ctx, db, entity, id)
	}

	var row T
	result := db.WithContext(ctx).
		Model(&row).
		Clauses(clause.Returning{}).
		Where("id = ?", id).
		Updates(changes)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, errs.NewNotFound(entity, id)
	}
	return &row, nil
}

func findByID[T any](ctx context.Context, db *gorm.DB, entity string, id int64) (*T, error) {
	var row T
	err := db.WithContext(ctx).Clauses(dbresolver.Write).First(&row, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NewNotFound(entity, id)
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

type singleton interface {
	models.DeveloperProfile | models.ContactInfo
}

// firstSingleton returns the oldest row of a singleton table, or nil when the
// table is empty. Reads go to the primary so an upsert never acts on a stale
// replica.
func firstSingleton[T singleton](ctx context.Context, db *gorm.DB) (*T, error) {
	var rows []T
	err := db.WithContext(ctx).
		Clauses(dbresolver.Write).
		Order("id ASC").
		Limit(1).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

// upsertSingleton merges changes into the singleton row, creating it from
// fresh when none exists. A concurrent creator wins the unique index; the
// loser falls back to merging into the winner's row.
func upsertSingleton[T singleton](
	ctx context.Context,
	db *gorm.DB,
	entity string,
	idOf func(*T) int64,
	changes map[string]any,
	fresh func() *T,
) (*T, error) {
	existing, err := firstSingleton[T](ctx, db)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return updateByID[T](ctx, db, entity, idOf(existing), changes)
	}

	created := fresh()
	err = db.WithContext(ctx).Create(created).Error
	if err == nil {
		return created, nil
	}
	if !errs.IsUniqueViolation(err) {
		return nil, err
	}

	existing, err = firstSingleton[T](ctx, db)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, errs.NewConflictError(entity + " was created concurrently but cannot be read back")
	}
	return updateByID[T](ctx, db, entity, idOf(existing), changes)
}
