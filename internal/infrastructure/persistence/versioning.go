package persistence

import (
	"github.com/stockyard/backend/internal/domain/shared"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// versioned is satisfied by aggregates embedding shared.BaseAggregateRoot.
type versioned interface {
	GetVersion() int
	LoadedVersion() int
	MarkPersisted()
}

// saveVersioned inserts a new aggregate or applies a guarded update to
// an existing one. The update only matches while the stored version
// still equals the version read at load time; zero matched rows means
// another writer saved first and the caller holds a stale aggregate.
// Associations are never written here; repositories that own child
// rows replace them explicitly.
func saveVersioned(db *gorm.DB, aggregate versioned) error {
	if aggregate.LoadedVersion() == 0 {
		if err := db.Omit(clause.Associations).Create(aggregate).Error; err != nil {
			return err
		}
		aggregate.MarkPersisted()
		return nil
	}

	result := db.Model(aggregate).
		Select("*").
		Omit(clause.Associations).
		Where("version = ?", aggregate.LoadedVersion()).
		Updates(aggregate)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}

	aggregate.MarkPersisted()
	return nil
}
