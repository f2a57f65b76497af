package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	dbm "tripflow/internal/models/db_models"
	"tripflow/pkg/utils"
)

type SessionRepository interface {
	Upsert(ctx context.Context, record *dbm.SessionRecord) error
	GetByName(ctx context.Context, name string) (*dbm.SessionRecord, error)
	List(ctx context.Context) ([]dbm.SessionRecord, error)
	Delete(ctx context.Context, name string) error
}

type sessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) Upsert(ctx context.Context, record *dbm.SessionRecord) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoUpdates: clause.AssignmentColumns([]string{"provider", "language", "document", "updated_at"}),
		}).
		Create(record).Error
	if err != nil {
		return utils.ErrDatabaseError
	}
	return nil
}

func (r *sessionRepository) GetByName(ctx context.Context, name string) (*dbm.SessionRecord, error) {
	var record dbm.SessionRecord
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrSessionNotFound
	}
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	return &record, nil
}

func (r *sessionRepository) List(ctx context.Context) ([]dbm.SessionRecord, error) {
	var records []dbm.SessionRecord
	err := r.db.WithContext(ctx).
		Select("id", "created_at", "updated_at", "name", "provider", "language").
		Order("name asc").
		Find(&records).Error
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	return records, nil
}

func (r *sessionRepository) Delete(ctx context.Context, name string) error {
	res := r.db.WithContext(ctx).Where("name = ?", name).Delete(&dbm.SessionRecord{})
	if res.Error != nil {
		return utils.ErrDatabaseError
	}
	if res.RowsAffected == 0 {
		return utils.ErrSessionNotFound
	}
	return nil
}
