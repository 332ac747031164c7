package draftrepo

import (
	"context"
	"errors"
	"time"

	"github.com/u44592/hni/internal/core/domain/model/draft"
	"github.com/u44592/hni/internal/core/domain/model/kernel"
	"github.com/u44592/hni/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormDraftRepository implements ports.DraftRepository using GORM.
type GormDraftRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
	now     func() time.Time
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormDraftRepository creates a new GORM draft repository.
func NewGormDraftRepository(db *gorm.DB, tracker aggregateTracker) *GormDraftRepository {
	return &GormDraftRepository{
		db:      db,
		tracker: tracker,
		now:     time.Now,
	}
}

// GetByUser returns the user's draft or errs.ObjectNotFoundError.
func (r *GormDraftRepository) GetByUser(ctx context.Context, userID kernel.UUID) (*draft.Draft, error) {
	if err := userID.Validate(); err != nil {
		return nil, err
	}

	var dto DraftDTO
	if err := r.db.WithContext(ctx).First(&dto, "user_id = ?", userID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("draft", userID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// Save inserts a version 0 draft or updates a stored one when its version still
// matches. A lost race fails with errs.VersionIsInvalidError.
func (r *GormDraftRepository) Save(ctx context.Context, d *draft.Draft) error {
	if err := d.Validate(); err != nil {
		return err
	}

	dto := fromDomain(d)
	dto.Version = d.Version() + 1
	dto.UpdatedAt = r.now()

	var result *gorm.DB
	if d.Version() == 0 {
		// Another turn may have created a draft for the same user meanwhile.
		result = r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&dto)
	} else {
		result = r.db.WithContext(ctx).
			Model(&DraftDTO{}).
			Where("id = ? AND version = ?", dto.ID, d.Version()).
			Select("phase", "address", "candidates", "chosen", "selected", "version", "updated_at").
			Updates(&dto)
	}
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewVersionIsInvalidError("draft " + d.ID().String())
	}

	d.AdvanceVersion()
	r.tracker.TrackAggregate(d.ID(), d)
	return nil
}

// Delete removes a stored draft when its version still matches. A draft that
// was never stored has nothing to delete.
func (r *GormDraftRepository) Delete(ctx context.Context, d *draft.Draft) error {
	if err := d.Validate(); err != nil {
		return err
	}
	if d.Version() == 0 {
		return nil
	}

	result := r.db.WithContext(ctx).
		Where("id = ? AND version = ?", d.ID().Bytes(), d.Version()).
		Delete(&DraftDTO{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewVersionIsInvalidError("draft " + d.ID().String())
	}

	r.tracker.TrackAggregate(d.ID(), d)
	return nil
}

// DeleteIdleSince removes drafts last written before cutoff.
func (r *GormDraftRepository) DeleteIdleSince(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Where("updated_at < ?", cutoff).Delete(&DraftDTO{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
