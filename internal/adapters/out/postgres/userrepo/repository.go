// Package userrepo is the user directory consulted when a message arrives.
package userrepo

import (
	"context"
	"errors"

	"github.com/u44592/hni/internal/core/domain/model/kernel"
	"github.com/u44592/hni/internal/core/domain/model/user"
	"github.com/u44592/hni/internal/core/ports"
	"github.com/u44592/hni/internal/pkg/errs"

	"gorm.io/gorm"
)

var _ ports.UserDirectory = (*GormUserRepository)(nil)

type GormUserRepository struct {
	db *gorm.DB
}

func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// Add registers a user. Several users may share a phone; lookups return the
// earliest registration.
func (r *GormUserRepository) Add(ctx context.Context, u *user.User) error {
	dto := fromDomain(u)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// GetByMobilePhone normalizes phone before matching.
func (r *GormUserRepository) GetByMobilePhone(ctx context.Context, phone string) (*user.User, error) {
	normalized, err := user.NormalizePhone(phone)
	if err != nil {
		return nil, err
	}

	var dto UserDTO
	err = r.db.WithContext(ctx).
		Where("mobile_phone = ?", normalized).
		Order("created_at").
		First(&dto).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("user", normalized)
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormUserRepository) Get(ctx context.Context, id kernel.UUID) (*user.User, error) {
	var dto UserDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("user", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}
