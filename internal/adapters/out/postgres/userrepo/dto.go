package userrepo

import (
	"time"

	"github.com/u44592/hni/internal/core/domain/model/kernel"
	"github.com/u44592/hni/internal/core/domain/model/user"

	"github.com/google/uuid"
)

// UserDTO is the users row. MobilePhone holds the normalized digits.
type UserDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	FirstName   string    `gorm:"type:varchar(128)"`
	LastName    string    `gorm:"type:varchar(128)"`
	MobilePhone string    `gorm:"type:varchar(32);not null;index"`
	CreatedAt   time.Time `gorm:"not null"`
}

func (UserDTO) TableName() string {
	return "users"
}

func fromDomain(u *user.User) UserDTO {
	return UserDTO{
		ID:          u.ID().Bytes(),
		FirstName:   u.FirstName(),
		LastName:    u.LastName(),
		MobilePhone: u.MobilePhone(),
	}
}

func toDomain(dto UserDTO) (*user.User, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	return user.NewUser(id, dto.FirstName, dto.LastName, dto.MobilePhone)
}
