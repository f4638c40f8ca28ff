// Package model holds the GORM persistence models mirroring the database schema.
package model

import (
	"time"

	"github.com/google/uuid"
)

// UserModel mirrors the 'users' table. PostgreSQL generates UUIDs via uuid_generate_v7().
type UserModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Name         string    `gorm:"type:varchar(60);not null"`
	Email        string    `gorm:"type:varchar(255);unique;not null"`
	Address      string    `gorm:"type:varchar(400)"`
	PasswordHash string    `gorm:"type:varchar(255);not null"`
	Role         string    `gorm:"type:varchar(10);not null;check:role IN ('ADMIN','OWNER','USER')"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Stores  []StoreModel  `gorm:"foreignKey:OwnerID"`
	Ratings []RatingModel `gorm:"foreignKey:UserID"`
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}
