package auth

import "time"

const RoleAdmin = "admin"

type User struct {
	ID           uint64    `gorm:"primaryKey"`
	Email        string    `gorm:"uniqueIndex;not null"`
	PasswordHash string    `gorm:"not null"`
	Role         string    `gorm:"not null;default:'user'"`
	CreatedAt    time.Time `gorm:"not null;default:now()"`
}
