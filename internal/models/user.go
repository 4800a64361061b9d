package models

import "time"

type User struct {
	ID           uint    `gorm:"primaryKey"`
	Username     string  `gorm:"uniqueIndex;not null"`
	Email        *string `gorm:"uniqueIndex"`
	PasswordHash string
	CreatedAt    time.Time

	// Relationships
	OwnedProjects []Project           `gorm:"foreignKey:OwnerID"`
	Memberships   []ProjectMembership `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
