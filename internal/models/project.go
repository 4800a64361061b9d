package models

import "time"

type Project struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"uniqueIndex;not null"`
	OwnerID   uint   `gorm:"not null;index"`
	CreatedAt time.Time

	// Relationships
	Owner       User                `gorm:"foreignKey:OwnerID"`
	Memberships []ProjectMembership `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Objects     []LinguisticObject  `gorm:"foreignKey:ProjectID"`
}
