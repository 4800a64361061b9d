package models

import (
	"time"

	"gorm.io/gorm"
)

// LinguisticObject is the primary stored entity: a noun with optional
// free-text content, optionally owned by a project.
type LinguisticObject struct {
	ID        uint    `gorm:"primaryKey"`
	Noun      string  `gorm:"column:noun"`
	Content   *string
	ProjectID *uint `gorm:"index"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`

	// Relationships
	Project         *Project        `gorm:"foreignKey:ProjectID"`
	MetadataEntries []MetadataEntry `gorm:"foreignKey:ObjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
