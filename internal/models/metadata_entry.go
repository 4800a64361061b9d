package models

import "time"

// MetadataEntry is a key/value annotation on one LinguisticObject.
// (key, object_id) is unique; duplicate inserts are ignored, not overwritten.
type MetadataEntry struct {
	ID        uint   `gorm:"primaryKey"`
	Key       string `gorm:"column:key;not null;uniqueIndex:idx_metadata_key_object"`
	Value     string
	ObjectID  uint `gorm:"not null;uniqueIndex:idx_metadata_key_object"`
	CreatedAt time.Time

	// Relationships
	Object LinguisticObject `gorm:"foreignKey:ObjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}

func (MetadataEntry) TableName() string {
	return "metadata"
}
