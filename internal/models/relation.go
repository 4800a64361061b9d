package models

import "time"

// Relation is a directed, predicate-labeled edge between two
// LinguisticObjects. The (subject, predicate, object) triple is unique;
// duplicate inserts are ignored.
type Relation struct {
	ID        uint   `gorm:"primaryKey"`
	SubjectID uint   `gorm:"not null;uniqueIndex:idx_relations_triple"`
	Predicate string `gorm:"not null;uniqueIndex:idx_relations_triple"`
	ObjectID  uint   `gorm:"not null;uniqueIndex:idx_relations_triple"`
	CreatedAt time.Time

	// Relationships
	Subject LinguisticObject `gorm:"foreignKey:SubjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Object  LinguisticObject `gorm:"foreignKey:ObjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
