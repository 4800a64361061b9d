package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm/clause"

	"github.com/lexio-dev/lexio/db"
	"github.com/lexio-dev/lexio/internal/models"
	"github.com/lexio-dev/lexio/internal/types"
)

type CreateRelationRequest struct {
	SubjectID uint   `json:"subject_id" binding:"required"`
	Predicate string `json:"predicate" binding:"required"`
	ObjectID  uint   `json:"object_id" binding:"required"`
}

type RelationResponse struct {
	ID        uint   `json:"id"`
	SubjectID uint   `json:"subject_id"`
	Predicate string `json:"predicate"`
	ObjectID  uint   `json:"object_id"`
}

type RelationHandler struct{}

func NewRelationHandler() *RelationHandler {
	return &RelationHandler{}
}

// CreateRelation links two existing objects with a predicate. Both endpoints
// must resolve; self-relations (subject == object) are rejected outright.
// A duplicate triple is a silent no-op.
func (h *RelationHandler) CreateRelation(ctx *gin.Context) {
	var req CreateRelationRequest

	if err := ctx.BindJSON(&req); err != nil {
		types.Error(ctx, http.StatusUnprocessableEntity, types.CodeInvalidRequest, "Invalid request")
		return
	}

	if req.SubjectID == req.ObjectID {
		types.Error(ctx, http.StatusUnprocessableEntity, types.CodeInvalidObject, "Relation endpoints must be two distinct objects")
		return
	}

	var count int64

	err := db.DB.Model(&models.LinguisticObject{}).
		Where("id IN ?", []uint{req.SubjectID, req.ObjectID}).
		Count(&count).Error

	if err != nil {
		log.Printf("Failed to resolve relation endpoints: %v", err)
		types.Error(ctx, http.StatusInternalServerError, types.CodeInternal, "Internal server error")
		return
	}

	if count != 2 {
		types.Error(ctx, http.StatusUnprocessableEntity, types.CodeInvalidObject, "Relation endpoints must reference existing objects")
		return
	}

	relation := models.Relation{
		SubjectID: req.SubjectID,
		Predicate: req.Predicate,
		ObjectID:  req.ObjectID,
	}

	if err := db.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(&relation).Error; err != nil {
		log.Printf("Failed to create relation: %v", err)
		types.Error(ctx, http.StatusInternalServerError, types.CodeInternal, "Internal server error")
		return
	}

	var stored models.Relation

	err = db.DB.Where("subject_id = ? AND predicate = ? AND object_id = ?",
		req.SubjectID, req.Predicate, req.ObjectID).First(&stored).Error

	if err != nil {
		log.Printf("Failed to fetch relation: %v", err)
		types.Error(ctx, http.StatusInternalServerError, types.CodeInternal, "Internal server error")
		return
	}

	ctx.JSON(http.StatusOK, RelationResponse{
		ID:        stored.ID,
		SubjectID: stored.SubjectID,
		Predicate: stored.Predicate,
		ObjectID:  stored.ObjectID,
	})
}
