package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/lexio-dev/lexio/db"
	"github.com/lexio-dev/lexio/internal/models"
	"github.com/lexio-dev/lexio/internal/types"
)

type CreateMetadataRequest struct {
	ObjectID uint   `json:"object_id" binding:"required"`
	Key      string `json:"key" binding:"required"`
	Value    string `json:"value"`
}

type MetadataResponse struct {
	ID       uint   `json:"id"`
	ObjectID uint   `json:"object_id"`
	Key      string `json:"key"`
	Value    string `json:"value"`
}

type MetadataHandler struct{}

func NewMetadataHandler() *MetadataHandler {
	return &MetadataHandler{}
}

// CreateMetadata attaches a key/value pair to an object. A duplicate
// (key, object) pair is a silent no-op: the stored value is returned
// unchanged, never overwritten.
func (h *MetadataHandler) CreateMetadata(ctx *gin.Context) {
	var req CreateMetadataRequest

	if err := ctx.BindJSON(&req); err != nil {
		types.Error(ctx, http.StatusUnprocessableEntity, types.CodeInvalidRequest, "Invalid request")
		return
	}

	var object models.LinguisticObject

	err := db.DB.First(&object, req.ObjectID).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		types.Error(ctx, http.StatusUnprocessableEntity, types.CodeInvalidObject, "Object does not exist")
		return
	}

	if err != nil {
		log.Printf("Failed to fetch object %d: %v", req.ObjectID, err)
		types.Error(ctx, http.StatusInternalServerError, types.CodeInternal, "Internal server error")
		return
	}

	entry := models.MetadataEntry{
		Key:      req.Key,
		Value:    req.Value,
		ObjectID: req.ObjectID,
	}

	if err := db.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(&entry).Error; err != nil {
		log.Printf("Failed to create metadata: %v", err)
		types.Error(ctx, http.StatusInternalServerError, types.CodeInternal, "Internal server error")
		return
	}

	// Re-read the stored row so a duplicate insert answers with the
	// original value.
	var stored models.MetadataEntry

	err = db.DB.Where("object_id = ? AND key = ?", req.ObjectID, req.Key).First(&stored).Error

	if err != nil {
		log.Printf("Failed to fetch metadata: %v", err)
		types.Error(ctx, http.StatusInternalServerError, types.CodeInternal, "Internal server error")
		return
	}

	ctx.JSON(http.StatusOK, MetadataResponse{
		ID:       stored.ID,
		ObjectID: stored.ObjectID,
		Key:      stored.Key,
		Value:    stored.Value,
	})
}
