package handlers

import (
	"errors"
	"log"
	"net/http"
	"sort"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/lexio-dev/lexio/db"
	"github.com/lexio-dev/lexio/internal/auth"
	"github.com/lexio-dev/lexio/internal/authz"
	"github.com/lexio-dev/lexio/internal/middleware"
	"github.com/lexio-dev/lexio/internal/models"
	"github.com/lexio-dev/lexio/internal/types"
)

const defaultListLimit = 50

type CreateObjectRequest struct {
	Name      string            `json:"name" binding:"required"`
	Content   *string           `json:"content"`
	ProjectID *uint             `json:"project_id"`
	Metadata  map[string]string `json:"metadata"`
}

type CreateObjectResponse struct {
	types.ObjectResponse
	Metadata []types.MetadataPair `json:"metadata"`
}

type ObjectHandler struct {
	Policy *authz.Policy
	Mode   auth.Mode
}

func NewObjectHandler(policy *authz.Policy, mode auth.Mode) *ObjectHandler {
	return &ObjectHandler{Policy: policy, Mode: mode}
}

func objectResponse(object models.LinguisticObject) types.ObjectResponse {
	return types.ObjectResponse{
		ID:        object.ID,
		Name:      object.Noun,
		Content:   object.Content,
		ProjectID: object.ProjectID,
	}
}

func metadataPairs(objectID uint) ([]types.MetadataPair, error) {
	var entries []models.MetadataEntry

	err := db.DB.Where("object_id = ?", objectID).
		Order("key ASC").
		Find(&entries).Error

	if err != nil {
		return nil, err
	}

	pairs := make([]types.MetadataPair, 0, len(entries))

	for _, entry := range entries {
		pairs = append(pairs, types.MetadataPair{Key: entry.Key, Value: entry.Value})
	}

	return pairs, nil
}

// ListObjects returns objects ordered by id. The response is a bare array
// unless the caller supplied any paging or filter parameter (including an
// explicit wrap flag), in which case it is an {items, limit, offset}
// envelope. Older callers depend on the bare shape.
func (h *ObjectHandler) ListObjects(ctx *gin.Context) {
	query := ctx.Request.URL.Query()

	wrap := query.Has("limit") || query.Has("offset") ||
		query.Has("project_id") || query.Has("meta_key") || query.Has("wrap")

	limit := defaultListLimit
	offset := 0

	if raw := query.Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)

		if err != nil || parsed < 0 {
			types.Error(ctx, http.StatusUnprocessableEntity, types.CodeInvalidRequest, "limit must be a non-negative integer")
			return
		}

		limit = parsed
	}

	if raw := query.Get("offset"); raw != "" {
		parsed, err := strconv.Atoi(raw)

		if err != nil || parsed < 0 {
			types.Error(ctx, http.StatusUnprocessableEntity, types.CodeInvalidRequest, "offset must be a non-negative integer")
			return
		}

		offset = parsed
	}

	tx := db.DB.Model(&models.LinguisticObject{})

	if raw := query.Get("project_id"); raw != "" {
		projectID, err := strconv.ParseUint(raw, 10, 64)

		if err != nil {
			types.Error(ctx, http.StatusUnprocessableEntity, types.CodeInvalidRequest, "project_id must be an integer")
			return
		}

		tx = tx.Where("project_id = ?", uint(projectID))
	}

	if metaKey := query.Get("meta_key"); metaKey != "" {
		tx = tx.Where(
			"EXISTS (SELECT 1 FROM metadata m WHERE m.object_id = linguistic_objects.id AND m.key = ?)",
			metaKey,
		)
	}

	var objects []models.LinguisticObject

	if err := tx.Order("id ASC").Limit(limit).Offset(offset).Find(&objects).Error; err != nil {
		log.Printf("Failed to list objects: %v", err)
		types.Error(ctx, http.StatusInternalServerError, types.CodeInternal, "Internal server error")
		return
	}

	items := make([]types.ObjectResponse, 0, len(objects))

	for _, object := range objects {
		items = append(items, objectResponse(object))
	}

	if wrap {
		ctx.JSON(http.StatusOK, types.ObjectPage{Items: items, Limit: limit, Offset: offset})
		return
	}

	ctx.JSON(http.StatusOK, items)
}

// GetObject returns one object with its metadata entries ordered by key.
// The list appears under both metadata_entries and metadata; older callers
// read the latter.
func (h *ObjectHandler) GetObject(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)

	if err != nil {
		types.Error(ctx, http.StatusNotFound, types.CodeNotFound, "Object not found")
		return
	}

	var object models.LinguisticObject

	if err := db.DB.First(&object, uint(id)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			types.Error(ctx, http.StatusNotFound, types.CodeNotFound, "Object not found")
		} else {
			log.Printf("Failed to fetch object %d: %v", id, err)
			types.Error(ctx, http.StatusInternalServerError, types.CodeInternal, "Internal server error")
		}
		return
	}

	pairs, err := metadataPairs(object.ID)

	if err != nil {
		log.Printf("Failed to fetch metadata for object %d: %v", object.ID, err)
		types.Error(ctx, http.StatusInternalServerError, types.CodeInternal, "Internal server error")
		return
	}

	ctx.JSON(http.StatusOK, types.ObjectDetail{
		ObjectResponse:  objectResponse(object),
		MetadataEntries: pairs,
		Metadata:        pairs,
	})
}

// CreateObject inserts an object, optionally attaching it to a project and
// seeding metadata pairs. The project link is written in a second step after
// the insert; the object is not yet visible to anyone, so the gap is
// harmless. Metadata inserts ignore duplicate (key, object) pairs.
func (h *ObjectHandler) CreateObject(ctx *gin.Context) {
	var req CreateObjectRequest

	if err := ctx.BindJSON(&req); err != nil {
		types.Error(ctx, http.StatusUnprocessableEntity, types.CodeInvalidRequest, "Invalid request")
		return
	}

	if req.ProjectID != nil {
		var project models.Project

		err := db.DB.First(&project, *req.ProjectID).Error

		if errors.Is(err, gorm.ErrRecordNotFound) {
			types.Error(ctx, http.StatusUnprocessableEntity, types.CodeInvalidProject, "Project does not exist")
			return
		}

		if err != nil {
			log.Printf("Failed to fetch project %d: %v", *req.ProjectID, err)
			types.Error(ctx, http.StatusInternalServerError, types.CodeInternal, "Internal server error")
			return
		}

		if h.Mode == auth.ModeEnabled {
			caller, ok := middleware.CurrentUser(ctx)

			if !ok {
				types.Error(ctx, http.StatusForbidden, types.CodeForbidden, "Project writes require an authenticated owner")
				return
			}

			allowed, err := h.Policy.CanWriteProject(project.ID, caller.ID)

			if err != nil {
				log.Printf("Failed to check write access to project %d: %v", project.ID, err)
				types.Error(ctx, http.StatusInternalServerError, types.CodeInternal, "Internal server error")
				return
			}

			if !allowed {
				types.Error(ctx, http.StatusForbidden, types.CodeForbidden, "Only the project owner can create objects here")
				return
			}
		}
	}

	object := models.LinguisticObject{
		Noun:    req.Name,
		Content: req.Content,
	}

	if err := db.DB.Create(&object).Error; err != nil {
		log.Printf("Failed to create object: %v", err)
		types.Error(ctx, http.StatusInternalServerError, types.CodeInternal, "Internal server error")
		return
	}

	if req.ProjectID != nil {
		if err := db.DB.Model(&object).Update("project_id", *req.ProjectID).Error; err != nil {
			log.Printf("Failed to attach object %d to project: %v", object.ID, err)
			types.Error(ctx, http.StatusInternalServerError, types.CodeInternal, "Internal server error")
			return
		}

		object.ProjectID = req.ProjectID
	}

	keys := make([]string, 0, len(req.Metadata))

	for key := range req.Metadata {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	for _, key := range keys {
		entry := models.MetadataEntry{
			Key:      key,
			Value:    req.Metadata[key],
			ObjectID: object.ID,
		}

		err := db.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(&entry).Error

		if err != nil {
			log.Printf("Failed to create metadata %q for object %d: %v", key, object.ID, err)
			types.Error(ctx, http.StatusInternalServerError, types.CodeInternal, "Internal server error")
			return
		}
	}

	pairs, err := metadataPairs(object.ID)

	if err != nil {
		log.Printf("Failed to fetch metadata for object %d: %v", object.ID, err)
		types.Error(ctx, http.StatusInternalServerError, types.CodeInternal, "Internal server error")
		return
	}

	ctx.JSON(http.StatusOK, CreateObjectResponse{
		ObjectResponse: objectResponse(object),
		Metadata:       pairs,
	})
}
