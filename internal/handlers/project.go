package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/lexio-dev/lexio/db"
	"github.com/lexio-dev/lexio/internal/authz"
	"github.com/lexio-dev/lexio/internal/middleware"
	"github.com/lexio-dev/lexio/internal/models"
	"github.com/lexio-dev/lexio/internal/types"
	"github.com/lexio-dev/lexio/internal/utils"
)

type CreateProjectRequest struct {
	Name string `json:"name" binding:"required"`
}

type ProjectResponse struct {
	ID      uint   `json:"id"`
	Name    string `json:"name"`
	OwnerID uint   `json:"owner_id"`
}

type ProjectHandler struct {
	Policy *authz.Policy
}

func NewProjectHandler(policy *authz.Policy) *ProjectHandler {
	return &ProjectHandler{Policy: policy}
}

// CreateProject makes the caller the owner, both via the owner_id column and
// a projects_users row with role 'owner'. Either source alone is treated as
// authoritative by the policy, so both are written.
func (h *ProjectHandler) CreateProject(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		types.Error(ctx, http.StatusUnauthorized, types.CodeUnauthorized, "User not authenticated")
		return
	}

	var req CreateProjectRequest

	if err := ctx.BindJSON(&req); err != nil {
		types.Error(ctx, http.StatusBadRequest, types.CodeInvalidRequest, "Invalid request")
		return
	}

	var existing models.Project

	err = db.DB.Where("name = ?", req.Name).First(&existing).Error

	if err == nil {
		types.Error(ctx, http.StatusBadRequest, types.CodeProjectExists, "Project name already exists")
		return
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("Database error when checking existing project: %v", err)
		types.Error(ctx, http.StatusInternalServerError, types.CodeInternal, "Internal server error")
		return
	}

	project := models.Project{
		Name:    req.Name,
		OwnerID: userID,
	}

	if err := db.DB.Create(&project).Error; err != nil {
		log.Printf("Failed to create project: %v", err)
		types.Error(ctx, http.StatusInternalServerError, types.CodeInternal, "Internal server error")
		return
	}

	membership := models.ProjectMembership{
		ProjectID: project.ID,
		UserID:    userID,
		Role:      models.RoleOwner,
	}

	if err := db.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(&membership).Error; err != nil {
		log.Printf("Failed to record project ownership: %v", err)
		types.Error(ctx, http.StatusInternalServerError, types.CodeInternal, "Internal server error")
		return
	}

	ctx.JSON(http.StatusCreated, ProjectResponse{
		ID:      project.ID,
		Name:    project.Name,
		OwnerID: project.OwnerID,
	})
}

// ListProjects returns the projects the caller owns or belongs to.
func (h *ProjectHandler) ListProjects(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		types.Error(ctx, http.StatusUnauthorized, types.CodeUnauthorized, "User not authenticated")
		return
	}

	var projects []models.Project

	err = db.DB.
		Where("owner_id = ? OR id IN (?)", userID,
			db.DB.Model(&models.ProjectMembership{}).Select("project_id").Where("user_id = ?", userID)).
		Order("id ASC").
		Find(&projects).Error

	if err != nil {
		log.Printf("Failed to list projects: %v", err)
		types.Error(ctx, http.StatusInternalServerError, types.CodeInternal, "Internal server error")
		return
	}

	response := make([]ProjectResponse, 0, len(projects))

	for _, project := range projects {
		response = append(response, ProjectResponse{
			ID:      project.ID,
			Name:    project.Name,
			OwnerID: project.OwnerID,
		})
	}

	ctx.JSON(http.StatusOK, response)
}

// ListProjectObjects returns every object under a project, gated by the read
// policy: any member or the owner may read, anyone may read when auth is
// disabled, everyone else is forbidden.
func (h *ProjectHandler) ListProjectObjects(ctx *gin.Context) {
	projectID, err := strconv.ParseUint(ctx.Param("id"), 10, 64)

	if err != nil {
		types.Error(ctx, http.StatusNotFound, types.CodeNotFound, "Project not found")
		return
	}

	var callerID uint

	if caller, ok := middleware.CurrentUser(ctx); ok {
		callerID = caller.ID
	}

	allowed, err := h.Policy.CanReadProject(uint(projectID), callerID)

	if err != nil {
		log.Printf("Failed to check read access to project %d: %v", projectID, err)
		types.Error(ctx, http.StatusInternalServerError, types.CodeInternal, "Internal server error")
		return
	}

	if !allowed {
		types.Error(ctx, http.StatusForbidden, types.CodeForbidden, "Not a member of this project")
		return
	}

	var objects []models.LinguisticObject

	err = db.DB.Where("project_id = ?", uint(projectID)).
		Order("id ASC").
		Find(&objects).Error

	if err != nil {
		log.Printf("Failed to list project objects: %v", err)
		types.Error(ctx, http.StatusInternalServerError, types.CodeInternal, "Internal server error")
		return
	}

	items := make([]types.ObjectResponse, 0, len(objects))

	for _, object := range objects {
		items = append(items, objectResponse(object))
	}

	ctx.JSON(http.StatusOK, gin.H{"items": items})
}
