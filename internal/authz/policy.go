package authz

import (
	"errors"

	"gorm.io/gorm"

	"github.com/lexio-dev/lexio/db"
	"github.com/lexio-dev/lexio/internal/auth"
	"github.com/lexio-dev/lexio/internal/models"
)

// Policy answers project-relationship questions for a subject. Every check
// re-queries current state; authorization decisions are never cached across
// requests, so revoked permissions take effect immediately.
type Policy struct {
	mode auth.Mode
}

func NewPolicy(mode auth.Mode) *Policy {
	return &Policy{mode: mode}
}

// IsOwner reports whether the project's owner_id column names the user.
func (p *Policy) IsOwner(projectID, userID uint) (bool, error) {
	var project models.Project

	err := db.DB.Select("id", "owner_id").First(&project, projectID).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}

	if err != nil {
		return false, err
	}

	return project.OwnerID == userID, nil
}

// hasRole reports whether a projects_users row exists for (project, user)
// with the given role, or with any role when role is empty.
func (p *Policy) hasRole(projectID, userID uint, role string) (bool, error) {
	var count int64

	tx := db.DB.Model(&models.ProjectMembership{}).
		Where("project_id = ? AND user_id = ?", projectID, userID)

	if role != "" {
		tx = tx.Where("role = ?", role)
	}

	if err := tx.Count(&count).Error; err != nil {
		return false, err
	}

	return count > 0, nil
}

// IsMember reports whether the user has any relationship to the project:
// a membership row of any role, or ownership via the owner_id column.
func (p *Policy) IsMember(projectID, userID uint) (bool, error) {
	member, err := p.hasRole(projectID, userID, "")

	if err != nil || member {
		return member, err
	}

	return p.IsOwner(projectID, userID)
}

// CanReadProject gates project-scoped reads. Anyone may read when auth is
// disabled; otherwise the caller must be the owner or any member.
// userID 0 denotes an anonymous caller.
func (p *Policy) CanReadProject(projectID, userID uint) (bool, error) {
	if p.mode == auth.ModeDisabled {
		return true, nil
	}

	if userID == 0 {
		return false, nil
	}

	return p.IsMember(projectID, userID)
}

// CanWriteProject gates object creation under a project. Only owners may
// write; ownership counts through either the owner_id column or a
// projects_users row with role 'owner'. Both sources are authoritative.
// Plain members cannot write. Always false when auth is disabled: callers
// skip this check entirely in that mode.
func (p *Policy) CanWriteProject(projectID, userID uint) (bool, error) {
	if p.mode == auth.ModeDisabled || userID == 0 {
		return false, nil
	}

	owner, err := p.IsOwner(projectID, userID)

	if err != nil || owner {
		return owner, err
	}

	return p.hasRole(projectID, userID, models.RoleOwner)
}
