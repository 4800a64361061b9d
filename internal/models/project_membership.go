package models

const (
	RoleOwner  = "owner"
	RoleMember = "member"
)

// ProjectMembership links a user to a project with a role. The composite
// primary key means a user holds at most one role per project.
type ProjectMembership struct {
	ProjectID uint   `gorm:"primaryKey;autoIncrement:false"`
	UserID    uint   `gorm:"primaryKey;autoIncrement:false"`
	Role      string `gorm:"not null"`

	// Relationships
	Project Project `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	User    User    `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}

func (ProjectMembership) TableName() string {
	return "projects_users"
}
