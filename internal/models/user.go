package models

import "time"

type UserRole string

const (
	RoleSuperAdmin     UserRole = "super_admin"     // platformbeheer
	RoleWorkspaceAdmin UserRole = "workspace_admin" // beheerder van één administratie
	RoleMedewerker     UserRole = "medewerker"
)

type User struct {
	ID           uint `gorm:"primaryKey"`
	WorkspaceID  *uint
	Workspace    *Workspace
	Naam         string   `gorm:"size:100;not null"`
	Email        string   `gorm:"size:100;uniqueIndex;not null"`
	PasswordHash string   `gorm:"size:255;not null"`
	Role         UserRole `gorm:"size:20;not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
