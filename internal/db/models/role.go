package models

// RoleGeneral is the role every provisioned user starts with.
const RoleGeneral = "general"

// Role represents a named role assignable to users.
type Role struct {
	// ID is the unique identifier for the role.
	ID uint `gorm:"primaryKey"`
	// Name is the unique role name.
	Name string `gorm:"unique;size:100;not null"`
}
