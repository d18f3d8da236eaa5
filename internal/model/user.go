package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Role string

const (
	RoleStudent  Role = "student"
	RoleClassRep Role = "class_representative"
	RoleAdmin    Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleClassRep, RoleAdmin:
		return true
	}
	return false
}

// Departments and years are closed enums; class sections depend on the
// department (e.g. Computer Science runs G1/G2, others a single section).
var Departments = []string{
	"Computer Science",
	"Information Technology",
	"Electronics and Communication",
	"Electrical and Electronics",
	"Mechanical",
	"Civil",
	"Production",
	"Textile Technology",
}

var Years = []string{"1", "2", "3", "4"}

var ClassSections = map[string][]string{
	"Computer Science":              {"G1", "G2"},
	"Information Technology":        {"G1", "G2"},
	"Electronics and Communication": {"A", "B"},
	"Electrical and Electronics":    {"A"},
	"Mechanical":                    {"A", "B"},
	"Civil":                         {"A"},
	"Production":                    {"A"},
	"Textile Technology":            {"A"},
}

func ValidDepartment(dept string) bool {
	for _, d := range Departments {
		if d == dept {
			return true
		}
	}
	return false
}

func ValidYear(year string) bool {
	for _, y := range Years {
		if y == year {
			return true
		}
	}
	return false
}

func ValidClassSection(dept, section string) bool {
	for _, s := range ClassSections[dept] {
		if s == section {
			return true
		}
	}
	return false
}

type User struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	RollNo       string     `gorm:"size:20;uniqueIndex;not null" json:"roll_no"`
	Email        string     `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Name         string     `gorm:"size:100;not null" json:"name"`
	PasswordHash string     `gorm:"size:255;not null" json:"-"`
	Role         Role       `gorm:"size:30;not null;default:student" json:"role"`
	Department   string     `gorm:"size:50" json:"department"`
	Year         string     `gorm:"size:5" json:"year"`
	ClassSection string     `gorm:"size:10" json:"class_section,omitempty"`
	IsActive     bool       `gorm:"not null;default:true" json:"is_active"`
	IsApproved   bool       `gorm:"not null;default:false" json:"is_approved"`
	ApprovedBy   *uuid.UUID `gorm:"type:uuid" json:"approved_by,omitempty"`
	ApprovedAt   *time.Time `json:"approved_at,omitempty"`
	LastLogin    *time.Time `json:"last_login,omitempty"`
	CreatedAt    time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// RequiresApproval reports whether the role starts unapproved and waits for
// an admin decision. Students and admins are approved at registration.
func (r Role) RequiresApproval() bool {
	return r == RoleClassRep
}
