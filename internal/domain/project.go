package domain

import (
	"strconv"
	"time"
)

// ProjectID is a value object for project identity.
type ProjectID int64

// String returns the decimal form.
func (p ProjectID) String() string { return strconv.FormatInt(int64(p), 10) }

// Project groups sites. Attribution is stored as user ids; the display
// names are resolved when the project is read.
type Project struct {
	ID          ProjectID
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	CreatedByID *UserID
	UpdatedByID *UserID
	CreatedBy   string
	UpdatedBy   string
}

// ProjectPatch carries the fields of a partial project update. Nil fields are left untouched.
type ProjectPatch struct {
	Name        *string
	Description *string
}

// ProjectSummary is a project together with its sites and their combined area.
type ProjectSummary struct {
	Project
	Sites         []SiteRef
	TotalAreaSqKm float64
}

// SiteCount returns the number of sites attached to the project.
func (s *ProjectSummary) SiteCount() int { return len(s.Sites) }
