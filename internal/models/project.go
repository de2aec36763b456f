package models

import (
	"strings"
	"time"
	"unicode/utf8"

	"codebliss/internal/apperror"
	"codebliss/pkg/utils"

	"gorm.io/gorm"
)

const (
	ProjectNameMin = 3
	ProjectNameMax = 32
)

const (
	MsgProjectNameTooShort = "Project name must be at least 3 characters long."
	MsgProjectNameTooLong  = "Project name cannot exceed 32 characters."
)

// EmptyCodeMessage is returned whenever a project would end up with no code at all.
const EmptyCodeMessage = "Please include code for either HTML, CSS or JavaScript in your project."

type Code struct {
	HTML       string `gorm:"type:text" json:"html"`
	CSS        string `gorm:"type:text" json:"css"`
	JavaScript string `gorm:"type:text" json:"javascript"`
}

// IsBlank is true when none of the three sources has non-whitespace content.
func (c Code) IsBlank() bool {
	return strings.TrimSpace(c.HTML) == "" &&
		strings.TrimSpace(c.CSS) == "" &&
		strings.TrimSpace(c.JavaScript) == ""
}

type Project struct {
	ID        string    `gorm:"primaryKey;size:36" json:"_id"`
	Name      string    `gorm:"not null;size:32" json:"name"`
	Code      Code      `gorm:"embedded;embeddedPrefix:code_" json:"code"`
	UserID    string    `gorm:"<-:create;not null;size:36;index" json:"user"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `gorm:"index" json:"updatedAt"`
}

// ProjectSummary is the listing view, without code bodies.
type ProjectSummary struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = utils.NewID()
	}
	return nil
}

// BeforeSave is the store-level guard; request validation checks the same
// rules before the store is reached.
func (p *Project) BeforeSave(tx *gorm.DB) error {
	p.Name = strings.TrimSpace(p.Name)

	if fields := ValidateProjectName("name", p.Name); len(fields) > 0 {
		return apperror.Validation(fields...)
	}
	if p.UserID == "" {
		return apperror.Validation(apperror.FieldError{Field: "user", Error: "A project must belong to a user."})
	}
	if p.Code.IsBlank() {
		return apperror.BadRequest(EmptyCodeMessage)
	}
	return nil
}

// ValidateProjectName checks an already trimmed name.
func ValidateProjectName(field, name string) []apperror.FieldError {
	n := utf8.RuneCountInString(name)
	switch {
	case n < ProjectNameMin:
		return []apperror.FieldError{{Field: field, Error: MsgProjectNameTooShort}}
	case n > ProjectNameMax:
		return []apperror.FieldError{{Field: field, Error: MsgProjectNameTooLong}}
	}
	return nil
}
