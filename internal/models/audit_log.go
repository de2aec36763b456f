package models

import (
	"time"
)

const (
	ActionSignup            = "SIGNUP"
	ActionSignin            = "SIGNIN"
	ActionSignout           = "SIGNOUT"
	ActionCreateProject     = "CREATE_PROJECT"
	ActionUpdateProjectName = "UPDATE_PROJECT_NAME"
	ActionUpdateProjectCode = "UPDATE_PROJECT_CODE"
	ActionDeleteProject     = "DELETE_PROJECT"
	ActionForkProject       = "FORK_PROJECT"
)

type AuditLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    *string   `gorm:"size:36;index" json:"user_id"`
	Action    string    `gorm:"size:50;not null" json:"action"`
	EntityID  string    `gorm:"size:50" json:"entity_id"` // project or user id
	Details   string    `gorm:"type:text" json:"details"`
	IPAddress string    `gorm:"size:45" json:"ip_address"` // masked before insert
	UserAgent string    `gorm:"-" json:"-"`
	Browser   string    `gorm:"size:50" json:"browser"`
	OS        string    `gorm:"size:100" json:"os"`
	Country   string    `gorm:"size:100;default:'Unknown'" json:"country"`
	Timestamp time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"timestamp"`
}
