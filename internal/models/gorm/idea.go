package gorm

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Idea is the startup-idea aggregate. Members and Requests are mutated only
// through the idea service operations, never by direct field assignment from
// handlers.
type Idea struct {
	ID          string `gorm:"column:id;primaryKey;type:uuid"`
	Name        string `gorm:"column:name;type:varchar(50);not null"`
	Description string `gorm:"column:description;type:varchar(1000);not null"`
	ImageURL    string `gorm:"column:image_url;type:text"`
	UsefulLink  string `gorm:"column:useful_link;type:text"`

	// Three fixed optional progress-link slots.
	FirstLink  *string `gorm:"column:first_link;type:text"`
	SecondLink *string `gorm:"column:second_link;type:text"`
	ThirdLink  *string `gorm:"column:third_link;type:text"`

	LastEdited *time.Time `gorm:"column:last_edited"`

	AuthorID string `gorm:"column:author_id;type:uuid;not null;index"`
	Author   User   `gorm:"foreignKey:AuthorID"`

	Members  []User `gorm:"many2many:startup_memberships;joinForeignKey:StartupID;joinReferences:UserID"`
	Requests []User `gorm:"many2many:startup_requests;joinForeignKey:StartupID;joinReferences:UserID"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (Idea) TableName() string {
	return "ideas"
}

func (i *Idea) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.New().String()
	}
	return nil
}

// HasMember reports whether the user id is in the members set.
func (i *Idea) HasMember(userID string) bool {
	for _, m := range i.Members {
		if m.ID == userID {
			return true
		}
	}
	return false
}

// HasRequest reports whether the user id is in the pending-requests set.
func (i *Idea) HasRequest(userID string) bool {
	for _, r := range i.Requests {
		if r.ID == userID {
			return true
		}
	}
	return false
}
