package gorm

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"startup-hub/backend/internal/constants"
)

type User struct {
	ID        string  `gorm:"column:id;primaryKey;type:uuid"`
	FirstName *string `gorm:"column:first_name;type:varchar(100)"`
	LastName  *string `gorm:"column:last_name;type:varchar(100)"`
	Email     string  `gorm:"column:email;uniqueIndex;not null"`
	Password  string  `gorm:"column:password;not null"`
	Link      *string `gorm:"column:link;type:text"`
	Pfp       *string `gorm:"column:pfp;type:text"`

	ConfirmCodeID          *string `gorm:"column:confirm_code_id;type:uuid"`
	PasswordRecoveryCodeID *string `gorm:"column:password_recovery_code_id;type:uuid"`
	IsConfirmed            bool    `gorm:"column:is_confirmed;default:false"`

	Role       constants.UserRole   `gorm:"column:role;type:varchar(20);default:user"`
	ColorTheme constants.ColorTheme `gorm:"column:color_theme;type:varchar(10);default:LIGHT"`

	// Last-action timestamps read by the time-limit gate. Only written when
	// the gated mutation itself succeeds.
	EditProfileLimit *time.Time `gorm:"column:edit_profile_limit"`
	StartupLimit     *time.Time `gorm:"column:startup_limit"`
	ChangePfpLimit   *time.Time `gorm:"column:change_pfp_limit"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`

	// Relationships
	Ideas []Idea `gorm:"foreignKey:AuthorID"`
}

// TableName specifies the table name for GORM
func (User) TableName() string {
	return "users"
}

// BeforeCreate assigns a uuid primary key so sqlite test databases behave
// the same as Postgres.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return nil
}
