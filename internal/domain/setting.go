package domain

import "time"

// Well-known settings keys.
const (
	SettingToken  = "authorization-token"
	SettingQuotes = "quotes"
)

// Setting is one key-value row in the settings store. Values are opaque
// strings; structured values (the quote cache) are stored as JSON.
type Setting struct {
	Key       string    `gorm:"type:text;primaryKey" json:"key"`
	Value     string    `gorm:"type:text" json:"value"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the database table name for Setting.
func (Setting) TableName() string {
	return "settings"
}
