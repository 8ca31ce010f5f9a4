package models

import "time"

// SchemaVersionKeyPrefix prefixes the globals row holding a table's schema version.
const SchemaVersionKeyPrefix = "schemaVersion."

// SessionKeyName is the globals row holding the site session signing key.
const SessionKeyName = "sessionKey"

// SchemaVersionKey returns the globals key for the named table.
func SchemaVersionKey(tableName string) string {
	return SchemaVersionKeyPrefix + tableName
}

// Global is a site-wide setting: schema version stamps and generic config.
type Global struct {
	ID          uint    `gorm:"primaryKey;autoIncrement"`
	Key         string  `gorm:"size:191;not null;uniqueIndex"`
	IntValue    *int    `json:",omitempty"`
	StringValue *string `gorm:"size:1024" json:",omitempty"`
}

// User is an account on the site. Credentials live in PasswordIdentity.
type User struct {
	ID        uint   `gorm:"primaryKey;autoIncrement"`
	Name      string `gorm:"size:191;not null;uniqueIndex"`
	IsAdmin   bool   `gorm:"not null;default:false"`
	CreatedAt time.Time
}

// PasswordIdentity is the password login for exactly one User.
type PasswordIdentity struct {
	ID             uint       `gorm:"primaryKey;autoIncrement"`
	UserID         uint       `gorm:"not null;uniqueIndex"`
	User           *User      `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Username       string     `gorm:"size:191;not null;uniqueIndex"`
	Email          string     `gorm:"size:191;not null;uniqueIndex"`
	PasswordHash   string     `gorm:"size:255;not null" json:"-"`
	ResetToken     *string    `gorm:"size:64;index" json:"-"`
	ResetExpiresAt *time.Time `json:"-"`
}

// AdminLog is an append-only record of an administrative action.
type AdminLog struct {
	ID          uint      `gorm:"primaryKey;autoIncrement"`
	Timestamp   time.Time `gorm:"not null;index:idx_admin_logs_user_time,priority:2"`
	UserID      uint      `gorm:"not null;index:idx_admin_logs_user_time,priority:1"`
	User        *User     `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	IP          string    `gorm:"size:64;not null"`
	Path        string    `gorm:"size:1024;not null"`
	Description string    `gorm:"type:text"`
	SessionID   string    `gorm:"size:64;not null;default:''"`
}

// TableName overrides the table name for Global
func (Global) TableName() string {
	return "globals"
}

// TableName overrides the table name for User
func (User) TableName() string {
	return "users"
}

// TableName overrides the table name for PasswordIdentity
func (PasswordIdentity) TableName() string {
	return "password_identities"
}

// TableName overrides the table name for AdminLog
func (AdminLog) TableName() string {
	return "admin_logs"
}
