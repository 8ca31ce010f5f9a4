package models

import "time"

// Asset is a stored file. ContentHash is the hex sha256 of the bytes.
type Asset struct {
	ID          uint   `gorm:"primaryKey;autoIncrement"`
	UserID      uint   `gorm:"not null;index"`
	User        *User  `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	FilePath    string `gorm:"size:1024;not null"`
	ContentType string `gorm:"size:191;not null;default:'application/octet-stream'"`
	ContentHash string `gorm:"size:64;not null;default:'';index"`
	Width       *int
	Height      *int
	Metadata    JSON
	CreatedAt   time.Time
}

// RenderedAsset is one output of the rendering pipeline for an Asset.
type RenderedAsset struct {
	ID       uint     `gorm:"primaryKey;autoIncrement"`
	AssetID  uint     `gorm:"not null;uniqueIndex:idx_rendered_assets_variant,priority:1"`
	Asset    *Asset   `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	SizeMode SizeMode `gorm:"not null;default:0;uniqueIndex:idx_rendered_assets_variant,priority:2"`
	Width    int      `gorm:"not null;uniqueIndex:idx_rendered_assets_variant,priority:3"`
	Height   int      `gorm:"not null;uniqueIndex:idx_rendered_assets_variant,priority:4"`
	Scale    int      `gorm:"not null;default:1;uniqueIndex:idx_rendered_assets_variant,priority:5"`
	FilePath string   `gorm:"size:1024;not null"`
	Params   JSON
}

// TableName overrides the table name for Asset
func (Asset) TableName() string {
	return "assets"
}

// TableName overrides the table name for RenderedAsset
func (RenderedAsset) TableName() string {
	return "rendered_assets"
}
