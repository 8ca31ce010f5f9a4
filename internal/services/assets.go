// assets.go
//
// A content publishing site with a versioned schema and archive navigation
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of publishdb.
// publishdb is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// publishdb is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with publishdb.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/localnerve/publishdb/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AssetInput describes an uploaded file.
type AssetInput struct {
	UserID      uint
	FilePath    string
	ContentType string
	Content     []byte
	Width       *int
	Height      *int
	Metadata    map[string]interface{}
}

// StoreAsset records an upload. A user uploading identical bytes twice gets
// the existing asset back; created is false in that case.
func StoreAsset(ctx context.Context, db *gorm.DB, in AssetInput) (asset models.Asset, created bool, err error) {
	sum := sha256.Sum256(in.Content)
	hash := hex.EncodeToString(sum[:])

	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing []models.Asset
		if err := tx.Where(&models.Asset{UserID: in.UserID, ContentHash: hash}).
			Limit(1).Find(&existing).Error; err != nil {
			return err
		}
		if len(existing) > 0 {
			asset = existing[0]
			return nil
		}

		var metadata models.JSON
		if len(in.Metadata) > 0 {
			m, err := models.NewJSON(in.Metadata)
			if err != nil {
				return fmt.Errorf("asset metadata: %w", err)
			}
			metadata = m
		}
		asset = models.Asset{
			UserID:      in.UserID,
			FilePath:    in.FilePath,
			ContentType: in.ContentType,
			ContentHash: hash,
			Width:       in.Width,
			Height:      in.Height,
			Metadata:    metadata,
		}
		if asset.ContentType == "" {
			asset.ContentType = "application/octet-stream"
		}
		created = true
		return tx.Create(&asset).Error
	})
	return asset, created, err
}

// AddRendition records a rendered variant of an asset, replacing the file
// path of an identical variant.
func AddRendition(ctx context.Context, db *gorm.DB, r models.RenderedAsset) (models.RenderedAsset, error) {
	if !r.SizeMode.Valid() {
		return r, fmt.Errorf("%w: %d", models.ErrUnknownSizeMode, int(r.SizeMode))
	}
	if r.Scale == 0 {
		r.Scale = 1
	}
	err := db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "asset_id"}, {Name: "size_mode"}, {Name: "width"}, {Name: "height"}, {Name: "scale"},
		},
		DoUpdates: clause.AssignmentColumns([]string{"file_path", "params"}),
	}).Create(&r).Error
	return r, err
}

// Renditions lists the rendered variants of an asset.
func Renditions(ctx context.Context, db *gorm.DB, assetID uint) ([]models.RenderedAsset, error) {
	var out []models.RenderedAsset
	err := db.WithContext(ctx).
		Where("asset_id = ?", assetID).
		Order("size_mode").Order("width").Order("height").Order("scale").
		Find(&out).Error
	return out, err
}
