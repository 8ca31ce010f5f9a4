package models

import "gorm.io/gorm"

// Tables returns every table in registration order. Global comes first:
// every other table's version stamp is stored in it. Referenced tables come
// before the tables that hold foreign keys to them.
func Tables() []Table {
	return []Table{
		NewTable("Global", &Global{}),
		NewTable("User", &User{},
			Step(1, RenameColumn(&User{}, "username", "Name")),
		),
		NewTable("PasswordIdentity", &PasswordIdentity{}),
		NewTable("AdminLog", &AdminLog{}),
		NewTable("ContentClass", &ContentClass{}),
		NewTable("Asset", &Asset{},
			Step(1,
				AddColumn(&Asset{}, "ContentHash"),
				CreateIndex(&Asset{}, "ContentHash"),
			),
			Step(2,
				AddColumn(&Asset{}, "Width"),
				AddColumn(&Asset{}, "Height"),
			),
			Step(3, AddColumn(&Asset{}, "Metadata")),
		),
		NewTable("Section", &Section{},
			Step(1, AddColumn(&Section{}, "Theme")),
			Step(2, AddColumn(&Section{}, "SplashAssetID")),
		),
		NewTable("Page", &Page{},
			Step(1,
				AddColumn(&Page{}, "Description"),
				AddColumn(&Page{}, "CreatedAt"),
				Transform(backfillPageCreatedAt),
			),
			Step(2,
				AddColumn(&Page{}, "PublishStatus"),
				Transform(backfillPublishStatus),
			),
			Step(3, AddColumn(&Page{}, "Theme")),
			Step(4,
				CreateIndex(&Page{}, "idx_pages_archive_order"),
				CreateIndex(&Page{}, "idx_pages_section_order"),
			),
		),
		NewTable("PageContent", &PageContent{},
			Step(1,
				AddColumn(&PageContent{}, "Caption"),
				AddColumn(&PageContent{}, "LinkURL"),
			),
			Step(2, RenameColumn(&PageContent{}, "markup", "CustomMarkup")),
		),
		NewTable("RenderedAsset", &RenderedAsset{}),
		NewTable("Tag", &Tag{}),
		NewTable("TaggedPage", &TaggedPage{}),
		NewTable("PageBookmark", &PageBookmark{}),
	}
}

// Pages that predate created_at take their publish date.
func backfillPageCreatedAt(tx *gorm.DB) error {
	return tx.Table("pages").
		Where("created_at IS NULL").
		Update("created_at", gorm.Expr("publish_date")).Error
}

// Before publish_status existed, is_visible alone meant published.
func backfillPublishStatus(tx *gorm.DB) error {
	return tx.Table("pages").
		Where("is_visible = ?", true).
		Update("publish_status", PublishStatusPublished).Error
}
