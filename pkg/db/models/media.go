package models

import "time"

// Media type values derived from the declared upload MIME type.
const (
	MediaTypeImage = "image"
	MediaTypeVideo = "video"
)

// Media is one stored asset owned by a product. FilePath is the stable served
// path, never the original upload name. At most one row per product carries
// IsMain; the creation workflow and SetMain keep that invariant.
type Media struct {
	ID        uint      `gorm:"column:id;primaryKey;autoIncrement"`
	ProductID uint      `gorm:"column:product_id;not null;index"`
	FilePath  string    `gorm:"column:file_path;not null"`
	MediaType string    `gorm:"column:media_type;not null"`
	IsMain    bool      `gorm:"column:is_main;not null;default:false"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

// TableName pins the legacy table name.
func (Media) TableName() string { return "media" }
