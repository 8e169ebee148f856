package models

import "time"

// Product represents a storefront catalog listing. Price and the outbound
// purchase link are stored as opaque text supplied by the admin panel.
type Product struct {
	ID           uint      `gorm:"column:id;primaryKey;autoIncrement"`
	Name         string    `gorm:"column:name;not null"`
	Price        string    `gorm:"column:price;not null"`
	Description  string    `gorm:"column:description"`
	ShopeeLink   string    `gorm:"column:shopee_link"`
	ViewsCount   int64     `gorm:"column:views_count;not null;default:0"`
	ShopeeClicks int64     `gorm:"column:shopee_clicks;not null;default:0"`
	IsFeatured   bool      `gorm:"column:is_featured;not null;default:false"`
	Media        []Media   `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName pins the legacy table name.
func (Product) TableName() string { return "products" }
