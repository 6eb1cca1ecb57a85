package model

import (
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

type Category struct {
	BaseModel
	Name        string `gorm:"type:varchar(100);not null;index" json:"name"`
	Slug        string `gorm:"type:varchar(120);index" json:"slug"`
	Description string `gorm:"type:text" json:"description"`
	IsActive    bool   `gorm:"not null;index" json:"is_active"`

	Products []Product `gorm:"foreignKey:CategoryID" json:"-"`
}

func (c *Category) BeforeSave(tx *gorm.DB) error {
	c.Slug = slug.Make(c.Name)
	return nil
}

// CategoryWithCount is a category listing row with its active product count.
type CategoryWithCount struct {
	Category
	ProductsCount int64 `json:"products_count"`
}
