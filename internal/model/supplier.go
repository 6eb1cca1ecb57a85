package model

type Supplier struct {
	BaseModel
	Name          string `gorm:"type:varchar(100);not null;index" json:"name"`
	ContactPerson string `gorm:"type:varchar(100)" json:"contact_person"`
	Email         string `gorm:"type:varchar(100);index" json:"email"`
	Phone         string `gorm:"type:varchar(20)" json:"phone"`
	Address       string `gorm:"type:text" json:"address"`
	TaxID         string `gorm:"type:varchar(20)" json:"tax_id"`
	IsActive      bool   `gorm:"not null;index" json:"is_active"`

	Products []Product `gorm:"foreignKey:SupplierID" json:"-"`
}

// SupplierWithCount is a supplier listing row with its active product count.
type SupplierWithCount struct {
	Supplier
	ProductsCount int64 `json:"products_count"`
}
