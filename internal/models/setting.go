package models

// StoreSettings is the single-row table of runtime-adjustable storefront
// fields. Pricing knobs stay in process config so checkout math cannot drift
// mid-flight.
type StoreSettings struct {
	BaseModel
	StoreName       string `gorm:"default:Vendora" json:"store_name"`
	SupportEmail    string `json:"support_email"`
	SupportPhone    string `json:"support_phone"`
	Announcement    string `json:"announcement"`
	MaintenanceMode bool   `gorm:"default:false" json:"maintenance_mode"`
}
