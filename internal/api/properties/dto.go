package properties

// ---------- requests

type PropertyImageInput struct {
	// Base64 content, optionally carrying a data URL prefix
	// ("data:image/png;base64,....").
	File    string `json:"file" binding:"required"`
	Enabled *bool  `json:"enabled"` // nil means enabled
}

type CreatePropertyRequest struct {
	Name         string  `json:"name" binding:"required"`
	Address      *string `json:"address"`
	Price        float64 `json:"price"`
	CodeInternal string  `json:"code_internal" binding:"required"`
	Year         *int    `json:"year"`
	OwnerID      uint    `json:"owner_id" binding:"required"`

	Images []PropertyImageInput `json:"images"`
}

type AddImageRequest struct {
	PropertyID uint   `json:"property_id" binding:"required"`
	File       string `json:"file" binding:"required"`
	Enabled    *bool  `json:"enabled"` // nil means enabled
}

type ChangePriceRequest struct {
	PropertyID uint    `json:"property_id" binding:"required"`
	NewPrice   float64 `json:"new_price"`
	Tax        float64 `json:"tax"`
	Note       string  `json:"note"`
	// Accepted for API compatibility; the trace row is always stamped
	// with the current date regardless of this value.
	DateSale *string `json:"date_sale"`
}

type UpdatePropertyRequest struct {
	PropertyID uint `json:"property_id" binding:"required"`

	// Partial update: string fields apply when non-blank, Year when
	// present, OwnerID and Price when > 0.
	Name         string  `json:"name"`
	Address      string  `json:"address"`
	CodeInternal string  `json:"code_internal"`
	Year         *int    `json:"year"`
	OwnerID      uint    `json:"owner_id"`
	Price        float64 `json:"price"`
}

type ListFiltersRequest struct {
	OwnerID      *uint    `json:"owner_id"`
	CodeInternal string   `json:"code_internal"`
	NameContains string   `json:"name_contains"`
	MinPrice     *float64 `json:"min_price"`
	MaxPrice     *float64 `json:"max_price"`
	MinYear      *int     `json:"min_year"`
	MaxYear      *int     `json:"max_year"`
	HasImages    *bool    `json:"has_images"`
	ImageEnabled *bool    `json:"image_enabled"`

	Page     int `json:"page"`
	PageSize int `json:"page_size"`
}

// ---------- responses

type OwnerSummaryDTO struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type PropertyImageDTO struct {
	ID      uint   `json:"id"`
	File    string `json:"file"` // base64
	Enabled bool   `json:"enabled"`
}

type PropertyDTO struct {
	ID           uint    `json:"id"`
	Name         string  `json:"name"`
	Address      *string `json:"address,omitempty"`
	Price        float64 `json:"price"`
	CodeInternal string  `json:"code_internal"`
	Year         *int    `json:"year,omitempty"`
	OwnerID      uint    `json:"owner_id"`

	Owner  *OwnerSummaryDTO   `json:"owner,omitempty"`
	Images []PropertyImageDTO `json:"images,omitempty"`
}
