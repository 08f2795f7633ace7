package dto

import (
	"time"

	"github.com/spec-kit/clothing-store/internal/domain"
)

// ProductRequest is the writable part of a product. Slug, ratings and
// timestamps are server-managed.
type ProductRequest struct {
	Name                string                 `json:"name"`
	Description         string                 `json:"description"`
	Price               float64                `json:"price"`
	DiscountedPrice     float64                `json:"discountedPrice"`
	DiscountPercentage  float64                `json:"discountPercentage"`
	DiscountExpire      *time.Time             `json:"discountExpire"`
	Category            string                 `json:"category"`
	Subcategories       []string               `json:"subcategories"`
	Tags                []string               `json:"tags"`
	SKU                 string                 `json:"sku"`
	Images              []domain.ProductImage  `json:"images"`
	Videos              []domain.ProductVideo  `json:"videos"`
	Inventory           int                    `json:"inventory"`
	MinPurchaseQuantity int                    `json:"minPurchaseQuantity"`
	MaxPurchaseQuantity *int                   `json:"maxPurchaseQuantity"`
	Variants            []domain.Variant       `json:"variants"`
	Specifications      []domain.Specification `json:"specifications"`
	Seller              string                 `json:"seller"`
	Featured            bool                   `json:"featured"`
	IsNew               *bool                  `json:"isNew"`
	IsBestseller        bool                   `json:"isBestseller"`
	ShippingInfo        *domain.ShippingInfo   `json:"shippingInfo"`
	Status              domain.ProductStatus   `json:"status"`
	Language            domain.ProductLanguage `json:"language"`
}

// ToDomain maps the request onto a product with catalog defaults applied.
func (r ProductRequest) ToDomain() *domain.Product {
	p := domain.NewProduct()
	p.Name = r.Name
	p.Description = r.Description
	p.Price = r.Price
	p.DiscountedPrice = r.DiscountedPrice
	p.DiscountPercentage = r.DiscountPercentage
	p.DiscountExpire = r.DiscountExpire
	p.CategoryID = r.Category
	p.Subcategories = r.Subcategories
	p.Tags = r.Tags
	p.SKU = r.SKU
	p.Images = r.Images
	p.Videos = r.Videos
	p.Inventory = r.Inventory
	if r.MinPurchaseQuantity != 0 {
		p.MinPurchaseQuantity = r.MinPurchaseQuantity
	}
	p.MaxPurchaseQuantity = r.MaxPurchaseQuantity
	p.Variants = r.Variants
	p.Specifications = r.Specifications
	p.SellerID = r.Seller
	p.Featured = r.Featured
	if r.IsNew != nil {
		p.IsNew = *r.IsNew
	}
	p.IsBestseller = r.IsBestseller
	p.ShippingInfo = r.ShippingInfo
	if r.Status != "" {
		p.Status = r.Status
	}
	if r.Language != "" {
		p.Language = r.Language
	}
	return p
}

// Pagination describes a page of results.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}
