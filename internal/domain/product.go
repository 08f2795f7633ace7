package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"

	"github.com/spec-kit/clothing-store/pkg/validator"
)

// ProductStatus represents catalog lifecycle states.
type ProductStatus string

const (
	ProductStatusActive       ProductStatus = "active"
	ProductStatusDraft        ProductStatus = "draft"
	ProductStatusOutOfStock   ProductStatus = "outOfStock"
	ProductStatusDiscontinued ProductStatus = "discontinued"
)

// ProductLanguage is the language a listing is written in.
type ProductLanguage string

const (
	LanguageEnglish ProductLanguage = "en"
	LanguagePersian ProductLanguage = "fa"
)

const skuPrefixLen = 3

// ProductImage is a picture attached to a product.
type ProductImage struct {
	URL        string `json:"url"`
	Alt        string `json:"alt,omitempty"`
	IsFeatured bool   `json:"isFeatured"`
}

// ProductVideo is a video attached to a product.
type ProductVideo struct {
	URL   string `json:"url"`
	Title string `json:"title,omitempty"`
}

// VariantOption is a single choice within a variant, e.g. "XL".
type VariantOption struct {
	Value           string   `json:"value"`
	AdditionalPrice float64  `json:"additionalPrice"`
	Inventory       int      `json:"inventory" validate:"gte=0"`
	SKU             string   `json:"sku,omitempty"`
	Images          []string `json:"images,omitempty"`
}

// Variant groups options along one axis, e.g. "Size".
type Variant struct {
	Name    string          `json:"name" validate:"required"`
	Options []VariantOption `json:"options" validate:"dive"`
}

// Specification is a free-form name/value attribute.
type Specification struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Dimensions of a shipped parcel.
type Dimensions struct {
	Length float64 `json:"length"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// ShippingInfo describes how a product ships.
type ShippingInfo struct {
	Weight                float64    `json:"weight"`
	Dimensions            Dimensions `json:"dimensions"`
	ShippingFee           float64    `json:"shippingFee"`
	EstimatedDeliveryTime string     `json:"estimatedDeliveryTime,omitempty"`
}

// Product is a catalog item listed by a seller.
type Product struct {
	ID                  string          `json:"id"`
	Name                string          `json:"name" validate:"required,max=100"`
	Slug                string          `json:"slug"`
	Description         string          `json:"description" validate:"required,max=2000"`
	Price               float64         `json:"price" validate:"gte=0"`
	DiscountedPrice     float64         `json:"discountedPrice" validate:"gte=0"`
	DiscountPercentage  float64         `json:"discountPercentage" validate:"gte=0,lte=100"`
	DiscountExpire      *time.Time      `json:"discountExpire,omitempty"`
	CategoryID          string          `json:"category" validate:"required"`
	Subcategories       []string        `json:"subcategories"`
	Tags                []string        `json:"tags"`
	SKU                 string          `json:"sku"`
	Images              []ProductImage  `json:"images" validate:"dive"`
	Videos              []ProductVideo  `json:"videos" validate:"dive"`
	Inventory           int             `json:"inventory" validate:"gte=0"`
	MinPurchaseQuantity int             `json:"minPurchaseQuantity" validate:"gte=1"`
	MaxPurchaseQuantity *int            `json:"maxPurchaseQuantity,omitempty" validate:"omitempty,gtefield=MinPurchaseQuantity"`
	Variants            []Variant       `json:"variants" validate:"dive"`
	Specifications      []Specification `json:"specifications"`
	SellerID            string          `json:"seller" validate:"required"`
	RatingsAverage      float64         `json:"ratingsAverage" validate:"gte=0,lte=5"`
	RatingsQuantity     int             `json:"ratingsQuantity" validate:"gte=0"`
	Featured            bool            `json:"featured"`
	IsNew               bool            `json:"isNew"`
	IsBestseller        bool            `json:"isBestseller"`
	ShippingInfo        *ShippingInfo   `json:"shippingInfo,omitempty"`
	Status              ProductStatus   `json:"status" validate:"oneof=active draft outOfStock discontinued"`
	Language            ProductLanguage `json:"language" validate:"oneof=en fa"`
	CreatedAt           time.Time       `json:"createdAt"`
	UpdatedAt           time.Time       `json:"updatedAt"`
}

const (
	skuAlphabet  = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	skuSuffixLen = 5
)

// newSKUSuffix returns five upper-case base36 characters drawn from the
// random bytes of a v4 UUID.
var newSKUSuffix = func() string {
	id := uuid.New()
	suffix := make([]byte, skuSuffixLen)
	for i := range suffix {
		suffix[i] = skuAlphabet[int(id[i])%len(skuAlphabet)]
	}
	return string(suffix)
}

// NewProduct returns a product with catalog defaults applied.
func NewProduct() *Product {
	return &Product{
		MinPurchaseQuantity: 1,
		IsNew:               true,
		Status:              ProductStatusActive,
		Language:            LanguageEnglish,
	}
}

// PrepareForSave runs the pre-save hooks: the slug is always derived from the
// name, and a SKU is generated when none was supplied.
func (p *Product) PrepareForSave() {
	p.Name = strings.TrimSpace(p.Name)
	if p.Status == "" {
		p.Status = ProductStatusActive
	}
	if p.Language == "" {
		p.Language = LanguageEnglish
	}
	if p.MinPurchaseQuantity == 0 {
		p.MinPurchaseQuantity = 1
	}
	p.Slug = slug.Make(p.Name)
	if p.SKU == "" {
		p.SKU = GenerateSKU(p.CategoryID)
	}
}

// Validate checks the product against its schema constraints.
func (p *Product) Validate() error {
	return validator.Validate(p)
}

// GenerateSKU builds "<category prefix>-<random suffix>".
func GenerateSKU(categoryID string) string {
	prefix := categoryID
	if r := []rune(categoryID); len(r) > skuPrefixLen {
		prefix = string(r[:skuPrefixLen])
	}
	return prefix + "-" + newSKUSuffix()
}

// OwnedBy reports whether the product was listed by userID.
func (p *Product) OwnedBy(userID string) bool {
	return p.SellerID == userID
}
