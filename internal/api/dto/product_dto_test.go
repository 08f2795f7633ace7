package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spec-kit/clothing-store/internal/domain"
)

func TestProductRequest_ToDomainDefaults(t *testing.T) {
	p := ProductRequest{Name: "Tee", Category: "tshirts", Price: 10}.ToDomain()

	assert.Equal(t, "tshirts", p.CategoryID)
	assert.Equal(t, 1, p.MinPurchaseQuantity)
	assert.True(t, p.IsNew)
	assert.Equal(t, domain.ProductStatusActive, p.Status)
	assert.Equal(t, domain.LanguageEnglish, p.Language)
}

func TestProductRequest_ToDomainOverrides(t *testing.T) {
	isNew := false
	p := ProductRequest{
		Name:                "Tee",
		MinPurchaseQuantity: 2,
		IsNew:               &isNew,
		Status:              domain.ProductStatusDraft,
		Language:            domain.LanguagePersian,
		Seller:              "seller-1",
	}.ToDomain()

	assert.Equal(t, 2, p.MinPurchaseQuantity)
	assert.False(t, p.IsNew)
	assert.Equal(t, domain.ProductStatusDraft, p.Status)
	assert.Equal(t, domain.LanguagePersian, p.Language)
	assert.Equal(t, "seller-1", p.SellerID)
}
