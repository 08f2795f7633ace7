package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/clothing-store/internal/domain"
)

// ProductRepository handles persistence for catalog products.
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	Update(ctx context.Context, product *domain.Product) error
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	List(ctx context.Context, limit, offset int) ([]domain.Product, int, error)
	Delete(ctx context.Context, id string) error
}

const productColumns = `id, name, slug, description, price, discounted_price, discount_percentage,
        discount_expire, category_id, subcategories, tags, sku, images, videos, inventory,
        min_purchase_quantity, max_purchase_quantity, variants, specifications, seller_id,
        ratings_average, ratings_quantity, featured, is_new, is_bestseller, shipping_info,
        status, language, created_at, updated_at`

type productRepository struct {
	db DBTX
}

// NewProductRepository instantiates the repository.
func NewProductRepository(db DBTX) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(ctx context.Context, p *domain.Product) error {
	const query = `
        INSERT INTO products (name, slug, description, price, discounted_price, discount_percentage,
            discount_expire, category_id, subcategories, tags, sku, images, videos, inventory,
            min_purchase_quantity, max_purchase_quantity, variants, specifications, seller_id,
            ratings_average, ratings_quantity, featured, is_new, is_bestseller, shipping_info,
            status, language)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22,$23,$24,$25,$26,$27)
        RETURNING id, created_at, updated_at`

	err := r.db.QueryRow(ctx, query, productArgs(p)...).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	return translate(err)
}

func (r *productRepository) Update(ctx context.Context, p *domain.Product) error {
	const query = `
        UPDATE products SET name=$1, slug=$2, description=$3, price=$4, discounted_price=$5,
            discount_percentage=$6, discount_expire=$7, category_id=$8, subcategories=$9, tags=$10,
            sku=$11, images=$12, videos=$13, inventory=$14, min_purchase_quantity=$15,
            max_purchase_quantity=$16, variants=$17, specifications=$18, seller_id=$19,
            ratings_average=$20, ratings_quantity=$21, featured=$22, is_new=$23, is_bestseller=$24,
            shipping_info=$25, status=$26, language=$27, updated_at=NOW()
        WHERE id=$28
        RETURNING updated_at`

	args := append(productArgs(p), p.ID)
	err := r.db.QueryRow(ctx, query, args...).Scan(&p.UpdatedAt)
	return translate(err)
}

func (r *productRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id=$1`
	return scanProduct(r.db.QueryRow(ctx, query, id))
}

// List returns one page of products, newest first, and the total count.
func (r *productRepository) List(ctx context.Context, limit, offset int) ([]domain.Product, int, error) {
	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM products`).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit, offset = pageBounds(limit, offset)
	query := `SELECT ` + productColumns + ` FROM products` +
		fmt.Sprintf(" ORDER BY created_at DESC LIMIT %d OFFSET %d", limit, offset)

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	result := []domain.Product{}
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, 0, err
		}
		result = append(result, *product)
	}
	return result, total, rows.Err()
}

func (r *productRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM products WHERE id=$1`, id)
	if err != nil {
		return translate(err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func productArgs(p *domain.Product) []any {
	return []any{
		p.Name,
		p.Slug,
		p.Description,
		p.Price,
		p.DiscountedPrice,
		p.DiscountPercentage,
		p.DiscountExpire,
		p.CategoryID,
		p.Subcategories,
		p.Tags,
		p.SKU,
		p.Images,
		p.Videos,
		p.Inventory,
		p.MinPurchaseQuantity,
		p.MaxPurchaseQuantity,
		p.Variants,
		p.Specifications,
		p.SellerID,
		p.RatingsAverage,
		p.RatingsQuantity,
		p.Featured,
		p.IsNew,
		p.IsBestseller,
		p.ShippingInfo,
		p.Status,
		p.Language,
	}
}

func scanProduct(row pgx.Row) (*domain.Product, error) {
	var p domain.Product
	if err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Slug,
		&p.Description,
		&p.Price,
		&p.DiscountedPrice,
		&p.DiscountPercentage,
		&p.DiscountExpire,
		&p.CategoryID,
		&p.Subcategories,
		&p.Tags,
		&p.SKU,
		&p.Images,
		&p.Videos,
		&p.Inventory,
		&p.MinPurchaseQuantity,
		&p.MaxPurchaseQuantity,
		&p.Variants,
		&p.Specifications,
		&p.SellerID,
		&p.RatingsAverage,
		&p.RatingsQuantity,
		&p.Featured,
		&p.IsNew,
		&p.IsBestseller,
		&p.ShippingInfo,
		&p.Status,
		&p.Language,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		return nil, translate(err)
	}
	return &p, nil
}
