package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/clothing-store/internal/domain"
	"github.com/spec-kit/clothing-store/internal/repository"
	apperrors "github.com/spec-kit/clothing-store/pkg/util"
)

func newMockPool(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	pool, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	return pool
}

// productInsertArgs matches the column values of a product insert.
func productInsertArgs() []any {
	args := make([]any, 27)
	for i := range args {
		args[i] = pgxmock.AnyArg()
	}
	return args
}

var malformedUUID = &pgconn.PgError{Code: "22P02", Message: `invalid input syntax for type uuid: "abc"`}

func TestProductGet_MalformedIDIsNotFound(t *testing.T) {
	pool := newMockPool(t)
	pool.ExpectQuery("SELECT .+ FROM products WHERE id=").WithArgs("abc").WillReturnError(malformedUUID)
	svc := NewProductService(ProductDependencies{ProductRepo: repository.NewProductRepository(pool)})

	_, err := svc.Get(context.Background(), "abc")

	assert.Equal(t, http.StatusNotFound, statusOf(t, err))
	assert.NoError(t, pool.ExpectationsWereMet())
}

func TestUserGetAndDelete_MalformedIDIsNotFound(t *testing.T) {
	pool := newMockPool(t)
	pool.ExpectQuery("SELECT .+ FROM users WHERE id=").WithArgs("abc").WillReturnError(malformedUUID)
	pool.ExpectQuery("SELECT .+ FROM users WHERE id=").WithArgs("abc").WillReturnError(malformedUUID)
	svc := NewUserService(repository.NewUserRepository(pool), nil, nil)

	_, err := svc.Get(context.Background(), "abc")
	assert.Equal(t, http.StatusNotFound, statusOf(t, err))

	err = svc.Delete(context.Background(), identity("admin", domain.RoleAdmin), "abc")
	assert.Equal(t, http.StatusNotFound, statusOf(t, err))
	assert.NoError(t, pool.ExpectationsWereMet())
}

func TestProductCreate_UnknownSellerIsValidationError(t *testing.T) {
	for name, pgErr := range map[string]*pgconn.PgError{
		"missing seller":   {Code: "23503", ConstraintName: "products_seller_id_fkey"},
		"malformed seller": malformedUUID,
	} {
		t.Run(name, func(t *testing.T) {
			pool := newMockPool(t)
			pool.ExpectQuery("INSERT INTO products").WithArgs(productInsertArgs()...).WillReturnError(pgErr)
			svc := NewProductService(ProductDependencies{ProductRepo: repository.NewProductRepository(pool)})
			p := sampleProduct("Basic Tee")
			p.SellerID = "no-such-seller"

			_, err := svc.Create(context.Background(), identity("admin-1", domain.RoleAdmin), p)

			de := apperrors.ToDomainError(err)
			assert.Equal(t, http.StatusBadRequest, de.HTTPStatus)
			assert.Contains(t, de.Details, "seller")
			assert.NoError(t, pool.ExpectationsWereMet())
		})
	}
}
