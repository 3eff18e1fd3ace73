package billing_test

import (
	"testing"

	"grafttrack-backend/billing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog_Lookup(t *testing.T) {
	catalog := billing.NewCatalog([]billing.Product{
		{Manufacturer: "DermaGen", ProductName: "DermaGraft XL", PricePerUnitArea: 1190.44, BillingCode: "Q4101"},
		{Manufacturer: "DermaGen", ProductName: "DermaGraft XL", PricePerUnitArea: 950.00, BillingCode: "Q4102"},
	})
	require.Equal(t, 2, catalog.Len())

	p, err := catalog.Lookup(billing.ProductKey{
		Manufacturer: "DermaGen", ProductName: "DermaGraft XL", BillingCode: "Q4101",
	})
	require.NoError(t, err)
	assert.Equal(t, 1190.44, p.PricePerUnitArea)

	price, err := catalog.Price(billing.ProductKey{
		Manufacturer: "DermaGen", ProductName: "DermaGraft XL", BillingCode: "Q4102",
	})
	require.NoError(t, err)
	assert.Equal(t, 950.00, price)
}

// An unknown product is a data-integrity failure, never a silent zero
// price.
func TestCatalog_UnknownProduct(t *testing.T) {
	catalog := billing.NewCatalog(nil)

	_, err := catalog.Lookup(billing.ProductKey{Manufacturer: "Nowhere", ProductName: "Ghost", BillingCode: "Q0000"})
	assert.ErrorIs(t, err, billing.ErrUnknownProduct)

	price, err := catalog.Price(billing.ProductKey{Manufacturer: "Nowhere", ProductName: "Ghost", BillingCode: "Q0000"})
	assert.ErrorIs(t, err, billing.ErrUnknownProduct)
	assert.Zero(t, price)
}

// Same name under two manufacturers stays distinct; last duplicate of
// an identical key wins.
func TestCatalog_CompositeKey(t *testing.T) {
	catalog := billing.NewCatalog([]billing.Product{
		{Manufacturer: "DermaGen", ProductName: "Matrix", PricePerUnitArea: 100, BillingCode: "Q4101"},
		{Manufacturer: "BioHeal", ProductName: "Matrix", PricePerUnitArea: 200, BillingCode: "Q4101"},
		{Manufacturer: "BioHeal", ProductName: "Matrix", PricePerUnitArea: 250, BillingCode: "Q4101"},
	})

	a, err := catalog.Price(billing.ProductKey{Manufacturer: "DermaGen", ProductName: "Matrix", BillingCode: "Q4101"})
	require.NoError(t, err)
	assert.Equal(t, 100.0, a)

	b, err := catalog.Price(billing.ProductKey{Manufacturer: "BioHeal", ProductName: "Matrix", BillingCode: "Q4101"})
	require.NoError(t, err)
	assert.Equal(t, 250.0, b)
}
