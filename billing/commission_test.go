package billing_test

import (
	"testing"

	"grafttrack-backend/billing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestAllocateCommissions_SingleRep verifies the split for one
// assignment at 15% of a 7142.64 invoice.
// Invariant: houseCommission = pool - sum(commissionAmount), never negative.
func TestAllocateCommissions_SingleRep(t *testing.T) {
	alloc := billing.AllocateCommissions(7142.64, []billing.AssignmentDraft{
		{RepresentativeID: 1, CommissionRate: 15},
	}, 0.4)

	require.Len(t, alloc.Assignments, 1)
	assert.Equal(t, 1071.40, alloc.Assignments[0].CommissionAmount)
	assert.Equal(t, 2857.06, alloc.Pool)
	assert.Equal(t, 1785.66, alloc.HouseCommission)
	assert.False(t, alloc.OverAllocated)
}

// Rates summing past the pool are honored as entered; the house clamps
// at zero rather than going negative.
func TestAllocateCommissions_OverAllocatedClampsHouse(t *testing.T) {
	alloc := billing.AllocateCommissions(1000, []billing.AssignmentDraft{
		{RepresentativeID: 1, CommissionRate: 20},
		{RepresentativeID: 2, CommissionRate: 25},
	}, 0.4)

	require.Len(t, alloc.Assignments, 2)
	assert.Equal(t, 200.0, alloc.Assignments[0].CommissionAmount)
	assert.Equal(t, 250.0, alloc.Assignments[1].CommissionAmount)
	assert.Equal(t, 0.0, alloc.HouseCommission)
	assert.True(t, alloc.OverAllocated)
}

// With no assignments the entire pool is house commission.
func TestAllocateCommissions_EmptySetKeepsPool(t *testing.T) {
	alloc := billing.AllocateCommissions(1000, nil, 0.4)

	assert.Empty(t, alloc.Assignments)
	assert.Equal(t, 400.0, alloc.Pool)
	assert.Equal(t, 400.0, alloc.HouseCommission)
	assert.False(t, alloc.OverAllocated)
}

// Rates summing exactly to the pool leave the house with nothing but do
// not flag over-allocation.
func TestAllocateCommissions_ExactPool(t *testing.T) {
	alloc := billing.AllocateCommissions(1000, []billing.AssignmentDraft{
		{RepresentativeID: 1, CommissionRate: 25},
		{RepresentativeID: 2, CommissionRate: 15},
	}, 0.4)

	assert.Equal(t, 0.0, alloc.HouseCommission)
	assert.False(t, alloc.OverAllocated)
}

func TestAllocateCommissions_HouseNeverNegative(t *testing.T) {
	rateSets := [][]float64{
		{5}, {40}, {41}, {10, 10, 10, 10}, {39.99, 0.02}, {100},
	}
	for _, rates := range rateSets {
		drafts := make([]billing.AssignmentDraft, len(rates))
		for i, r := range rates {
			drafts[i] = billing.AssignmentDraft{RepresentativeID: uint(i + 1), CommissionRate: r}
		}
		alloc := billing.AllocateCommissions(7142.64, drafts, 0.4)
		assert.GreaterOrEqual(t, alloc.HouseCommission, 0.0, "rates %v", rates)
	}
}

// Pure function: two calls with identical inputs yield identical
// output, and the input drafts are never mutated.
func TestAllocateCommissions_Idempotent(t *testing.T) {
	drafts := []billing.AssignmentDraft{
		{RepresentativeID: 1, CommissionRate: 15},
		{RepresentativeID: 2, CommissionRate: 10},
	}
	a := billing.AllocateCommissions(7142.64, drafts, 0.4)
	b := billing.AllocateCommissions(7142.64, drafts, 0.4)

	assert.Equal(t, a, b)
	assert.Equal(t, 15.0, drafts[0].CommissionRate)
	assert.Equal(t, 10.0, drafts[1].CommissionRate)
}

func TestAllocateCommissions_DefaultPoolRate(t *testing.T) {
	alloc := billing.AllocateCommissions(1000, nil, 0)
	assert.Equal(t, 400.0, alloc.Pool)
}

// The legacy flat projection only exists for exactly one assignment.
func TestAllocation_PrimaryRep(t *testing.T) {
	one := billing.AllocateCommissions(1000, []billing.AssignmentDraft{
		{RepresentativeID: 7, CommissionRate: 15},
	}, 0.4)
	primary, ok := one.PrimaryRep()
	require.True(t, ok)
	assert.Equal(t, uint(7), primary.RepresentativeID)
	assert.Equal(t, 15.0, primary.CommissionRate)
	assert.Equal(t, 150.0, primary.CommissionAmount)

	_, ok = billing.AllocateCommissions(1000, nil, 0.4).PrimaryRep()
	assert.False(t, ok)

	two := billing.AllocateCommissions(1000, []billing.AssignmentDraft{
		{RepresentativeID: 1, CommissionRate: 10},
		{RepresentativeID: 2, CommissionRate: 10},
	}, 0.4)
	_, ok = two.PrimaryRep()
	assert.False(t, ok)
}
