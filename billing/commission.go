package billing

import "grafttrack-backend/utils"

// AssignmentDraft is a rep/rate pair as entered by an admin, before any
// amount has been computed.
type AssignmentDraft struct {
	RepresentativeID uint    `json:"representative_id"`
	CommissionRate   float64 `json:"commission_rate"` // percentage, e.g. 15 for 15%
}

// AllocatedAssignment is a draft with its computed commission amount.
type AllocatedAssignment struct {
	RepresentativeID uint    `json:"representative_id"`
	CommissionRate   float64 `json:"commission_rate"`
	CommissionAmount float64 `json:"commission_amount"`
}

// Allocation is the full result of one commission split. It is always
// produced as a whole: callers never see a partially recomputed set.
type Allocation struct {
	Assignments     []AllocatedAssignment `json:"assignments"`
	Pool            float64               `json:"pool"`
	HouseCommission float64               `json:"house_commission"`
	OverAllocated   bool                  `json:"over_allocated"`
}

// AllocateCommissions splits the fixed commission pool of an invoice
// across the given assignments and computes the residual house
// commission. poolRate <= 0 falls back to DefaultPoolRate.
//
// Rep amounts are honored as entered even when the rate sum exceeds the
// pool; the house residual clamps at zero and OverAllocated is set so
// the caller can flag it. Adding, removing, or editing any assignment
// means calling this again with the full set: the house commission
// depends on every assignment, so there is no incremental path.
func AllocateCommissions(invoiceAmount float64, drafts []AssignmentDraft, poolRate float64) Allocation {
	invoiceAmount = sanitize(invoiceAmount)
	if poolRate <= 0 {
		poolRate = DefaultPoolRate
	}

	pool := utils.Round2(invoiceAmount * poolRate)

	assignments := make([]AllocatedAssignment, 0, len(drafts))
	var allocated float64
	for _, d := range drafts {
		amount := utils.Round2(invoiceAmount * sanitize(d.CommissionRate) / 100)
		allocated += amount
		assignments = append(assignments, AllocatedAssignment{
			RepresentativeID: d.RepresentativeID,
			CommissionRate:   d.CommissionRate,
			CommissionAmount: amount,
		})
	}
	allocated = utils.Round2(allocated)

	house := utils.Round2(pool - allocated)
	over := house < 0
	if over {
		house = 0
	}

	return Allocation{
		Assignments:     assignments,
		Pool:            pool,
		HouseCommission: house,
		OverAllocated:   over,
	}
}

// PrimaryRep exposes the single assignment as flat legacy fields. The
// old schema carried one salesRep/salesRepCommission column pair; some
// downstream consumers still read that shape. The projection only
// exists when exactly one assignment is present.
func (a Allocation) PrimaryRep() (AllocatedAssignment, bool) {
	if len(a.Assignments) != 1 {
		return AllocatedAssignment{}, false
	}
	return a.Assignments[0], true
}
