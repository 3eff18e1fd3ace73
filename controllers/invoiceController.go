package controllers

import (
	"encoding/json"
	"errors"
	"time"

	"grafttrack-backend/billing"
	"grafttrack-backend/database"
	"grafttrack-backend/middlewares"
	"grafttrack-backend/models"
	"grafttrack-backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
)

func GetInvoices(c *fiber.Ctx) error {
	var invoices []models.Invoice

	tenantDB, err := database.GetTenantDB(c)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{
			"message": "Database error",
			"error":   err.Error(),
		})
	}

	limit := utils.ParseIntDefault(c.Query("limit"), 100)
	offset := utils.ParseIntDefault(c.Query("offset"), 0)

	q := tenantDB.Preload("Assignments").Preload("Treatment")
	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}
	if err := q.Order("invoice_date DESC").Limit(limit).Offset(offset).Find(&invoices).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{
			"message": "Could not fetch invoices",
			"error":   err.Error(),
		})
	}

	now := time.Now()
	out := make([]fiber.Map, 0, len(invoices))
	for _, inv := range invoices {
		out = append(out, invoiceResponse(inv, now))
	}
	return c.JSON(out)
}

func GetInvoice(c *fiber.Ctx) error {
	tenantDB, err := database.GetTenantDB(c)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{
			"message": "Database error",
			"error":   err.Error(),
		})
	}

	var invoice models.Invoice
	if err := tenantDB.Preload("Assignments").Preload("Treatment").Preload("Treatment.Patient").
		First(&invoice, "id = ?", c.Params("id")).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{
			"message": "Invoice not found",
		})
	}

	return c.JSON(invoiceResponse(invoice, time.Now()))
}

type AssignmentsInput struct {
	Assignments []AssignmentInput `json:"assignments" validate:"dive"`
}

// UpdateAssignments replaces an invoice's commission assignment set and
// recomputes every amount plus the house residual. The replacement is
// all-or-nothing inside the request transaction; a reader never sees a
// half-updated set.
func UpdateAssignments(c *fiber.Ctx) error {
	var input AssignmentsInput
	if err := middlewares.BindAndValidate(c, &input); err != nil {
		return err
	}

	tenantDB, err := database.GetTenantDB(c)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{
			"message": "Database error",
			"error":   err.Error(),
		})
	}

	var invoice models.Invoice
	if err := tenantDB.First(&invoice, "id = ?", c.Params("id")).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{
			"message": "Invoice not found",
		})
	}

	drafts := make([]billing.AssignmentDraft, 0, len(input.Assignments))
	for _, a := range input.Assignments {
		drafts = append(drafts, billing.AssignmentDraft{
			RepresentativeID: a.RepresentativeID,
			CommissionRate:   a.CommissionRate,
		})
	}
	alloc := billing.AllocateCommissions(invoice.InvoiceAmount, drafts, billing.DefaultPoolRate)

	// Delete-and-reinsert runs inside the request TX; an error rolls the
	// whole replacement back so readers never see a partial set.
	if err := tenantDB.Where("invoice_id = ?", invoice.ID).Delete(&models.CommissionAssignment{}).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not replace assignments")
	}
	for _, a := range alloc.Assignments {
		row := models.CommissionAssignment{
			InvoiceID:        invoice.ID,
			RepresentativeID: a.RepresentativeID,
			CommissionRate:   a.CommissionRate,
			CommissionAmount: a.CommissionAmount,
		}
		if err := tenantDB.Create(&row).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not replace assignments")
		}
	}

	resp := fiber.Map{
		"assignments":      alloc.Assignments,
		"pool":             alloc.Pool,
		"house_commission": alloc.HouseCommission,
		"over_allocated":   alloc.OverAllocated,
	}
	if primary, ok := alloc.PrimaryRep(); ok {
		resp["primary_rep_id"] = primary.RepresentativeID
		resp["primary_rep_commission_rate"] = primary.CommissionRate
		resp["primary_rep_commission_amount"] = primary.CommissionAmount
	}
	return c.JSON(resp)
}

type StatusInput struct {
	Status      string `json:"status" validate:"required"`
	PaymentDate string `json:"payment_date"`
}

// UpdateInvoiceStatus runs one lifecycle transition. Closing requires a
// payment date in the same request; validation happens before anything
// is written, so a rejected transition leaves no partial state.
func UpdateInvoiceStatus(c *fiber.Ctx) error {
	var input StatusInput
	if err := middlewares.BindAndValidate(c, &input); err != nil {
		return err
	}

	tenantDB, err := database.GetTenantDB(c)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{
			"message": "Database error",
			"error":   err.Error(),
		})
	}

	var invoice models.Invoice
	if err := tenantDB.First(&invoice, "id = ?", c.Params("id")).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{
			"message": "Invoice not found",
		})
	}

	var paymentDate *time.Time
	if input.PaymentDate != "" {
		d, err := time.Parse(dateLayout, input.PaymentDate)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{
				"message": "Invalid payment date",
			})
		}
		paymentDate = &d
	}

	state := billing.InvoiceState{
		Status:      billing.Status(invoice.Status),
		PaymentDate: invoice.PaymentDate,
	}
	next, err := state.Transition(billing.Status(input.Status), paymentDate)
	if err != nil {
		status := fiber.StatusUnprocessableEntity
		if errors.Is(err, billing.ErrUnknownStatus) {
			status = fiber.StatusBadRequest
		}
		return c.Status(status).JSON(fiber.Map{
			"message": err.Error(),
		})
	}

	snapshot, _ := json.Marshal(invoice)
	change := models.InvoiceStatusChange{
		InvoiceID:   invoice.ID,
		FromStatus:  invoice.Status,
		ToStatus:    string(next.Status),
		PaymentDate: next.PaymentDate,
		Snapshot:    datatypes.JSON(snapshot),
	}

	if err := tenantDB.Model(&invoice).Updates(map[string]any{
		"status":       string(next.Status),
		"payment_date": next.PaymentDate,
	}).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not update invoice status")
	}
	if err := tenantDB.Create(&change).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not record status change")
	}

	invoice.Status = string(next.Status)
	invoice.PaymentDate = next.PaymentDate
	return c.JSON(invoiceResponse(invoice, time.Now()))
}

func GetInvoiceHistory(c *fiber.Ctx) error {
	tenantDB, err := database.GetTenantDB(c)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{
			"message": "Database error",
			"error":   err.Error(),
		})
	}

	var changes []models.InvoiceStatusChange
	if err := tenantDB.Where("invoice_id = ?", c.Params("id")).
		Order("created_at DESC").Find(&changes).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{
			"message": "Could not fetch invoice history",
			"error":   err.Error(),
		})
	}

	return c.JSON(changes)
}

// invoiceResponse decorates an invoice with its derived overdue flag.
// is_overdue is computed per read and never persisted.
func invoiceResponse(inv models.Invoice, now time.Time) fiber.Map {
	return fiber.Map{
		"invoice":    inv,
		"is_overdue": billing.IsOverdue(billing.Status(inv.Status), inv.DueDate, now),
	}
}
