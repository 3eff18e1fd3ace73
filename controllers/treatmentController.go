package controllers

import (
	"strconv"
	"strings"
	"time"

	"grafttrack-backend/billing"
	"grafttrack-backend/database"
	"grafttrack-backend/middlewares"
	"grafttrack-backend/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

type AssignmentInput struct {
	RepresentativeID uint    `json:"representative_id" validate:"required"`
	CommissionRate   float64 `json:"commission_rate" validate:"gte=0,lte=100"`
}

type TreatmentInput struct {
	PatientID      uint              `json:"patient_id" validate:"required"`
	GraftProductID string            `json:"graft_product_id" validate:"required"`
	WoundArea      string            `json:"wound_area"`
	TreatmentDate  string            `json:"treatment_date" validate:"required"`
	InvoiceNumber  string            `json:"invoice_number" validate:"required"`
	InvoiceDate    string            `json:"invoice_date"`
	DueDate        string            `json:"due_date"`
	Assignments    []AssignmentInput `json:"assignments" validate:"dive"`
}

// CreateTreatment records a graft application and generates its invoice
// in the same transaction. Financials and commission amounts are
// computed here and persisted; they are not recomputed at read time.
func CreateTreatment(c *fiber.Ctx) error {
	var input TreatmentInput
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

	treatmentDate, err := time.Parse(dateLayout, input.TreatmentDate)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{
			"message": "Invalid treatment date",
		})
	}

	// An unresolvable product reference is a data-integrity problem,
	// unlike a blank wound area, and must not default the price to 0.
	var product models.GraftProduct
	if err := tenantDB.First(&product, "id = ?", input.GraftProductID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"message": billing.ErrUnknownProduct.Error(),
			})
		}
		return c.Status(500).JSON(fiber.Map{
			"message": "Database error",
			"error":   err.Error(),
		})
	}

	// Blank or malformed numeric input coerces to 0 to keep mid-edit
	// forms computable.
	woundArea, err := strconv.ParseFloat(strings.TrimSpace(input.WoundArea), 64)
	if err != nil || woundArea < 0 {
		woundArea = 0
	}

	fin := billing.ComputeFinancials(woundArea, product.PricePerUnitArea, billing.DefaultInvoiceRate)

	// Default the assignment list to the logged-in rep when none was
	// supplied. This is a caller-side convenience; the allocator itself
	// only sees the final set.
	drafts := make([]billing.AssignmentDraft, 0, len(input.Assignments))
	for _, a := range input.Assignments {
		drafts = append(drafts, billing.AssignmentDraft{
			RepresentativeID: a.RepresentativeID,
			CommissionRate:   a.CommissionRate,
		})
	}
	if len(drafts) == 0 {
		if repID, _ := c.Locals("repID").(uint); repID != 0 {
			drafts = append(drafts, billing.AssignmentDraft{RepresentativeID: repID})
		}
	}

	alloc := billing.AllocateCommissions(fin.InvoiceAmount, drafts, billing.DefaultPoolRate)

	invoiceDate := treatmentDate
	if input.InvoiceDate != "" {
		if invoiceDate, err = time.Parse(dateLayout, input.InvoiceDate); err != nil {
			return c.Status(400).JSON(fiber.Map{
				"message": "Invalid invoice date",
			})
		}
	}
	dueDate := invoiceDate.AddDate(0, 0, 30)
	if input.DueDate != "" {
		if dueDate, err = time.Parse(dateLayout, input.DueDate); err != nil {
			return c.Status(400).JSON(fiber.Map{
				"message": "Invalid due date",
			})
		}
	}

	treatment := models.Treatment{
		PatientID:      input.PatientID,
		GraftProductID: product.Id,
		WoundArea:      woundArea,
		TreatmentDate:  treatmentDate,
		Status:         models.TreatmentActive,
	}

	assignments := make([]models.CommissionAssignment, 0, len(alloc.Assignments))
	for _, a := range alloc.Assignments {
		assignments = append(assignments, models.CommissionAssignment{
			RepresentativeID: a.RepresentativeID,
			CommissionRate:   a.CommissionRate,
			CommissionAmount: a.CommissionAmount,
		})
	}

	invoice := models.Invoice{
		InvoiceNumber: input.InvoiceNumber,
		TotalBillable: fin.TotalBillable,
		InvoiceAmount: fin.InvoiceAmount,
		Status:        string(billing.StatusOpen),
		InvoiceDate:   invoiceDate,
		DueDate:       dueDate,
		Assignments:   assignments,
	}

	// Returning an error here makes TenantTx roll the whole request
	// back; the treatment and its invoice persist together or not at all.
	if err := tenantDB.Create(&treatment).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not create treatment")
	}
	invoice.TreatmentID = treatment.ID
	if err := tenantDB.Create(&invoice).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not create invoice")
	}

	return c.Status(201).JSON(treatmentResponse(treatment, invoice, alloc))
}

func GetTreatments(c *fiber.Ctx) error {
	var treatments []models.Treatment

	tenantDB, err := database.GetTenantDB(c)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{
			"message": "Database error",
			"error":   err.Error(),
		})
	}

	if err := tenantDB.Preload("Patient").Preload("GraftProduct").
		Order("treatment_date DESC").Find(&treatments).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{
			"message": "Could not fetch treatments",
			"error":   err.Error(),
		})
	}

	return c.JSON(treatments)
}

func GetTreatment(c *fiber.Ctx) error {
	tenantDB, err := database.GetTenantDB(c)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{
			"message": "Database error",
			"error":   err.Error(),
		})
	}

	var treatment models.Treatment
	if err := tenantDB.Preload("Patient").Preload("GraftProduct").
		First(&treatment, "id = ?", c.Params("id")).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{
			"message": "Treatment not found",
		})
	}

	return c.JSON(treatment)
}

// UpdateTreatment changes a treatment's status or wound size. Amounts
// on the invoice already generated from it are historical and are never
// rewritten here.
func UpdateTreatment(c *fiber.Ctx) error {
	var data map[string]string
	if err := c.BodyParser(&data); err != nil {
		return err
	}

	tenantDB, err := database.GetTenantDB(c)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{
			"message": "Database error",
			"error":   err.Error(),
		})
	}

	updates := map[string]any{}
	if status, ok := data["status"]; ok {
		switch status {
		case models.TreatmentActive, models.TreatmentCompleted, models.TreatmentCancelled:
			updates["status"] = status
		default:
			return c.Status(400).JSON(fiber.Map{
				"message": "Invalid treatment status",
			})
		}
	}
	if areaStr, ok := data["wound_area"]; ok {
		area, err := strconv.ParseFloat(strings.TrimSpace(areaStr), 64)
		if err != nil || area < 0 {
			area = 0
		}
		updates["wound_area"] = area
	}

	if len(updates) > 0 {
		if err := tenantDB.Model(&models.Treatment{}).Where("id = ?", c.Params("id")).Updates(updates).Error; err != nil {
			c.Status(fiber.StatusBadRequest)
			return c.JSON(fiber.Map{
				"message": "Could not update treatment",
				"error":   err.Error(),
			})
		}
	}

	var treatment models.Treatment
	tenantDB.Preload("Patient").Preload("GraftProduct").First(&treatment, "id = ?", c.Params("id"))
	return c.JSON(treatment)
}

// treatmentResponse flattens the creation result. The legacy
// primary_rep_* fields mirror the single assignment when exactly one
// exists; older consumers still read that shape.
func treatmentResponse(t models.Treatment, inv models.Invoice, alloc billing.Allocation) fiber.Map {
	resp := fiber.Map{
		"treatment":        t,
		"invoice":          inv,
		"house_commission": alloc.HouseCommission,
		"over_allocated":   alloc.OverAllocated,
	}
	if primary, ok := alloc.PrimaryRep(); ok {
		resp["primary_rep_id"] = primary.RepresentativeID
		resp["primary_rep_commission_rate"] = primary.CommissionRate
		resp["primary_rep_commission_amount"] = primary.CommissionAmount
	}
	return resp
}
