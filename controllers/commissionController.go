package controllers

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"grafttrack-backend/billing"
	"grafttrack-backend/database"
	"grafttrack-backend/models"

	"github.com/gofiber/fiber/v2"
)

// GetCommissionPeriods aggregates closed invoices into semimonthly
// commission payment periods per representative.
func GetCommissionPeriods(c *fiber.Ctx) error {
	periods, err := loadPeriods(c)
	if err != nil {
		return err
	}
	return c.JSON(periods)
}

// ExportCommissions streams the commission report as CSV. The column
// order matches downstream spreadsheets; see billing.ExportHeader.
func ExportCommissions(c *fiber.Ctx) error {
	periods, err := loadPeriods(c)
	if err != nil {
		return err
	}

	rows := billing.ExportRows(periods)

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(billing.ExportHeader); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not write export")
	}
	for _, r := range rows {
		record := []string{
			r.InvoiceNumber,
			r.InvoiceDate,
			strconv.FormatFloat(r.InvoiceTotal, 'f', 2, 64),
			r.InvoicePaymentDate,
			r.CommissionPaymentDate,
			strconv.FormatFloat(r.CommissionRate, 'f', -1, 64),
			strconv.FormatFloat(r.CommissionAmount, 'f', 2, 64),
			r.RepresentativeName,
			r.HousePaymentDate,
		}
		if err := w.Write(record); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not write export")
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not write export")
	}

	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="commissions.csv"`)
	return c.Send(buf.Bytes())
}

// loadPeriods reads closed invoices plus their assignments and runs the
// aggregator over them.
func loadPeriods(c *fiber.Ctx) ([]billing.PaymentPeriod, error) {
	tenantDB, err := database.GetTenantDB(c)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "database error")
	}

	var invoices []models.Invoice
	if err := tenantDB.Preload("Assignments").Preload("Assignments.Representative").Preload("Treatment").
		Where("status = ?", string(billing.StatusClosed)).
		Find(&invoices).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "could not fetch closed invoices")
	}

	records := make([]billing.InvoiceRecord, 0, len(invoices))
	assignmentsByInvoice := make(map[uint][]billing.Assignment, len(invoices))
	for _, inv := range invoices {
		records = append(records, billing.InvoiceRecord{
			ID:            inv.ID,
			InvoiceNumber: inv.InvoiceNumber,
			Status:        billing.Status(inv.Status),
			InvoiceAmount: inv.InvoiceAmount,
			InvoiceDate:   inv.InvoiceDate,
			PaymentDate:   inv.PaymentDate,
			TreatmentDate: inv.Treatment.TreatmentDate,
		})
		for _, a := range inv.Assignments {
			assignmentsByInvoice[inv.ID] = append(assignmentsByInvoice[inv.ID], billing.Assignment{
				RepresentativeID:   a.RepresentativeID,
				RepresentativeName: a.Representative.FullName(),
				CommissionRate:     a.CommissionRate,
				CommissionAmount:   a.CommissionAmount,
			})
		}
	}

	return billing.AggregatePeriods(records, assignmentsByInvoice), nil
}
