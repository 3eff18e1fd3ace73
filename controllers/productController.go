package controllers

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"grafttrack-backend/billing"
	"grafttrack-backend/database"
	"grafttrack-backend/models"

	"github.com/gofiber/fiber/v2"
)

type ProductInput struct {
	Manufacturer     string `json:"manufacturer"`
	ProductName      string `json:"product_name"`
	BillingCode      string `json:"billing_code"`
	PricePerUnitArea string `json:"price_per_unit_area"`
	Active           string `json:"active"`
}

// CreateProducts batch-creates graft pricing reference rows.
func CreateProducts(c *fiber.Ctx) error {
	var inputs []ProductInput

	if err := c.BodyParser(&inputs); err != nil {
		return c.Status(400).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	tenantDB, err := database.GetTenantDB(c)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{
			"message": "Database error",
			"error":   err.Error(),
		})
	}

	var created []models.GraftProduct

	for i, input := range inputs {
		price, err := strconv.ParseFloat(strings.TrimSpace(input.PricePerUnitArea), 64)
		if err != nil || price <= 0 {
			return c.Status(400).JSON(fiber.Map{
				"message": fmt.Sprintf("Invalid price per unit area at index %d", i),
			})
		}

		active, err := strconv.ParseBool(strings.TrimSpace(input.Active))
		if err != nil {
			return c.Status(400).JSON(fiber.Map{
				"message": fmt.Sprintf("Invalid active value at index %d", i),
			})
		}

		product := models.GraftProduct{
			Manufacturer:     strings.TrimSpace(input.Manufacturer),
			ProductName:      strings.TrimSpace(input.ProductName),
			BillingCode:      strings.TrimSpace(input.BillingCode),
			PricePerUnitArea: price,
			Active:           active,
		}

		if err := tenantDB.Create(&product).Error; err != nil {
			return c.Status(500).JSON(fiber.Map{
				"message": fmt.Sprintf("Could not create product at index %d", i),
				"error":   err.Error(),
			})
		}

		created = append(created, product)
	}

	return c.Status(201).JSON(created)
}

func GetProducts(c *fiber.Ctx) error {
	var products []models.GraftProduct

	tenantDB, err := database.GetTenantDB(c)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{
			"message": "Database error",
			"error":   err.Error(),
		})
	}

	if err := tenantDB.Order("manufacturer, product_name").Find(&products).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{
			"message": "Could not fetch products",
			"error":   err.Error(),
		})
	}

	return c.JSON(products)
}

// LookupPrice resolves a product's price-per-unit-area by its composite
// identity (manufacturer + product name + billing code) through the
// indexed catalog. An unknown reference is a data-integrity error, not
// a zero price.
func LookupPrice(c *fiber.Ctx) error {
	tenantDB, err := database.GetTenantDB(c)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{
			"message": "Database error",
			"error":   err.Error(),
		})
	}

	var rows []models.GraftProduct
	if err := tenantDB.Where("active = ?", true).Find(&rows).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{
			"message": "Could not fetch products",
			"error":   err.Error(),
		})
	}

	products := make([]billing.Product, 0, len(rows))
	for _, p := range rows {
		products = append(products, billing.Product{
			Manufacturer:     p.Manufacturer,
			ProductName:      p.ProductName,
			PricePerUnitArea: p.PricePerUnitArea,
			BillingCode:      p.BillingCode,
		})
	}

	product, err := billing.NewCatalog(products).Lookup(billing.ProductKey{
		Manufacturer: c.Query("manufacturer"),
		ProductName:  c.Query("product_name"),
		BillingCode:  c.Query("billing_code"),
	})
	if err != nil {
		if errors.Is(err, billing.ErrUnknownProduct) {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"message": err.Error(),
			})
		}
		return c.Status(500).JSON(fiber.Map{
			"message": "Lookup failed",
			"error":   err.Error(),
		})
	}

	return c.JSON(product)
}

// UpdateProduct changes non-identity fields of a product. Historical
// invoices keep the amounts computed at their save time; a price change
// only affects invoices generated afterwards.
func UpdateProduct(c *fiber.Ctx) error {
	var data map[string]string

	if err := c.BodyParser(&data); err != nil {
		return err
	}

	tenantDB, err := database.GetTenantDB(c)
	if err != nil {
		c.Status(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"message": "Internal Error",
			"error":   err.Error(),
		})
	}

	price, err := strconv.ParseFloat(data["price_per_unit_area"], 64)
	if err != nil || price <= 0 {
		return c.Status(400).JSON(fiber.Map{
			"message": "Invalid price per unit area",
		})
	}

	updates := map[string]any{
		"price_per_unit_area": price,
	}
	if activeStr, ok := data["active"]; ok {
		active, err := strconv.ParseBool(activeStr)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{
				"message": "Invalid active value",
			})
		}
		updates["active"] = active
	}

	if err := tenantDB.Model(&models.GraftProduct{}).Where("id = ?", c.Params("id")).Updates(updates).Error; err != nil {
		c.Status(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"message": "Could not update product",
			"error":   err.Error(),
		})
	}

	var product models.GraftProduct
	tenantDB.First(&product, "id = ?", c.Params("id"))
	return c.JSON(product)
}
