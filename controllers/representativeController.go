package controllers

import (
	"grafttrack-backend/database"
	"grafttrack-backend/middlewares"
	"grafttrack-backend/models"
	"grafttrack-backend/utils"

	"github.com/gofiber/fiber/v2"
)

type RepresentativeInput struct {
	FirstName    string `json:"first_name" validate:"required"`
	LastName     string `json:"last_name" validate:"required"`
	Email        string `json:"email" validate:"required,email"`
	PhoneNumber  string `json:"phone_number"`
	MobileNumber string `json:"mobile_number"`
	Territory    string `json:"territory"`
}

func CreateRepresentative(c *fiber.Ctx) error {
	var input RepresentativeInput
	if err := middlewares.BindAndValidate(c, &input); err != nil {
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

	rep := models.Representative{
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Email:        input.Email,
		PhoneNumber:  input.PhoneNumber,
		MobileNumber: input.MobileNumber,
		Territory:    input.Territory,
		Active:       true,
	}

	if err := tenantDB.Create(&rep).Error; err != nil {
		c.Status(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"message": "Could not create representative",
			"error":   err.Error(),
		})
	}

	return c.Status(201).JSON(rep)
}

func GetRepresentatives(c *fiber.Ctx) error {
	var reps []models.Representative

	tenantDB, err := database.GetTenantDB(c)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{
			"message": "Database error",
			"error":   err.Error(),
		})
	}

	if err := tenantDB.Order("last_name, first_name").Find(&reps).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{
			"message": "Could not fetch representatives",
			"error":   err.Error(),
		})
	}

	return c.JSON(reps)
}

// RepresentativePatch is a partial-update DTO; nil fields are left untouched.
type RepresentativePatch struct {
	FirstName    *string `json:"first_name"`
	LastName     *string `json:"last_name"`
	Email        *string `json:"email"`
	PhoneNumber  *string `json:"phone_number"`
	MobileNumber *string `json:"mobile_number"`
	Territory    *string `json:"territory"`
}

func UpdateRepresentative(c *fiber.Ctx) error {
	var patch RepresentativePatch
	if err := c.BodyParser(&patch); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	utils.NormalizePtrDTO(&patch)

	tenantDB, err := database.GetTenantDB(c)
	if err != nil {
		c.Status(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"message": "Internal Error",
			"error":   err.Error(),
		})
	}

	updates := utils.UpdatesFromPtrDTO(&patch, nil)
	if len(updates) > 0 {
		if err := tenantDB.Model(&models.Representative{}).Where("id = ?", c.Params("id")).Updates(updates).Error; err != nil {
			c.Status(fiber.StatusBadRequest)
			return c.JSON(fiber.Map{
				"message": "Could not update representative",
				"error":   err.Error(),
			})
		}
	}

	var rep models.Representative
	tenantDB.First(&rep, "id = ?", c.Params("id"))
	return c.JSON(rep)
}
