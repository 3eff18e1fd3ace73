package controllers

import (
	"grafttrack-backend/database"
	"grafttrack-backend/models"
	"grafttrack-backend/utils"

	"github.com/gofiber/fiber/v2"
)

func CreatePatient(c *fiber.Ctx) error {
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

	patient := models.Patient{
		MedicalRecNo: data["medical_rec_no"],
		FirstName:    data["first_name"],
		LastName:     data["last_name"],
		Facility:     data["facility"],
		Address:      data["address"],
		City:         data["city"],
		Zip:          data["zip"],
		PhoneNumber:  data["phone_number"],
		Email:        data["email"],
		Active:       true,
	}

	if err := tenantDB.Create(&patient).Error; err != nil {
		c.Status(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"message": "Could not create patient",
			"error":   err.Error(),
		})
	}

	return c.JSON(patient)
}

func GetPatients(c *fiber.Ctx) error {
	var patients []models.Patient

	tenantDB, err := database.GetTenantDB(c)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{
			"message": "Database error",
			"error":   err.Error(),
		})
	}

	if err := tenantDB.Order("last_name, first_name").Find(&patients).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{
			"message": "Could not fetch patients",
			"error":   err.Error(),
		})
	}

	return c.JSON(patients)
}

func GetPatient(c *fiber.Ctx) error {
	tenantDB, err := database.GetTenantDB(c)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{
			"message": "Database error",
			"error":   err.Error(),
		})
	}

	var patient models.Patient
	if err := tenantDB.First(&patient, "id = ?", c.Params("id")).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{
			"message": "Patient not found",
		})
	}

	return c.JSON(patient)
}

// PatientPatch is a partial-update DTO; nil fields are left untouched.
type PatientPatch struct {
	FirstName   *string `json:"first_name"`
	LastName    *string `json:"last_name"`
	Facility    *string `json:"facility"`
	Address     *string `json:"address"`
	City        *string `json:"city"`
	Zip         *string `json:"zip"`
	PhoneNumber *string `json:"phone_number"`
	Email       *string `json:"email"`
}

func UpdatePatient(c *fiber.Ctx) error {
	var patch PatientPatch
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
		if err := tenantDB.Model(&models.Patient{}).Where("id = ?", c.Params("id")).Updates(updates).Error; err != nil {
			c.Status(fiber.StatusBadRequest)
			return c.JSON(fiber.Map{
				"message": "Could not update patient",
				"error":   err.Error(),
			})
		}
	}

	var patient models.Patient
	tenantDB.First(&patient, "id = ?", c.Params("id"))
	return c.JSON(patient)
}
