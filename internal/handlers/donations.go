package handlers

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/relieflink/backend/internal/advisor"
	"github.com/relieflink/backend/internal/donations"
	"github.com/relieflink/backend/internal/models"
	"github.com/relieflink/backend/internal/stats"
	"github.com/relieflink/backend/pkg/logger"
	"github.com/relieflink/backend/pkg/utils"
	"gorm.io/gorm"
)

type DonationsHandler struct {
	DB         *gorm.DB
	Repo       donations.Repository
	Classifier advisor.Classifier
}

func NewDonationsHandler(db *gorm.DB, repo donations.Repository, classifier advisor.Classifier) *DonationsHandler {
	return &DonationsHandler{DB: db, Repo: repo, Classifier: classifier}
}

type createDonationRequest struct {
	UserID           string                  `json:"userId"`
	DonorName        string                  `json:"donorName"`
	Location         string                  `json:"location"`
	ItemsDescription string                  `json:"itemsDescription"`
	Category         models.DonationCategory `json:"category"`
	WeightKg         float64                 `json:"weightKg"`
	Quantity         int                     `json:"quantity"`
	Date             *time.Time              `json:"date"`
	Status           models.DonationStatus   `json:"status"`
	ImpactMessage    string                  `json:"impactMessage"`
}

func (h *DonationsHandler) Create(c *fiber.Ctx) error {
	var req createDonationRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	userID, err := parseUUID(req.UserID)
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid donor user id")
	}

	req.Location = strings.TrimSpace(req.Location)
	req.ItemsDescription = strings.TrimSpace(req.ItemsDescription)

	if req.Location == "" {
		return utils.Error(c, fiber.StatusBadRequest, "location is required")
	}
	if req.ItemsDescription == "" {
		return utils.Error(c, fiber.StatusBadRequest, "itemsDescription is required")
	}
	if req.WeightKg <= 0 {
		return utils.Error(c, fiber.StatusBadRequest, "weightKg must be greater than zero")
	}
	if req.Quantity < 1 {
		return utils.Error(c, fiber.StatusBadRequest, "quantity must be at least 1")
	}
	if req.Category != "" && !req.Category.Valid() {
		return utils.Error(c, fiber.StatusBadRequest, "invalid category")
	}
	if req.Status != "" && !req.Status.Valid() {
		return utils.Error(c, fiber.StatusBadRequest, "invalid status")
	}

	// The owner must exist before anything is persisted.
	var owner models.User
	if err := h.DB.First(&owner, "id = ?", userID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return utils.Error(c, fiber.StatusBadRequest, "donor user does not exist")
		}
		return utils.Error(c, fiber.StatusInternalServerError, "failed checking donor")
	}

	donorName := strings.TrimSpace(req.DonorName)
	if donorName == "" {
		donorName = owner.Name
	}

	category := req.Category
	impactMessage := strings.TrimSpace(req.ImpactMessage)

	// Classification is advisory: it runs only when the caller supplied no
	// category, and its failure never blocks the submission.
	if category == "" && h.Classifier != nil {
		result, err := h.Classifier.Classify(c.Context(), req.ItemsDescription)
		if err != nil {
			logger.Warn("donation_classification_degraded", map[string]interface{}{
				"error": err.Error(),
			})
		}
		category = result.Category
		if impactMessage == "" {
			impactMessage = result.ImpactMessage
		}
	}
	if category == "" {
		category = models.CategoryOther
	}

	donation := &models.Donation{
		UserID:           userID,
		DonorName:        donorName,
		Location:         req.Location,
		ItemsDescription: req.ItemsDescription,
		Category:         category,
		WeightKg:         req.WeightKg,
		Quantity:         req.Quantity,
		Status:           req.Status,
		ImpactMessage:    impactMessage,
	}
	if req.Date != nil {
		donation.Date = req.Date.UTC()
	}

	stored, err := h.Repo.Create(c.Context(), donation)
	if err != nil {
		logger.Error("donation_create_failed", err, map[string]interface{}{
			"user_id": userID.String(),
		})
		return utils.Error(c, fiber.StatusInternalServerError, "failed to create donation")
	}

	logger.InfoWithUser(userID.String(), "donation_created", map[string]interface{}{
		"donation_id": stored.ID.String(),
		"category":    string(stored.Category),
		"weight_kg":   stored.WeightKg,
	})

	return utils.Success(c, fiber.StatusCreated, stored)
}

func (h *DonationsHandler) List(c *fiber.Ctx) error {
	records, err := h.Repo.ListAll(c.Context())
	if err != nil {
		logger.Error("donation_list_failed", err, nil)
		return utils.Error(c, fiber.StatusInternalServerError, "failed to fetch donations")
	}
	return utils.Success(c, fiber.StatusOK, records)
}

func (h *DonationsHandler) ListByUser(c *fiber.Ctx) error {
	userID, err := parseUUID(c.Params("userId"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid user id")
	}

	records, err := h.Repo.ListByUser(c.Context(), userID)
	if err != nil {
		logger.Error("donation_list_by_user_failed", err, map[string]interface{}{
			"user_id": userID.String(),
		})
		return utils.Error(c, fiber.StatusInternalServerError, "failed to fetch user donations")
	}
	return utils.Success(c, fiber.StatusOK, records)
}

func (h *DonationsHandler) Stats(c *fiber.Ctx) error {
	records, err := h.Repo.ListAll(c.Context())
	if err != nil {
		logger.Error("donation_stats_failed", err, nil)
		return utils.Error(c, fiber.StatusInternalServerError, "failed to fetch statistics")
	}
	return utils.Success(c, fiber.StatusOK, stats.Compute(records))
}

func (h *DonationsHandler) Update(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid donation id")
	}

	var patch donations.Patch
	if err := c.BodyParser(&patch); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	if patch.Category != nil && !patch.Category.Valid() {
		return utils.Error(c, fiber.StatusBadRequest, "invalid category")
	}
	if patch.Status != nil && !patch.Status.Valid() {
		return utils.Error(c, fiber.StatusBadRequest, "invalid status")
	}
	if patch.WeightKg != nil && *patch.WeightKg <= 0 {
		return utils.Error(c, fiber.StatusBadRequest, "weightKg must be greater than zero")
	}
	if patch.Quantity != nil && *patch.Quantity < 1 {
		return utils.Error(c, fiber.StatusBadRequest, "quantity must be at least 1")
	}

	updated, err := h.Repo.Update(c.Context(), id, patch)
	if err != nil {
		if errors.Is(err, donations.ErrNotFound) {
			return utils.Error(c, fiber.StatusNotFound, "donation not found")
		}
		logger.Error("donation_update_failed", err, map[string]interface{}{
			"donation_id": id.String(),
		})
		return utils.Error(c, fiber.StatusInternalServerError, "failed to update donation")
	}

	return utils.Success(c, fiber.StatusOK, updated)
}

func (h *DonationsHandler) Delete(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid donation id")
	}

	if err := h.Repo.Delete(c.Context(), id); err != nil {
		if errors.Is(err, donations.ErrNotFound) {
			return utils.Error(c, fiber.StatusNotFound, "donation not found")
		}
		logger.Error("donation_delete_failed", err, map[string]interface{}{
			"donation_id": id.String(),
		})
		return utils.Error(c, fiber.StatusInternalServerError, "failed to delete donation")
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{"message": "donation deleted successfully"})
}
