package donations

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/relieflink/backend/internal/models"
	"github.com/relieflink/backend/pkg/logger"
	"gorm.io/gorm"
)

// GormStore is the durable local implementation of Repository, backed by a
// GORM database (a sqlite file on device, or postgres for a hosted ledger).
type GormStore struct {
	DB *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{DB: db}
}

// NewSeededGormStore returns a GormStore and, when the donation table is
// empty, inserts three demonstration records under a demo account so a fresh
// install has something to show. Not appropriate for a production backend.
func NewSeededGormStore(db *gorm.DB) (*GormStore, error) {
	store := &GormStore{DB: db}
	if err := store.seedDemoData(); err != nil {
		return nil, fmt.Errorf("seeding demo donations: %w", err)
	}
	return store, nil
}

func (s *GormStore) Create(ctx context.Context, donation *models.Donation) (*models.Donation, error) {
	if donation.Date.IsZero() {
		donation.Date = time.Now().UTC()
	}
	if donation.Status == "" {
		donation.Status = models.StatusPending
	}

	if err := s.DB.WithContext(ctx).Create(donation).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return donation, nil
}

func (s *GormStore) ListAll(ctx context.Context) ([]models.Donation, error) {
	var records []models.Donation
	if err := s.DB.WithContext(ctx).Order("date DESC").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return records, nil
}

func (s *GormStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Donation, error) {
	var records []models.Donation
	if err := s.DB.WithContext(ctx).Where("user_id = ?", userID).Order("date DESC").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return records, nil
}

func (s *GormStore) Update(ctx context.Context, id uuid.UUID, patch Patch) (*models.Donation, error) {
	var donation models.Donation
	if err := s.DB.WithContext(ctx).First(&donation, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	updates := map[string]interface{}{}
	if patch.DonorName != nil {
		updates["donor_name"] = *patch.DonorName
	}
	if patch.Location != nil {
		updates["location"] = *patch.Location
	}
	if patch.ItemsDescription != nil {
		updates["items_description"] = *patch.ItemsDescription
	}
	if patch.Category != nil {
		updates["category"] = *patch.Category
	}
	if patch.WeightKg != nil {
		updates["weight_kg"] = *patch.WeightKg
	}
	if patch.Quantity != nil {
		updates["quantity"] = *patch.Quantity
	}
	if patch.Status != nil {
		updates["status"] = *patch.Status
	}
	if patch.ImpactMessage != nil {
		updates["impact_message"] = *patch.ImpactMessage
	}

	if len(updates) > 0 {
		if err := s.DB.WithContext(ctx).Model(&donation).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
	}

	return &donation, nil
}

func (s *GormStore) Delete(ctx context.Context, id uuid.UUID) error {
	result := s.DB.WithContext(ctx).Delete(&models.Donation{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormStore) seedDemoData() error {
	var count int64
	if err := s.DB.Model(&models.Donation{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	demoUser := models.User{
		Name:         "Relief Demo",
		Email:        "demo@relieflink.local",
		PasswordHash: "demo-account-cannot-login",
		Phone:        "+94 11 000 0000",
	}
	if err := s.DB.FirstOrCreate(&demoUser, models.User{Email: "demo@relieflink.local"}).Error; err != nil {
		return err
	}

	now := time.Now().UTC()
	seeds := []models.Donation{
		{
			UserID:           demoUser.ID,
			DonorName:        demoUser.Name,
			Location:         "Colombo Collection Center",
			ItemsDescription: "Rice, lentils and canned vegetables",
			Category:         models.CategoryFood,
			WeightKg:         25,
			Quantity:         3,
			Date:             now.Add(-72 * time.Hour),
			Status:           models.StatusDelivered,
			ImpactMessage:    "Feeds a family of four for a week.",
		},
		{
			UserID:           demoUser.ID,
			DonorName:        demoUser.Name,
			Location:         "Kandy Collection Center",
			ItemsDescription: "First aid kits and bandages",
			Category:         models.CategoryMedical,
			WeightKg:         8,
			Quantity:         12,
			Date:             now.Add(-48 * time.Hour),
			Status:           models.StatusShipped,
			ImpactMessage:    "Treats minor injuries in remote villages.",
		},
		{
			UserID:           demoUser.ID,
			DonorName:        demoUser.Name,
			Location:         "Galle Collection Center",
			ItemsDescription: "Children's clothing, assorted sizes",
			Category:         models.CategoryClothing,
			WeightKg:         14,
			Quantity:         40,
			Date:             now.Add(-24 * time.Hour),
			Status:           models.StatusPending,
			ImpactMessage:    "Keeps forty children warm this season.",
		},
	}

	if err := s.DB.Create(&seeds).Error; err != nil {
		return err
	}

	logger.Info("demo_donations_seeded", map[string]interface{}{
		"count": len(seeds),
	})
	return nil
}
