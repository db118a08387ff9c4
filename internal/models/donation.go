package models

import (
	"time"

	"github.com/google/uuid"
)

type DonationCategory string

const (
	CategoryFood      DonationCategory = "Food"
	CategoryMedical   DonationCategory = "Medical"
	CategoryClothing  DonationCategory = "Clothing"
	CategoryEducation DonationCategory = "Education"
	CategoryOther     DonationCategory = "Other"
)

func (c DonationCategory) Valid() bool {
	switch c {
	case CategoryFood, CategoryMedical, CategoryClothing, CategoryEducation, CategoryOther:
		return true
	default:
		return false
	}
}

type DonationStatus string

// Status values have no enforced transition order: any status may be set from
// any other. Only enum membership is validated on write.
const (
	StatusPending   DonationStatus = "Pending"
	StatusCollected DonationStatus = "Collected"
	StatusShipped   DonationStatus = "Shipped"
	StatusDelivered DonationStatus = "Delivered"
)

func (s DonationStatus) Valid() bool {
	switch s {
	case StatusPending, StatusCollected, StatusShipped, StatusDelivered:
		return true
	default:
		return false
	}
}

type Donation struct {
	BaseModel
	UserID           uuid.UUID        `json:"userId" gorm:"type:uuid;index;not null"`
	DonorName        string           `json:"donorName" gorm:"type:varchar(100);not null"`
	Location         string           `json:"location" gorm:"type:text;not null"`
	ItemsDescription string           `json:"itemsDescription" gorm:"type:text;not null"`
	Category         DonationCategory `json:"category" gorm:"type:varchar(20);not null"`
	WeightKg         float64          `json:"weightKg" gorm:"not null"`
	Quantity         int              `json:"quantity" gorm:"not null"`
	Date             time.Time        `json:"date" gorm:"index"`
	Status           DonationStatus   `json:"status" gorm:"type:varchar(20);not null;default:'Pending'"`
	ImpactMessage    string           `json:"impactMessage" gorm:"type:text"`
}
