package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type RecordStatus string

const (
	StatusPending   RecordStatus = "Pending"
	StatusInTransit RecordStatus = "In-Transit"
	StatusReceived  RecordStatus = "Received"
	StatusVerified  RecordStatus = "Verified"
	StatusSold      RecordStatus = "Sold"
	StatusDamaged   RecordStatus = "Damaged"
	StatusActive    RecordStatus = "Active"
	StatusCompleted RecordStatus = "Completed"
)

func (s RecordStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusInTransit, StatusReceived, StatusVerified,
		StatusSold, StatusDamaged, StatusActive, StatusCompleted:
		return true
	}
	return false
}

type ProductCategory string

const (
	CategoryElectronics   ProductCategory = "Electronics"
	CategoryConsumerGoods ProductCategory = "Consumer Goods"
	CategoryIndustrial    ProductCategory = "Industrial"
	CategoryOther         ProductCategory = "Other"
	CategoryStudent       ProductCategory = "Student"
	CategoryInternet      ProductCategory = "Internet"
)

func (c ProductCategory) IsValid() bool {
	switch c {
	case CategoryElectronics, CategoryConsumerGoods, CategoryIndustrial,
		CategoryOther, CategoryStudent, CategoryInternet:
		return true
	}
	return false
}

// InitialStatus returns the workflow state a fresh record starts in.
// Internet records represent sessions and start out Active instead of
// waiting in the intake queue.
func (c ProductCategory) InitialStatus() RecordStatus {
	if c == CategoryInternet {
		return StatusActive
	}
	return StatusPending
}

type TimelineEntry struct {
	Step   string `json:"step"`
	Date   string `json:"date"`
	Note   string `json:"note"`
	Status string `json:"status"`
}

type VerificationConfirmation struct {
	Verified     bool   `json:"verified"`
	VerifierName string `json:"verifier_name,omitempty"`
}

type HubRecord struct {
	ID     uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index"`
	User   User      `gorm:"constraint:OnDelete:CASCADE"`

	HubLocation  string `gorm:"type:varchar(255)"`
	RecorderName string `gorm:"type:varchar(255)"`
	EntryDate    string `gorm:"type:varchar(64)"`

	EntityName    string `gorm:"type:varchar(255);not null;index"`
	EntityPhone   string `gorm:"type:text;not null"`
	EntityEmail   string `gorm:"type:text"`
	EntityAddress string `gorm:"type:text"`

	ProductName      string          `gorm:"type:varchar(255)"`
	ProductCategory  ProductCategory `gorm:"type:varchar(32);default:'Other'"`
	BatchSKU         string          `gorm:"column:batch_sku;type:varchar(255)"`
	SerialNumber     string          `gorm:"type:varchar(255);index"`
	Specifications   string          `gorm:"type:text"`
	AccessoriesNotes string          `gorm:"type:text"`
	Description      string          `gorm:"column:record_description;type:text"`
	ProductPhoto     string          `gorm:"type:text"`

	VerificationDate  string `gorm:"type:varchar(64)"`
	VerificationStaff string `gorm:"type:varchar(255)"`
	QualityCheck      string `gorm:"type:text"`
	MaterialsNotes    string `gorm:"type:text"`
	ActionTaken       string `gorm:"type:text"`

	Status RecordStatus `gorm:"type:varchar(32);default:'Pending';index"`

	ProcessingFee        float64 `gorm:"default:0"`
	AdditionalCost       float64 `gorm:"default:0"`
	TotalValue           float64 `gorm:"default:0"`
	AmountPaid           float64 `gorm:"default:0"`
	Balance              float64 `gorm:"default:0"`
	TransactionCompleted bool    `gorm:"default:false"`
	IsDispatched         bool    `gorm:"default:false"`

	LogTimeline              datatypes.JSONSlice[TimelineEntry]
	VerificationConfirmation datatypes.JSONType[VerificationConfirmation]

	CreatedAt time.Time
	UpdatedAt time.Time
}
