package dto

import (
	"time"

	"hubtrack/internal/entity"
)

type TimelineEntryDTO struct {
	Step   string `json:"step"`
	Date   string `json:"date"`
	Note   string `json:"note"`
	Status string `json:"status"`
}

type VerificationConfirmationDTO struct {
	Verified     bool   `json:"verified"`
	VerifierName string `json:"verifier_name,omitempty"`
}

type RecordCreateRequest struct {
	HubLocation  string `json:"hub_location"`
	RecorderName string `json:"recorder_name"`
	EntryDate    string `json:"entry_date"`

	EntityName    string `json:"entity_name" validate:"required"`
	EntityPhone   string `json:"entity_phone" validate:"required"`
	EntityEmail   string `json:"entity_email" validate:"omitempty"`
	EntityAddress string `json:"entity_address"`

	ProductName      string `json:"product_name"`
	ProductCategory  string `json:"product_category"`
	BatchSKU         string `json:"batch_sku"`
	SerialNumber     string `json:"serial_number"`
	Specifications   string `json:"specifications"`
	AccessoriesNotes string `json:"accessories_notes"`
	Description      string `json:"record_description"`
	ProductPhoto     string `json:"product_photo"`

	VerificationDate  string `json:"verification_date"`
	VerificationStaff string `json:"verification_staff"`
	QualityCheck      string `json:"quality_check"`
	MaterialsNotes    string `json:"materials_notes"`
	ActionTaken       string `json:"action_taken"`

	Status string `json:"status"`

	ProcessingFee  float64 `json:"processing_fee" validate:"gte=0"`
	AdditionalCost float64 `json:"additional_cost" validate:"gte=0"`
	AmountPaid     float64 `json:"amount_paid" validate:"gte=0"`

	// TotalValue and Balance are normally derived from the three inputs
	// above; supplying either one explicitly stores it as given.
	TotalValue *float64 `json:"total_value" validate:"omitempty,gte=0"`
	Balance    *float64 `json:"balance"`

	TransactionCompleted bool `json:"transaction_completed"`
	IsDispatched         bool `json:"is_dispatched"`

	LogTimeline              []TimelineEntryDTO           `json:"log_timeline"`
	VerificationConfirmation *VerificationConfirmationDTO `json:"verification_confirmation"`
}

// RecordUpdateRequest is a patch: nil means "leave unchanged", a pointer to
// the zero value means "set to zero". Server-assigned fields (id, owner,
// timestamps) are deliberately absent.
type RecordUpdateRequest struct {
	HubLocation  *string `json:"hub_location"`
	RecorderName *string `json:"recorder_name"`
	EntryDate    *string `json:"entry_date"`

	EntityName    *string `json:"entity_name"`
	EntityPhone   *string `json:"entity_phone"`
	EntityEmail   *string `json:"entity_email"`
	EntityAddress *string `json:"entity_address"`

	ProductName      *string `json:"product_name"`
	ProductCategory  *string `json:"product_category"`
	BatchSKU         *string `json:"batch_sku"`
	SerialNumber     *string `json:"serial_number"`
	Specifications   *string `json:"specifications"`
	AccessoriesNotes *string `json:"accessories_notes"`
	Description      *string `json:"record_description"`
	ProductPhoto     *string `json:"product_photo"`

	VerificationDate  *string `json:"verification_date"`
	VerificationStaff *string `json:"verification_staff"`
	QualityCheck      *string `json:"quality_check"`
	MaterialsNotes    *string `json:"materials_notes"`
	ActionTaken       *string `json:"action_taken"`

	Status     *string `json:"status"`
	StatusNote *string `json:"status_note"`

	ProcessingFee  *float64 `json:"processing_fee" validate:"omitempty,gte=0"`
	AdditionalCost *float64 `json:"additional_cost" validate:"omitempty,gte=0"`
	AmountPaid     *float64 `json:"amount_paid" validate:"omitempty,gte=0"`
	TotalValue     *float64 `json:"total_value" validate:"omitempty,gte=0"`
	Balance        *float64 `json:"balance"`

	TransactionCompleted *bool `json:"transaction_completed"`
	IsDispatched         *bool `json:"is_dispatched"`

	LogTimeline              *[]TimelineEntryDTO          `json:"log_timeline"`
	VerificationConfirmation *VerificationConfirmationDTO `json:"verification_confirmation"`
}

type RecordResponse struct {
	ID     string `json:"id"`
	UserID string `json:"user_id"`

	HubLocation  string `json:"hub_location"`
	RecorderName string `json:"recorder_name"`
	EntryDate    string `json:"entry_date"`

	EntityName    string `json:"entity_name"`
	EntityPhone   string `json:"entity_phone"`
	EntityEmail   string `json:"entity_email"`
	EntityAddress string `json:"entity_address"`

	ProductName      string `json:"product_name"`
	ProductCategory  string `json:"product_category"`
	BatchSKU         string `json:"batch_sku"`
	SerialNumber     string `json:"serial_number"`
	Specifications   string `json:"specifications"`
	AccessoriesNotes string `json:"accessories_notes"`
	Description      string `json:"record_description"`
	ProductPhoto     string `json:"product_photo,omitempty"`

	VerificationDate  string `json:"verification_date"`
	VerificationStaff string `json:"verification_staff"`
	QualityCheck      string `json:"quality_check"`
	MaterialsNotes    string `json:"materials_notes"`
	ActionTaken       string `json:"action_taken"`

	Status string `json:"status"`

	ProcessingFee        float64 `json:"processing_fee"`
	AdditionalCost       float64 `json:"additional_cost"`
	TotalValue           float64 `json:"total_value"`
	AmountPaid           float64 `json:"amount_paid"`
	Balance              float64 `json:"balance"`
	TransactionCompleted bool    `json:"transaction_completed"`
	IsDispatched         bool    `json:"is_dispatched"`

	LogTimeline              []TimelineEntryDTO          `json:"log_timeline"`
	VerificationConfirmation VerificationConfirmationDTO `json:"verification_confirmation"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func RecordResponseFromEntity(record *entity.HubRecord) RecordResponse {
	timeline := make([]TimelineEntryDTO, 0, len(record.LogTimeline))
	for _, entry := range record.LogTimeline {
		timeline = append(timeline, TimelineEntryDTO(entry))
	}
	confirmation := record.VerificationConfirmation.Data()
	return RecordResponse{
		ID:     record.ID.String(),
		UserID: record.UserID.String(),

		HubLocation:  record.HubLocation,
		RecorderName: record.RecorderName,
		EntryDate:    record.EntryDate,

		EntityName:    record.EntityName,
		EntityPhone:   record.EntityPhone,
		EntityEmail:   record.EntityEmail,
		EntityAddress: record.EntityAddress,

		ProductName:      record.ProductName,
		ProductCategory:  string(record.ProductCategory),
		BatchSKU:         record.BatchSKU,
		SerialNumber:     record.SerialNumber,
		Specifications:   record.Specifications,
		AccessoriesNotes: record.AccessoriesNotes,
		Description:      record.Description,
		ProductPhoto:     record.ProductPhoto,

		VerificationDate:  record.VerificationDate,
		VerificationStaff: record.VerificationStaff,
		QualityCheck:      record.QualityCheck,
		MaterialsNotes:    record.MaterialsNotes,
		ActionTaken:       record.ActionTaken,

		Status: string(record.Status),

		ProcessingFee:        record.ProcessingFee,
		AdditionalCost:       record.AdditionalCost,
		TotalValue:           record.TotalValue,
		AmountPaid:           record.AmountPaid,
		Balance:              record.Balance,
		TransactionCompleted: record.TransactionCompleted,
		IsDispatched:         record.IsDispatched,

		LogTimeline:              timeline,
		VerificationConfirmation: VerificationConfirmationDTO(confirmation),

		CreatedAt: record.CreatedAt,
		UpdatedAt: record.UpdatedAt,
	}
}

func RecordResponsesFromEntities(records []entity.HubRecord) []RecordResponse {
	responses := make([]RecordResponse, 0, len(records))
	for i := range records {
		responses = append(responses, RecordResponseFromEntity(&records[i]))
	}
	return responses
}

type OwnerStatsResponse struct {
	Total              int     `json:"total"`
	Completed          int     `json:"completed"`
	Pending            int     `json:"pending"`
	InProgress         int     `json:"inProgress"`
	TotalRevenue       float64 `json:"totalRevenue"`
	OutstandingBalance float64 `json:"outstandingBalance"`
}
