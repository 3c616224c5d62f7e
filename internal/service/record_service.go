package service

import (
	"context"
	"strings"

	"hubtrack/internal/codec"
	"hubtrack/internal/dto"
	"hubtrack/internal/entity"
	"hubtrack/internal/repository"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const timelineDateLayout = "2006-01-02"

// RecordService owns the hub-record lifecycle: validation and defaults,
// financial recomputation, status timeline, the contact-field codec at the
// persistence boundary, and the ownership rules gating every operation.
type RecordService struct {
	records repository.RecordRepository
	fields  *codec.FieldCodec
	clock   Clock
}

// NewRecordService builds the service. fields may be nil, in which case
// contact data is stored in plaintext; reads still decode historical
// ciphertext when a codec is present.
func NewRecordService(records repository.RecordRepository, fields *codec.FieldCodec, clock Clock) *RecordService {
	return &RecordService{records: records, fields: fields, clock: clock}
}

func (s *RecordService) Create(ctx context.Context, caller Identity, input dto.RecordCreateRequest) (*entity.HubRecord, error) {
	entityName := strings.TrimSpace(input.EntityName)
	entityPhone := strings.TrimSpace(input.EntityPhone)
	if entityName == "" || entityPhone == "" {
		return nil, ErrInvalidInput
	}
	if input.ProcessingFee < 0 || input.AdditionalCost < 0 || input.AmountPaid < 0 {
		return nil, ErrInvalidInput
	}

	category := entity.ProductCategory(input.ProductCategory)
	if input.ProductCategory == "" {
		category = entity.CategoryOther
	}
	if !category.IsValid() {
		return nil, ErrInvalidInput
	}

	status := category.InitialStatus()
	if input.Status != "" {
		status = entity.RecordStatus(input.Status)
		if !status.IsValid() {
			return nil, ErrInvalidInput
		}
	}

	total, balance := Recompute(input.ProcessingFee, input.AdditionalCost, input.AmountPaid)
	if input.TotalValue != nil {
		total = *input.TotalValue
	}
	if input.Balance != nil {
		balance = *input.Balance
	}

	confirmation := entity.VerificationConfirmation{}
	if input.VerificationConfirmation != nil {
		confirmation = entity.VerificationConfirmation(*input.VerificationConfirmation)
	}

	record := &entity.HubRecord{
		// Owner is always the caller, whatever the request claimed.
		UserID: caller.UserID,

		HubLocation:  input.HubLocation,
		RecorderName: input.RecorderName,
		EntryDate:    input.EntryDate,

		EntityName:    entityName,
		EntityPhone:   entityPhone,
		EntityEmail:   strings.TrimSpace(input.EntityEmail),
		EntityAddress: input.EntityAddress,

		ProductName:      input.ProductName,
		ProductCategory:  category,
		BatchSKU:         input.BatchSKU,
		SerialNumber:     input.SerialNumber,
		Specifications:   input.Specifications,
		AccessoriesNotes: input.AccessoriesNotes,
		Description:      input.Description,
		ProductPhoto:     input.ProductPhoto,

		VerificationDate:  input.VerificationDate,
		VerificationStaff: input.VerificationStaff,
		QualityCheck:      input.QualityCheck,
		MaterialsNotes:    input.MaterialsNotes,
		ActionTaken:       input.ActionTaken,

		Status: status,

		ProcessingFee:        input.ProcessingFee,
		AdditionalCost:       input.AdditionalCost,
		TotalValue:           total,
		AmountPaid:           input.AmountPaid,
		Balance:              balance,
		TransactionCompleted: input.TransactionCompleted,
		IsDispatched:         input.IsDispatched,

		LogTimeline:              timelineFromDTOs(input.LogTimeline),
		VerificationConfirmation: datatypes.NewJSONType(confirmation),
	}

	if err := s.sealContactFields(record); err != nil {
		return nil, err
	}
	if err := s.records.Create(ctx, record); err != nil {
		return nil, err
	}
	s.openContactFields(record)
	return record, nil
}

func (s *RecordService) Get(ctx context.Context, caller Identity, id uuid.UUID) (*entity.HubRecord, error) {
	record, err := s.records.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, ErrNotFound
	}
	if err := authorizeRecordAccess(caller, record.UserID); err != nil {
		return nil, err
	}
	s.openContactFields(record)
	return record, nil
}

// List returns the records in the resolved owner scope, optionally narrowed
// to one status. A non-admin asking for someone else's scope gets their own.
func (s *RecordService) List(ctx context.Context, caller Identity, ownerID uuid.UUID, status string) ([]entity.HubRecord, error) {
	owner := scopeOwner(caller, ownerID)

	var records []entity.HubRecord
	var err error
	if status != "" {
		filter := entity.RecordStatus(status)
		if !filter.IsValid() {
			return nil, ErrInvalidInput
		}
		records, err = s.records.ListByOwnerAndStatus(ctx, owner, filter)
	} else {
		records, err = s.records.ListByOwner(ctx, owner)
	}
	if err != nil {
		return nil, err
	}
	for i := range records {
		s.openContactFields(&records[i])
	}
	return records, nil
}

func (s *RecordService) Search(ctx context.Context, caller Identity, ownerID uuid.UUID, query string) ([]entity.HubRecord, error) {
	owner := scopeOwner(caller, ownerID)
	records, err := s.records.Search(ctx, owner, strings.TrimSpace(query))
	if err != nil {
		return nil, err
	}
	for i := range records {
		s.openContactFields(&records[i])
	}
	return records, nil
}

func (s *RecordService) Update(ctx context.Context, caller Identity, id uuid.UUID, patch dto.RecordUpdateRequest) (*entity.HubRecord, error) {
	record, err := s.records.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, ErrNotFound
	}
	if err := authorizeRecordAccess(caller, record.UserID); err != nil {
		return nil, err
	}

	if err := s.applyPatch(record, patch); err != nil {
		return nil, err
	}
	if err := s.records.Update(ctx, record); err != nil {
		return nil, err
	}
	s.openContactFields(record)
	return record, nil
}

func (s *RecordService) Delete(ctx context.Context, caller Identity, id uuid.UUID) error {
	record, err := s.records.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if record == nil {
		return ErrNotFound
	}
	if err := authorizeRecordAccess(caller, record.UserID); err != nil {
		return err
	}
	return s.records.Delete(ctx, id)
}

// StatsForOwner aggregates the dashboard counters for one owner scope.
// Completed covers Verified, Sold and Completed; in-progress covers
// In-Transit, Active and Received.
func (s *RecordService) StatsForOwner(ctx context.Context, caller Identity, ownerID uuid.UUID) (*dto.OwnerStatsResponse, error) {
	owner := scopeOwner(caller, ownerID)
	records, err := s.records.ListByOwner(ctx, owner)
	if err != nil {
		return nil, err
	}

	stats := &dto.OwnerStatsResponse{Total: len(records)}
	for i := range records {
		switch records[i].Status {
		case entity.StatusVerified, entity.StatusSold, entity.StatusCompleted:
			stats.Completed++
		case entity.StatusPending:
			stats.Pending++
		case entity.StatusInTransit, entity.StatusActive, entity.StatusReceived:
			stats.InProgress++
		}
		stats.TotalRevenue += records[i].AmountPaid
		stats.OutstandingBalance += records[i].Balance
	}
	return stats, nil
}

// applyPatch merges a partial update into the record. Absent fields stay
// untouched; explicit values win. Status changes append a timeline entry.
func (s *RecordService) applyPatch(record *entity.HubRecord, patch dto.RecordUpdateRequest) error {
	if patch.EntityName != nil && strings.TrimSpace(*patch.EntityName) == "" {
		return ErrInvalidInput
	}
	if patch.EntityPhone != nil && strings.TrimSpace(*patch.EntityPhone) == "" {
		return ErrInvalidInput
	}
	if negative(patch.ProcessingFee) || negative(patch.AdditionalCost) || negative(patch.AmountPaid) {
		return ErrInvalidInput
	}

	applyString(&record.HubLocation, patch.HubLocation)
	applyString(&record.RecorderName, patch.RecorderName)
	applyString(&record.EntryDate, patch.EntryDate)
	applyString(&record.EntityAddress, patch.EntityAddress)
	applyString(&record.ProductName, patch.ProductName)
	applyString(&record.BatchSKU, patch.BatchSKU)
	applyString(&record.SerialNumber, patch.SerialNumber)
	applyString(&record.Specifications, patch.Specifications)
	applyString(&record.AccessoriesNotes, patch.AccessoriesNotes)
	applyString(&record.Description, patch.Description)
	applyString(&record.ProductPhoto, patch.ProductPhoto)
	applyString(&record.VerificationDate, patch.VerificationDate)
	applyString(&record.VerificationStaff, patch.VerificationStaff)
	applyString(&record.QualityCheck, patch.QualityCheck)
	applyString(&record.MaterialsNotes, patch.MaterialsNotes)
	applyString(&record.ActionTaken, patch.ActionTaken)

	if patch.EntityName != nil {
		record.EntityName = strings.TrimSpace(*patch.EntityName)
	}

	if patch.ProductCategory != nil {
		category := entity.ProductCategory(*patch.ProductCategory)
		if !category.IsValid() {
			return ErrInvalidInput
		}
		record.ProductCategory = category
	}

	if patch.LogTimeline != nil {
		record.LogTimeline = timelineFromDTOs(*patch.LogTimeline)
	}
	if patch.VerificationConfirmation != nil {
		record.VerificationConfirmation = datatypes.NewJSONType(
			entity.VerificationConfirmation(*patch.VerificationConfirmation))
	}

	if patch.Status != nil {
		status := entity.RecordStatus(*patch.Status)
		if !status.IsValid() {
			return ErrInvalidInput
		}
		if status != record.Status {
			record.Status = status
			note := ""
			if patch.StatusNote != nil {
				note = *patch.StatusNote
			}
			record.LogTimeline = append(record.LogTimeline, entity.TimelineEntry{
				Step:   string(status),
				Date:   s.clock.Now().Format(timelineDateLayout),
				Note:   note,
				Status: string(status),
			})
		}
	}

	inputsTouched := patch.ProcessingFee != nil || patch.AdditionalCost != nil || patch.AmountPaid != nil
	if patch.ProcessingFee != nil {
		record.ProcessingFee = *patch.ProcessingFee
	}
	if patch.AdditionalCost != nil {
		record.AdditionalCost = *patch.AdditionalCost
	}
	if patch.AmountPaid != nil {
		record.AmountPaid = *patch.AmountPaid
	}
	if inputsTouched {
		total, balance := Recompute(record.ProcessingFee, record.AdditionalCost, record.AmountPaid)
		if patch.TotalValue == nil {
			record.TotalValue = total
		}
		if patch.Balance == nil {
			record.Balance = balance
		}
	}
	// Direct overwrites bypass recomputation: staff corrections are stored
	// as given, even when they disagree with fee+cost.
	if patch.TotalValue != nil {
		record.TotalValue = *patch.TotalValue
	}
	if patch.Balance != nil {
		record.Balance = *patch.Balance
	}

	if patch.TransactionCompleted != nil {
		record.TransactionCompleted = *patch.TransactionCompleted
	}
	if patch.IsDispatched != nil {
		record.IsDispatched = *patch.IsDispatched
	}

	if patch.EntityPhone != nil {
		phone, err := s.sealField(strings.TrimSpace(*patch.EntityPhone))
		if err != nil {
			return err
		}
		record.EntityPhone = phone
	}
	if patch.EntityEmail != nil {
		email, err := s.sealField(strings.TrimSpace(*patch.EntityEmail))
		if err != nil {
			return err
		}
		record.EntityEmail = email
	}
	return nil
}

// sealContactFields encrypts the sensitive contact fields in place before
// the record is persisted.
func (s *RecordService) sealContactFields(record *entity.HubRecord) error {
	phone, err := s.sealField(record.EntityPhone)
	if err != nil {
		return err
	}
	email, err := s.sealField(record.EntityEmail)
	if err != nil {
		return err
	}
	record.EntityPhone = phone
	record.EntityEmail = email
	return nil
}

func (s *RecordService) sealField(value string) (string, error) {
	if s.fields == nil || value == "" {
		return value, nil
	}
	return s.fields.Encode(value)
}

// openContactFields is the read-path view transform: every record handed to
// a caller goes through it, so stored ciphertext never leaks.
func (s *RecordService) openContactFields(record *entity.HubRecord) {
	if s.fields == nil {
		return
	}
	record.EntityPhone = s.fields.Decode(record.EntityPhone)
	record.EntityEmail = s.fields.Decode(record.EntityEmail)
}

// timelineFromDTOs converts client timeline entries, discarding the ones
// without a step.
func timelineFromDTOs(entries []dto.TimelineEntryDTO) datatypes.JSONSlice[entity.TimelineEntry] {
	timeline := make(datatypes.JSONSlice[entity.TimelineEntry], 0, len(entries))
	for _, entry := range entries {
		if strings.TrimSpace(entry.Step) == "" {
			continue
		}
		timeline = append(timeline, entity.TimelineEntry(entry))
	}
	return timeline
}

func applyString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func negative(value *float64) bool {
	return value != nil && *value < 0
}
