package handler

import (
	"errors"
	"net/http"

	"hubtrack/internal/dto"
	"hubtrack/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type RecordHandler struct {
	Service  *service.RecordService
	Validate *validator.Validate
}

func NewRecordHandler(svc *service.RecordService, validate *validator.Validate) *RecordHandler {
	return &RecordHandler{Service: svc, Validate: validate}
}

func (h *RecordHandler) Create(c echo.Context) error {
	caller, ok := callerIdentity(c)
	if !ok {
		return writeError(c, http.StatusUnauthorized, errors.New("unauthorized"))
	}
	var req dto.RecordCreateRequest
	if err := decodeJSONDropUnknown(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := h.validate(req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	record, err := h.Service.Create(c.Request().Context(), caller, req)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, dto.RecordResponseFromEntity(record))
}

func (h *RecordHandler) Get(c echo.Context) error {
	caller, ok := callerIdentity(c)
	if !ok {
		return writeError(c, http.StatusUnauthorized, errors.New("unauthorized"))
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return writeError(c, http.StatusBadRequest, errors.New("invalid record id"))
	}
	record, err := h.Service.Get(c.Request().Context(), caller, id)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.RecordResponseFromEntity(record))
}

func (h *RecordHandler) List(c echo.Context) error {
	caller, ok := callerIdentity(c)
	if !ok {
		return writeError(c, http.StatusUnauthorized, errors.New("unauthorized"))
	}
	ownerID, err := parseOwnerParam(c)
	if err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	records, err := h.Service.List(c.Request().Context(), caller, ownerID, c.QueryParam("status"))
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.RecordResponsesFromEntities(records))
}

func (h *RecordHandler) Search(c echo.Context) error {
	caller, ok := callerIdentity(c)
	if !ok {
		return writeError(c, http.StatusUnauthorized, errors.New("unauthorized"))
	}
	ownerID, err := parseOwnerParam(c)
	if err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	records, err := h.Service.Search(c.Request().Context(), caller, ownerID, c.QueryParam("q"))
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.RecordResponsesFromEntities(records))
}

func (h *RecordHandler) Update(c echo.Context) error {
	caller, ok := callerIdentity(c)
	if !ok {
		return writeError(c, http.StatusUnauthorized, errors.New("unauthorized"))
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return writeError(c, http.StatusBadRequest, errors.New("invalid record id"))
	}
	var req dto.RecordUpdateRequest
	if err := decodeJSONDropUnknown(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := h.validate(req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	record, err := h.Service.Update(c.Request().Context(), caller, id, req)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.RecordResponseFromEntity(record))
}

func (h *RecordHandler) Delete(c echo.Context) error {
	caller, ok := callerIdentity(c)
	if !ok {
		return writeError(c, http.StatusUnauthorized, errors.New("unauthorized"))
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return writeError(c, http.StatusBadRequest, errors.New("invalid record id"))
	}
	if err := h.Service.Delete(c.Request().Context(), caller, id); err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}

func (h *RecordHandler) Stats(c echo.Context) error {
	caller, ok := callerIdentity(c)
	if !ok {
		return writeError(c, http.StatusUnauthorized, errors.New("unauthorized"))
	}
	ownerID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		return writeError(c, http.StatusBadRequest, errors.New("invalid user id"))
	}
	stats, err := h.Service.StatsForOwner(c.Request().Context(), caller, ownerID)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, stats)
}

func (h *RecordHandler) validate(payload any) error {
	if h.Validate == nil {
		return nil
	}
	return h.Validate.Struct(payload)
}

// parseOwnerParam reads the optional user_id query parameter. uuid.Nil
// means "the caller's own scope".
func parseOwnerParam(c echo.Context) (uuid.UUID, error) {
	raw := c.QueryParam("user_id")
	if raw == "" {
		return uuid.Nil, nil
	}
	ownerID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, errors.New("invalid user id")
	}
	return ownerID, nil
}
