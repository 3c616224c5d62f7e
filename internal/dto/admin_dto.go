package dto

import "hubtrack/internal/entity"

type AdminUserResponse struct {
	UserResponse
	RecordCount int64 `json:"record_count"`
}

func AdminUserResponseFromEntity(user *entity.User, recordCount int64) AdminUserResponse {
	return AdminUserResponse{
		UserResponse: UserResponseFromEntity(user),
		RecordCount:  recordCount,
	}
}

type AdminRecordsResponse struct {
	Records []RecordResponse `json:"records"`
	Total   int64            `json:"total"`
}

type GlobalStatsResponse struct {
	TotalUsers   int64   `json:"totalUsers"`
	TotalRecords int64   `json:"totalRecords"`
	Pending      int64   `json:"pending"`
	Completed    int64   `json:"completed"`
	InProgress   int64   `json:"inProgress"`
	TotalRevenue float64 `json:"totalRevenue"`
}

type SetUserActiveRequest struct {
	IsActive *bool `json:"is_active" validate:"required"`
}

type SetUserRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=user admin"`
}
