// SPDX-License-Identifier: GPL-3.0-only

package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"propman-server/db"
	"propman-server/models"
	"propman-server/notifications"
	"strconv"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

func tenantDetails(t *models.Tenant) TenantDetails {
	details := TenantDetails{
		ID:                    t.ID,
		FirstName:             t.FirstName,
		LastName:              t.LastName,
		FullName:              t.FullName(),
		Initials:              t.Initials(),
		Email:                 t.Email,
		Phone:                 t.Phone,
		DateOfBirth:           formatTimePtr(t.DateOfBirth),
		Employer:              t.Employer,
		JobTitle:              t.JobTitle,
		MonthlyIncome:         t.MonthlyIncome,
		EmploymentLength:      t.EmploymentLength,
		UnitNumber:            t.UnitNumber,
		Status:                string(t.Status),
		EmergencyContactName:  t.EmergencyContactName,
		EmergencyContactPhone: t.EmergencyContactPhone,
		MoveInDate:            formatTimePtr(t.MoveInDate),
		MoveOutDate:           formatTimePtr(t.MoveOutDate),
		Notes:                 t.Notes,
		PropertyID:            t.PropertyID,
		CreatedAt:             t.CreatedAt.Format(timeFormat),
		UpdatedAt:             t.UpdatedAt.Format(timeFormat),
	}
	if t.Property != nil {
		details.PropertyName = t.Property.Name
	}
	return details
}

func findTenant(c echo.Context) (*models.Tenant, error) {
	tenantID, err := strconv.ParseUint(c.Param("tenant_id"), 10, 64)
	if err != nil {
		return nil, &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "tenant_id must be a numeric identifier",
		}
	}

	tenant := models.Tenant{}
	err = db.Conn.Preload("Property").Where("id = ?", tenantID).First(&tenant).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &echo.HTTPError{
			Code:    http.StatusNotFound,
			Message: "Tenant not found",
		}
	}
	if err != nil {
		c.Logger().Errorf("Failed to fetch tenant: %v", err)
		return nil, echo.ErrInternalServerError
	}
	return &tenant, nil
}

func applyTenantRequest(tenant *models.Tenant, req *TenantRequest) error {
	if req.FirstName == "" || req.LastName == "" {
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "first_name and last_name fields are required",
		}
	}
	if req.Email == "" {
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "email field is required",
		}
	}

	dateOfBirth, err := parseTimeField(req.DateOfBirth, "date_of_birth")
	if err != nil {
		return err
	}
	moveInDate, err := parseTimeField(req.MoveInDate, "move_in_date")
	if err != nil {
		return err
	}
	moveOutDate, err := parseTimeField(req.MoveOutDate, "move_out_date")
	if err != nil {
		return err
	}

	tenant.FirstName = req.FirstName
	tenant.LastName = req.LastName
	tenant.Email = req.Email
	tenant.Phone = req.Phone
	tenant.DateOfBirth = dateOfBirth
	tenant.Employer = req.Employer
	tenant.JobTitle = req.JobTitle
	tenant.MonthlyIncome = req.MonthlyIncome
	tenant.EmploymentLength = req.EmploymentLength
	tenant.UnitNumber = req.UnitNumber
	if req.Status != "" {
		tenant.Status = models.TenantStatus(req.Status)
	}
	tenant.EmergencyContactName = req.EmergencyContactName
	tenant.EmergencyContactPhone = req.EmergencyContactPhone
	tenant.MoveInDate = moveInDate
	tenant.MoveOutDate = moveOutDate
	tenant.Notes = req.Notes
	tenant.PropertyID = req.PropertyID
	return nil
}

// CreateTenantHandler godoc
// @Summary      Create a tenant
// @Description  Registers a tenant and publishes a tenant_added event.
// @Tags         tenants
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        tenantRequest  body  TenantRequest  true  "Tenant payload"
// @Success      201 {object} TenantResponse "Tenant created successfully"
// @Failure      400 {object} echo.HTTPError "Bad request"
// @Failure      401 {object} echo.HTTPError "Unauthorized"
// @Failure      409 {object} echo.HTTPError "Duplicate tenant"
// @Failure      500 {object} echo.HTTPError "Internal server error"
// @Router       /v1/tenants/ [post]
func CreateTenantHandler(c echo.Context) error {
	logger := c.Logger()

	var req TenantRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid tenant payload:", err)
		return echo.ErrBadRequest
	}

	tenant := models.Tenant{}
	if err := applyTenantRequest(&tenant, &req); err != nil {
		return err
	}

	count := db.Conn.Where("email = ?", tenant.Email).First(&models.Tenant{}).RowsAffected
	if count > 0 {
		return &echo.HTTPError{
			Code:    http.StatusConflict,
			Message: "A tenant with this email already exists",
		}
	}

	if err := db.Conn.Create(&tenant).Error; err != nil {
		logger.Errorf("Failed to create tenant: %v", err)
		return echo.ErrInternalServerError
	}

	event := notifications.Event{
		Type:              models.NotifyTenantAdded,
		Title:             "New tenant added",
		Message:           fmt.Sprintf("%s was added as a tenant", tenant.FullName()),
		RelatedObjectType: "tenant",
		RelatedObjectID:   &tenant.ID,
		ActionURL:         fmt.Sprintf("/v1/tenants/%d", tenant.ID),
	}
	if err := notifications.Publish(db.Conn, event); err != nil {
		logger.Errorf("Failed to publish tenant_added event: %v", err)
	}

	logger.Infof("Tenant %d created", tenant.ID)
	return c.JSON(http.StatusCreated, TenantResponse{
		Tenant:  tenantDetails(&tenant),
		Message: "Tenant created successfully",
	})
}

// GetAllTenantsHandler godoc
// @Summary      List tenants
// @Description  Returns tenants, optionally filtered by status or property.
// @Tags         tenants
// @Produce      json
// @Security     BearerAuth
// @Param        status       query  string  false  "Filter by status"
// @Param        property_id  query  int     false  "Filter by property"
// @Param        page         query  int     false  "Page number (default 1)"
// @Param        page_size    query  int     false  "Page size (default 10, max 100)"
// @Success      200 {object} TenantListResponse "Tenants retrieved successfully"
// @Failure      401 {object} echo.HTTPError "Unauthorized"
// @Failure      500 {object} echo.HTTPError "Internal server error"
// @Router       /v1/tenants/ [get]
func GetAllTenantsHandler(c echo.Context) error {
	logger := c.Logger()

	page, pageSize := parsePagination(c)

	query := db.Conn.Model(&models.Tenant{})
	if status := c.QueryParam("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if propertyID := c.QueryParam("property_id"); propertyID != "" {
		query = query.Where("property_id = ?", propertyID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		logger.Errorf("Failed to count tenants: %v", err)
		return echo.ErrInternalServerError
	}

	var tenants []models.Tenant
	if err := query.Preload("Property").
		Order("last_name ASC, first_name ASC").
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&tenants).Error; err != nil {
		logger.Errorf("Failed to fetch tenants: %v", err)
		return echo.ErrInternalServerError
	}

	details := make([]TenantDetails, 0, len(tenants))
	for i := range tenants {
		details = append(details, tenantDetails(&tenants[i]))
	}

	return c.JSON(http.StatusOK, TenantListResponse{
		Data: details,
		Pagination: PaginationDetails{
			Page:       page,
			PageSize:   pageSize,
			Total:      total,
			TotalPages: totalPages(total, pageSize),
		},
		Message: "Tenants retrieved successfully",
	})
}

// GetTenantHandler godoc
// @Summary      Get a tenant
// @Tags         tenants
// @Produce      json
// @Security     BearerAuth
// @Param        tenant_id  path  int  true  "Tenant ID"
// @Success      200 {object} TenantResponse "Tenant retrieved successfully"
// @Failure      401 {object} echo.HTTPError "Unauthorized"
// @Failure      404 {object} echo.HTTPError "Not found"
// @Failure      500 {object} echo.HTTPError "Internal server error"
// @Router       /v1/tenants/{tenant_id} [get]
func GetTenantHandler(c echo.Context) error {
	tenant, err := findTenant(c)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, TenantResponse{
		Tenant:  tenantDetails(tenant),
		Message: "Tenant retrieved successfully",
	})
}

// UpdateTenantHandler godoc
// @Summary      Update a tenant
// @Tags         tenants
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        tenant_id      path  int            true  "Tenant ID"
// @Param        tenantRequest  body  TenantRequest  true  "Tenant payload"
// @Success      200 {object} TenantResponse "Tenant updated successfully"
// @Failure      400 {object} echo.HTTPError "Bad request"
// @Failure      401 {object} echo.HTTPError "Unauthorized"
// @Failure      404 {object} echo.HTTPError "Not found"
// @Failure      500 {object} echo.HTTPError "Internal server error"
// @Router       /v1/tenants/{tenant_id} [put]
func UpdateTenantHandler(c echo.Context) error {
	logger := c.Logger()

	tenant, err := findTenant(c)
	if err != nil {
		return err
	}

	var req TenantRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid tenant payload:", err)
		return echo.ErrBadRequest
	}

	if err := applyTenantRequest(tenant, &req); err != nil {
		return err
	}

	if err := db.Conn.Save(tenant).Error; err != nil {
		logger.Errorf("Failed to update tenant: %v", err)
		return echo.ErrInternalServerError
	}

	return c.JSON(http.StatusOK, TenantResponse{
		Tenant:  tenantDetails(tenant),
		Message: "Tenant updated successfully",
	})
}

// DeleteTenantHandler godoc
// @Summary      Delete a tenant
// @Tags         tenants
// @Produce      json
// @Security     BearerAuth
// @Param        tenant_id  path  int  true  "Tenant ID"
// @Success      204 "Tenant deleted"
// @Failure      401 {object} echo.HTTPError "Unauthorized"
// @Failure      404 {object} echo.HTTPError "Not found"
// @Failure      500 {object} echo.HTTPError "Internal server error"
// @Router       /v1/tenants/{tenant_id} [delete]
func DeleteTenantHandler(c echo.Context) error {
	logger := c.Logger()

	tenant, err := findTenant(c)
	if err != nil {
		return err
	}

	if err := db.Conn.Delete(tenant).Error; err != nil {
		logger.Errorf("Failed to delete tenant: %v", err)
		return echo.ErrInternalServerError
	}

	logger.Infof("Tenant %d deleted", tenant.ID)
	return c.NoContent(http.StatusNoContent)
}
