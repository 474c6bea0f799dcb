// SPDX-License-Identifier: GPL-3.0-only

package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"propman-server/db"
	"propman-server/middlewares"
	"propman-server/models"
	"propman-server/notifications"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// expiringSoonWindow is how far ahead a lease end date counts as
// expiring soon.
const expiringSoonWindow = 30 * 24 * time.Hour

func leaseDetails(l *models.Lease) LeaseDetails {
	details := LeaseDetails{
		ID:              l.ID,
		StartDate:       l.StartDate.Format(timeFormat),
		EndDate:         l.EndDate.Format(timeFormat),
		MonthlyRent:     l.MonthlyRent,
		SecurityDeposit: l.SecurityDeposit,
		Status:          string(l.Status),
		Notes:           l.Notes,
		PropertyID:      l.PropertyID,
		TenantID:        l.TenantID,
		CreatedAt:       l.CreatedAt.Format(timeFormat),
		UpdatedAt:       l.UpdatedAt.Format(timeFormat),
	}
	if l.Property.ID != 0 {
		details.PropertyName = l.Property.Name
	}
	if l.Tenant.ID != 0 {
		details.TenantName = l.Tenant.FullName()
	}
	return details
}

func findLease(c echo.Context) (*models.Lease, error) {
	leaseID, err := strconv.ParseUint(c.Param("lease_id"), 10, 64)
	if err != nil {
		return nil, &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "lease_id must be a numeric identifier",
		}
	}

	lease := models.Lease{}
	err = db.Conn.Preload("Property").Preload("Tenant").Where("id = ?", leaseID).First(&lease).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &echo.HTTPError{
			Code:    http.StatusNotFound,
			Message: "Lease not found",
		}
	}
	if err != nil {
		c.Logger().Errorf("Failed to fetch lease: %v", err)
		return nil, echo.ErrInternalServerError
	}
	return &lease, nil
}

// deriveLeaseStatus computes the status from the lease dates unless the
// lease was explicitly terminated.
func deriveLeaseStatus(lease *models.Lease, now time.Time) models.LeaseStatus {
	if lease.Status == models.LeaseTerminated {
		return models.LeaseTerminated
	}
	switch {
	case now.Before(lease.StartDate):
		return models.LeasePending
	case now.After(lease.EndDate):
		return models.LeaseExpired
	case lease.EndDate.Sub(now) <= expiringSoonWindow:
		return models.LeaseExpiringSoon
	default:
		return models.LeaseActive
	}
}

func publishLeaseStatusEvent(c echo.Context, lease *models.Lease) {
	var event notifications.Event

	switch lease.Status {
	case models.LeaseExpiringSoon:
		event = notifications.Event{
			Type:     models.NotifyLeaseExpiring,
			Priority: models.PriorityHigh,
			Title:    "Lease expiring soon",
			Message:  fmt.Sprintf("Lease %d ends on %s", lease.ID, lease.EndDate.Format("2006-01-02")),
		}
	case models.LeaseExpired:
		event = notifications.Event{
			Type:     models.NotifyLeaseExpired,
			Priority: models.PriorityUrgent,
			Title:    "Lease expired",
			Message:  fmt.Sprintf("Lease %d ended on %s", lease.ID, lease.EndDate.Format("2006-01-02")),
		}
	default:
		return
	}

	event.RelatedObjectType = "lease"
	event.RelatedObjectID = &lease.ID
	event.ActionURL = fmt.Sprintf("/v1/leases/%d", lease.ID)

	if err := notifications.Publish(db.Conn, event); err != nil {
		c.Logger().Errorf("Failed to publish lease status event: %v", err)
	}
}

func applyLeaseRequest(c echo.Context, lease *models.Lease, req *LeaseRequest) error {
	if req.StartDate == "" || req.EndDate == "" {
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "start_date and end_date fields are required",
		}
	}
	if req.MonthlyRent <= 0 {
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "monthly_rent must be greater than zero",
		}
	}
	if req.PropertyID == 0 || req.TenantID == 0 {
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "property_id and tenant_id fields are required",
		}
	}

	startDate, err := parseTimeField(&req.StartDate, "start_date")
	if err != nil {
		return err
	}
	endDate, err := parseTimeField(&req.EndDate, "end_date")
	if err != nil {
		return err
	}
	if !endDate.After(*startDate) {
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "end_date must be after start_date",
		}
	}

	var count int64
	if err := db.Conn.Model(&models.Property{}).Where("id = ?", req.PropertyID).Count(&count).Error; err != nil || count == 0 {
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "property_id does not reference an existing property",
		}
	}
	if err := db.Conn.Model(&models.Tenant{}).Where("id = ?", req.TenantID).Count(&count).Error; err != nil || count == 0 {
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "tenant_id does not reference an existing tenant",
		}
	}

	lease.StartDate = *startDate
	lease.EndDate = *endDate
	lease.MonthlyRent = req.MonthlyRent
	lease.SecurityDeposit = req.SecurityDeposit
	lease.Notes = req.Notes
	lease.PropertyID = req.PropertyID
	lease.TenantID = req.TenantID

	if req.Status == string(models.LeaseTerminated) {
		lease.Status = models.LeaseTerminated
	} else {
		lease.Status = deriveLeaseStatus(lease, time.Now())
	}
	return nil
}

// CreateLeaseHandler godoc
// @Summary      Create a lease
// @Description  Creates a lease linking a tenant to a property. The status
// @Description  is derived from the lease dates; a lease ending within 30
// @Description  days publishes a lease_expiring event.
// @Tags         leases
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        leaseRequest  body  LeaseRequest  true  "Lease payload"
// @Success      201 {object} LeaseResponse "Lease created successfully"
// @Failure      400 {object} echo.HTTPError "Bad request"
// @Failure      401 {object} echo.HTTPError "Unauthorized"
// @Failure      500 {object} echo.HTTPError "Internal server error"
// @Router       /v1/leases/ [post]
func CreateLeaseHandler(c echo.Context) error {
	logger := c.Logger()

	userID, err := middlewares.GetAuthenticatedUserID(c)
	if err != nil {
		return echo.ErrUnauthorized
	}

	var req LeaseRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid lease payload:", err)
		return echo.ErrBadRequest
	}

	lease := models.Lease{CreatedByID: &userID}
	if err := applyLeaseRequest(c, &lease, &req); err != nil {
		return err
	}

	if err := db.Conn.Create(&lease).Error; err != nil {
		logger.Errorf("Failed to create lease: %v", err)
		return echo.ErrInternalServerError
	}

	publishLeaseStatusEvent(c, &lease)

	logger.Infof("Lease %d created", lease.ID)
	return c.JSON(http.StatusCreated, LeaseResponse{
		Lease:   leaseDetails(&lease),
		Message: "Lease created successfully",
	})
}

// GetAllLeasesHandler godoc
// @Summary      List leases
// @Description  Returns leases, optionally filtered by status, property
// @Description  or tenant.
// @Tags         leases
// @Produce      json
// @Security     BearerAuth
// @Param        status       query  string  false  "Filter by status"
// @Param        property_id  query  int     false  "Filter by property"
// @Param        tenant_id    query  int     false  "Filter by tenant"
// @Param        page         query  int     false  "Page number (default 1)"
// @Param        page_size    query  int     false  "Page size (default 10, max 100)"
// @Success      200 {object} LeaseListResponse "Leases retrieved successfully"
// @Failure      401 {object} echo.HTTPError "Unauthorized"
// @Failure      500 {object} echo.HTTPError "Internal server error"
// @Router       /v1/leases/ [get]
func GetAllLeasesHandler(c echo.Context) error {
	logger := c.Logger()

	page, pageSize := parsePagination(c)

	query := db.Conn.Model(&models.Lease{})
	if status := c.QueryParam("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if propertyID := c.QueryParam("property_id"); propertyID != "" {
		query = query.Where("property_id = ?", propertyID)
	}
	if tenantID := c.QueryParam("tenant_id"); tenantID != "" {
		query = query.Where("tenant_id = ?", tenantID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		logger.Errorf("Failed to count leases: %v", err)
		return echo.ErrInternalServerError
	}

	var leases []models.Lease
	if err := query.Preload("Property").Preload("Tenant").
		Order("end_date ASC").
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&leases).Error; err != nil {
		logger.Errorf("Failed to fetch leases: %v", err)
		return echo.ErrInternalServerError
	}

	details := make([]LeaseDetails, 0, len(leases))
	for i := range leases {
		details = append(details, leaseDetails(&leases[i]))
	}

	return c.JSON(http.StatusOK, LeaseListResponse{
		Data: details,
		Pagination: PaginationDetails{
			Page:       page,
			PageSize:   pageSize,
			Total:      total,
			TotalPages: totalPages(total, pageSize),
		},
		Message: "Leases retrieved successfully",
	})
}

// GetLeaseHandler godoc
// @Summary      Get a lease
// @Tags         leases
// @Produce      json
// @Security     BearerAuth
// @Param        lease_id  path  int  true  "Lease ID"
// @Success      200 {object} LeaseResponse "Lease retrieved successfully"
// @Failure      401 {object} echo.HTTPError "Unauthorized"
// @Failure      404 {object} echo.HTTPError "Not found"
// @Failure      500 {object} echo.HTTPError "Internal server error"
// @Router       /v1/leases/{lease_id} [get]
func GetLeaseHandler(c echo.Context) error {
	lease, err := findLease(c)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, LeaseResponse{
		Lease:   leaseDetails(lease),
		Message: "Lease retrieved successfully",
	})
}

// UpdateLeaseHandler godoc
// @Summary      Update a lease
// @Tags         leases
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        lease_id      path  int           true  "Lease ID"
// @Param        leaseRequest  body  LeaseRequest  true  "Lease payload"
// @Success      200 {object} LeaseResponse "Lease updated successfully"
// @Failure      400 {object} echo.HTTPError "Bad request"
// @Failure      401 {object} echo.HTTPError "Unauthorized"
// @Failure      404 {object} echo.HTTPError "Not found"
// @Failure      500 {object} echo.HTTPError "Internal server error"
// @Router       /v1/leases/{lease_id} [put]
func UpdateLeaseHandler(c echo.Context) error {
	logger := c.Logger()

	lease, err := findLease(c)
	if err != nil {
		return err
	}

	var req LeaseRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid lease payload:", err)
		return echo.ErrBadRequest
	}

	if err := applyLeaseRequest(c, lease, &req); err != nil {
		return err
	}

	if err := db.Conn.Save(lease).Error; err != nil {
		logger.Errorf("Failed to update lease: %v", err)
		return echo.ErrInternalServerError
	}

	publishLeaseStatusEvent(c, lease)

	return c.JSON(http.StatusOK, LeaseResponse{
		Lease:   leaseDetails(lease),
		Message: "Lease updated successfully",
	})
}

// DeleteLeaseHandler godoc
// @Summary      Delete a lease
// @Tags         leases
// @Produce      json
// @Security     BearerAuth
// @Param        lease_id  path  int  true  "Lease ID"
// @Success      204 "Lease deleted"
// @Failure      401 {object} echo.HTTPError "Unauthorized"
// @Failure      404 {object} echo.HTTPError "Not found"
// @Failure      500 {object} echo.HTTPError "Internal server error"
// @Router       /v1/leases/{lease_id} [delete]
func DeleteLeaseHandler(c echo.Context) error {
	logger := c.Logger()

	lease, err := findLease(c)
	if err != nil {
		return err
	}

	if err := db.Conn.Delete(lease).Error; err != nil {
		logger.Errorf("Failed to delete lease: %v", err)
		return echo.ErrInternalServerError
	}

	logger.Infof("Lease %d deleted", lease.ID)
	return c.NoContent(http.StatusNoContent)
}
