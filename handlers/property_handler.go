// SPDX-License-Identifier: GPL-3.0-only

package handlers

import (
	"errors"
	"net/http"
	"propman-server/db"
	"propman-server/middlewares"
	"propman-server/models"
	"strconv"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

func propertyDetails(p *models.Property) PropertyDetails {
	return PropertyDetails{
		ID:              p.ID,
		Name:            p.Name,
		PropertyType:    string(p.PropertyType),
		Status:          string(p.Status),
		Address:         p.Address,
		City:            p.City,
		State:           p.State,
		ZipCode:         p.ZipCode,
		Country:         p.Country,
		FullAddress:     p.FullAddress(),
		TotalUnits:      p.TotalUnits,
		OccupiedUnits:   p.OccupiedUnits,
		SizeSqft:        p.SizeSqft,
		YearBuilt:       p.YearBuilt,
		PurchasePrice:   p.PurchasePrice,
		CurrentValue:    p.CurrentValue,
		MonthlyRevenue:  p.MonthlyRevenue,
		MonthlyExpenses: p.MonthlyExpenses,
		OccupancyRate:   p.OccupancyRate(),
		ROI:             p.ROI(),
		Description:     p.Description,
		ImageURL:        p.ImageURL,
		AcquisitionDate: formatTimePtr(p.AcquisitionDate),
		CreatedAt:       p.CreatedAt.Format(timeFormat),
		UpdatedAt:       p.UpdatedAt.Format(timeFormat),
	}
}

func findProperty(c echo.Context) (*models.Property, error) {
	propertyID, err := strconv.ParseUint(c.Param("property_id"), 10, 64)
	if err != nil {
		return nil, &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "property_id must be a numeric identifier",
		}
	}

	property := models.Property{}
	err = db.Conn.Where("id = ?", propertyID).First(&property).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &echo.HTTPError{
			Code:    http.StatusNotFound,
			Message: "Property not found",
		}
	}
	if err != nil {
		c.Logger().Errorf("Failed to fetch property: %v", err)
		return nil, echo.ErrInternalServerError
	}
	return &property, nil
}

func applyPropertyRequest(property *models.Property, req *PropertyRequest) error {
	if req.Name == "" {
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "name field is required",
		}
	}
	if req.Address == "" {
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "address field is required",
		}
	}
	if req.OccupiedUnits > req.TotalUnits {
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "occupied_units cannot exceed total_units",
		}
	}

	acquisitionDate, err := parseTimeField(req.AcquisitionDate, "acquisition_date")
	if err != nil {
		return err
	}

	property.Name = req.Name
	if req.PropertyType != "" {
		property.PropertyType = models.PropertyType(req.PropertyType)
	}
	if req.Status != "" {
		property.Status = models.PropertyStatus(req.Status)
	}
	property.Address = req.Address
	property.City = req.City
	property.State = req.State
	property.ZipCode = req.ZipCode
	if req.Country != "" {
		property.Country = req.Country
	}
	if req.TotalUnits > 0 {
		property.TotalUnits = req.TotalUnits
	}
	property.OccupiedUnits = req.OccupiedUnits
	property.SizeSqft = req.SizeSqft
	property.YearBuilt = req.YearBuilt
	property.PurchasePrice = req.PurchasePrice
	property.CurrentValue = req.CurrentValue
	property.MonthlyRevenue = req.MonthlyRevenue
	property.MonthlyExpenses = req.MonthlyExpenses
	property.Description = req.Description
	property.ImageURL = req.ImageURL
	property.AcquisitionDate = acquisitionDate
	return nil
}

// CreatePropertyHandler godoc
// @Summary      Create a property
// @Description  Adds a property to the portfolio.
// @Tags         properties
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        propertyRequest  body  PropertyRequest  true  "Property payload"
// @Success      201 {object} PropertyResponse "Property created successfully"
// @Failure      400 {object} echo.HTTPError "Bad request"
// @Failure      401 {object} echo.HTTPError "Unauthorized"
// @Failure      500 {object} echo.HTTPError "Internal server error"
// @Router       /v1/properties/ [post]
func CreatePropertyHandler(c echo.Context) error {
	logger := c.Logger()

	userID, err := middlewares.GetAuthenticatedUserID(c)
	if err != nil {
		return echo.ErrUnauthorized
	}

	var req PropertyRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid property payload:", err)
		return echo.ErrBadRequest
	}

	property := models.Property{CreatedByID: &userID}
	if err := applyPropertyRequest(&property, &req); err != nil {
		return err
	}

	if err := db.Conn.Create(&property).Error; err != nil {
		logger.Errorf("Failed to create property: %v", err)
		return echo.ErrInternalServerError
	}

	logger.Infof("Property %d created", property.ID)
	return c.JSON(http.StatusCreated, PropertyResponse{
		Property: propertyDetails(&property),
		Message:  "Property created successfully",
	})
}

// GetAllPropertiesHandler godoc
// @Summary      List properties
// @Description  Returns the property portfolio, optionally filtered by
// @Description  status or type.
// @Tags         properties
// @Produce      json
// @Security     BearerAuth
// @Param        status        query  string  false  "Filter by status"
// @Param        property_type query  string  false  "Filter by type"
// @Param        page          query  int     false  "Page number (default 1)"
// @Param        page_size     query  int     false  "Page size (default 10, max 100)"
// @Success      200 {object} PropertyListResponse "Properties retrieved successfully"
// @Failure      401 {object} echo.HTTPError "Unauthorized"
// @Failure      500 {object} echo.HTTPError "Internal server error"
// @Router       /v1/properties/ [get]
func GetAllPropertiesHandler(c echo.Context) error {
	logger := c.Logger()

	page, pageSize := parsePagination(c)

	query := db.Conn.Model(&models.Property{})
	if status := c.QueryParam("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if ptype := c.QueryParam("property_type"); ptype != "" {
		query = query.Where("property_type = ?", ptype)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		logger.Errorf("Failed to count properties: %v", err)
		return echo.ErrInternalServerError
	}

	var properties []models.Property
	if err := query.Order("created_at DESC").
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&properties).Error; err != nil {
		logger.Errorf("Failed to fetch properties: %v", err)
		return echo.ErrInternalServerError
	}

	details := make([]PropertyDetails, 0, len(properties))
	for i := range properties {
		details = append(details, propertyDetails(&properties[i]))
	}

	return c.JSON(http.StatusOK, PropertyListResponse{
		Data: details,
		Pagination: PaginationDetails{
			Page:       page,
			PageSize:   pageSize,
			Total:      total,
			TotalPages: totalPages(total, pageSize),
		},
		Message: "Properties retrieved successfully",
	})
}

// GetPropertyHandler godoc
// @Summary      Get a property
// @Tags         properties
// @Produce      json
// @Security     BearerAuth
// @Param        property_id  path  int  true  "Property ID"
// @Success      200 {object} PropertyResponse "Property retrieved successfully"
// @Failure      401 {object} echo.HTTPError "Unauthorized"
// @Failure      404 {object} echo.HTTPError "Not found"
// @Failure      500 {object} echo.HTTPError "Internal server error"
// @Router       /v1/properties/{property_id} [get]
func GetPropertyHandler(c echo.Context) error {
	property, err := findProperty(c)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, PropertyResponse{
		Property: propertyDetails(property),
		Message:  "Property retrieved successfully",
	})
}

// UpdatePropertyHandler godoc
// @Summary      Update a property
// @Tags         properties
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        property_id      path  int              true  "Property ID"
// @Param        propertyRequest  body  PropertyRequest  true  "Property payload"
// @Success      200 {object} PropertyResponse "Property updated successfully"
// @Failure      400 {object} echo.HTTPError "Bad request"
// @Failure      401 {object} echo.HTTPError "Unauthorized"
// @Failure      404 {object} echo.HTTPError "Not found"
// @Failure      500 {object} echo.HTTPError "Internal server error"
// @Router       /v1/properties/{property_id} [put]
func UpdatePropertyHandler(c echo.Context) error {
	logger := c.Logger()

	property, err := findProperty(c)
	if err != nil {
		return err
	}

	var req PropertyRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid property payload:", err)
		return echo.ErrBadRequest
	}

	if err := applyPropertyRequest(property, &req); err != nil {
		return err
	}

	if err := db.Conn.Save(property).Error; err != nil {
		logger.Errorf("Failed to update property: %v", err)
		return echo.ErrInternalServerError
	}

	return c.JSON(http.StatusOK, PropertyResponse{
		Property: propertyDetails(property),
		Message:  "Property updated successfully",
	})
}

// DeletePropertyHandler godoc
// @Summary      Delete a property
// @Description  Removes a property. Leases and financial records attached
// @Description  to it are removed with it.
// @Tags         properties
// @Produce      json
// @Security     BearerAuth
// @Param        property_id  path  int  true  "Property ID"
// @Success      204 "Property deleted"
// @Failure      401 {object} echo.HTTPError "Unauthorized"
// @Failure      404 {object} echo.HTTPError "Not found"
// @Failure      500 {object} echo.HTTPError "Internal server error"
// @Router       /v1/properties/{property_id} [delete]
func DeletePropertyHandler(c echo.Context) error {
	logger := c.Logger()

	property, err := findProperty(c)
	if err != nil {
		return err
	}

	if err := db.Conn.Delete(property).Error; err != nil {
		logger.Errorf("Failed to delete property: %v", err)
		return echo.ErrInternalServerError
	}

	logger.Infof("Property %d deleted", property.ID)
	return c.NoContent(http.StatusNoContent)
}
