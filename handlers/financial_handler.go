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

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

func revenueDetails(r *models.Revenue) RevenueDetails {
	return RevenueDetails{
		ID:              r.ID,
		Source:          string(r.Source),
		Amount:          r.Amount,
		Date:            r.Date.Format(timeFormat),
		Description:     r.Description,
		PaymentMethod:   r.PaymentMethod,
		ReferenceNumber: r.ReferenceNumber,
		PropertyID:      r.PropertyID,
		LeaseID:         r.LeaseID,
		TenantID:        r.TenantID,
		CreatedAt:       r.CreatedAt.Format(timeFormat),
	}
}

func expenseDetails(e *models.Expense) ExpenseDetails {
	return ExpenseDetails{
		ID:            e.ID,
		Category:      string(e.Category),
		Amount:        e.Amount,
		Date:          e.Date.Format(timeFormat),
		Description:   e.Description,
		VendorName:    e.VendorName,
		InvoiceNumber: e.InvoiceNumber,
		PaymentMethod: e.PaymentMethod,
		Paid:          e.Paid,
		PaidDate:      formatTimePtr(e.PaidDate),
		PropertyID:    e.PropertyID,
		CreatedAt:     e.CreatedAt.Format(timeFormat),
	}
}

// requireProperty rejects with 400 when property_id does not reference
// an existing property.
func requireProperty(propertyID uint) error {
	var count int64
	if err := db.Conn.Model(&models.Property{}).Where("id = ?", propertyID).Count(&count).Error; err != nil || count == 0 {
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "property_id does not reference an existing property",
		}
	}
	return nil
}

// applyRevenueRequest validates the payload and copies it onto the
// record. The property reference is checked separately against the
// database.
func applyRevenueRequest(revenue *models.Revenue, req *RevenueRequest) error {
	if req.Amount <= 0 {
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "amount must be greater than zero",
		}
	}
	if req.Date == "" || req.PropertyID == 0 {
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "date and property_id fields are required",
		}
	}

	date, err := parseTimeField(&req.Date, "date")
	if err != nil {
		return err
	}

	revenue.Source = models.RevenueRent
	if req.Source != "" {
		revenue.Source = models.RevenueSource(req.Source)
	}
	revenue.Amount = req.Amount
	revenue.Date = *date
	revenue.Description = req.Description
	revenue.PaymentMethod = req.PaymentMethod
	revenue.ReferenceNumber = req.ReferenceNumber
	revenue.PropertyID = req.PropertyID
	revenue.LeaseID = req.LeaseID
	revenue.TenantID = req.TenantID
	return nil
}

func applyExpenseRequest(expense *models.Expense, req *ExpenseRequest) error {
	if req.Category == "" {
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "category field is required",
		}
	}
	if req.Amount <= 0 {
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "amount must be greater than zero",
		}
	}
	if req.Date == "" || req.PropertyID == 0 {
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "date and property_id fields are required",
		}
	}

	date, err := parseTimeField(&req.Date, "date")
	if err != nil {
		return err
	}
	paidDate, err := parseTimeField(req.PaidDate, "paid_date")
	if err != nil {
		return err
	}

	expense.Category = models.ExpenseCategory(req.Category)
	expense.Amount = req.Amount
	expense.Date = *date
	expense.Description = req.Description
	expense.VendorName = req.VendorName
	expense.InvoiceNumber = req.InvoiceNumber
	expense.PaymentMethod = req.PaymentMethod
	expense.Paid = req.Paid
	expense.PaidDate = paidDate
	expense.PropertyID = req.PropertyID
	return nil
}

func findRevenue(c echo.Context) (*models.Revenue, error) {
	revenueID, err := strconv.ParseUint(c.Param("revenue_id"), 10, 64)
	if err != nil {
		return nil, &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "revenue_id must be a numeric identifier",
		}
	}

	revenue := models.Revenue{}
	err = db.Conn.Where("id = ?", revenueID).First(&revenue).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &echo.HTTPError{
			Code:    http.StatusNotFound,
			Message: "Revenue entry not found",
		}
	}
	if err != nil {
		c.Logger().Errorf("Failed to fetch revenue: %v", err)
		return nil, echo.ErrInternalServerError
	}
	return &revenue, nil
}

func findExpense(c echo.Context) (*models.Expense, error) {
	expenseID, err := strconv.ParseUint(c.Param("expense_id"), 10, 64)
	if err != nil {
		return nil, &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "expense_id must be a numeric identifier",
		}
	}

	expense := models.Expense{}
	err = db.Conn.Where("id = ?", expenseID).First(&expense).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &echo.HTTPError{
			Code:    http.StatusNotFound,
			Message: "Expense entry not found",
		}
	}
	if err != nil {
		c.Logger().Errorf("Failed to fetch expense: %v", err)
		return nil, echo.ErrInternalServerError
	}
	return &expense, nil
}

// CreateRevenueHandler godoc
// @Summary      Record revenue
// @Description  Records an income entry against a property and publishes
// @Description  a payment_received event.
// @Tags         financials
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        revenueRequest  body  RevenueRequest  true  "Revenue payload"
// @Success      201 {object} RevenueDetails "Revenue recorded successfully"
// @Failure      400 {object} echo.HTTPError "Bad request"
// @Failure      401 {object} echo.HTTPError "Unauthorized"
// @Failure      500 {object} echo.HTTPError "Internal server error"
// @Router       /v1/financials/revenues [post]
func CreateRevenueHandler(c echo.Context) error {
	logger := c.Logger()

	userID, err := middlewares.GetAuthenticatedUserID(c)
	if err != nil {
		return echo.ErrUnauthorized
	}

	var req RevenueRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid revenue payload:", err)
		return echo.ErrBadRequest
	}

	revenue := models.Revenue{CreatedByID: &userID}
	if err := applyRevenueRequest(&revenue, &req); err != nil {
		return err
	}
	if err := requireProperty(revenue.PropertyID); err != nil {
		return err
	}

	if err := db.Conn.Create(&revenue).Error; err != nil {
		logger.Errorf("Failed to record revenue: %v", err)
		return echo.ErrInternalServerError
	}

	event := notifications.Event{
		Type:              models.NotifyPaymentReceived,
		Title:             "Payment received",
		Message:           fmt.Sprintf("Payment of %.2f recorded (%s)", revenue.Amount, revenue.Source),
		RelatedObjectType: "revenue",
		RelatedObjectID:   &revenue.ID,
	}
	if err := notifications.Publish(db.Conn, event); err != nil {
		logger.Errorf("Failed to publish payment_received event: %v", err)
	}

	logger.Infof("Revenue %d recorded", revenue.ID)
	return c.JSON(http.StatusCreated, revenueDetails(&revenue))
}

// GetAllRevenuesHandler godoc
// @Summary      List revenues
// @Description  Returns revenue entries, optionally filtered by property
// @Description  or source, newest first.
// @Tags         financials
// @Produce      json
// @Security     BearerAuth
// @Param        property_id  query  int     false  "Filter by property"
// @Param        source       query  string  false  "Filter by source"
// @Param        page         query  int     false  "Page number (default 1)"
// @Param        page_size    query  int     false  "Page size (default 10, max 100)"
// @Success      200 {object} RevenueListResponse "Revenues retrieved successfully"
// @Failure      401 {object} echo.HTTPError "Unauthorized"
// @Failure      500 {object} echo.HTTPError "Internal server error"
// @Router       /v1/financials/revenues [get]
func GetAllRevenuesHandler(c echo.Context) error {
	logger := c.Logger()

	page, pageSize := parsePagination(c)

	query := db.Conn.Model(&models.Revenue{})
	if propertyID := c.QueryParam("property_id"); propertyID != "" {
		query = query.Where("property_id = ?", propertyID)
	}
	if source := c.QueryParam("source"); source != "" {
		query = query.Where("source = ?", source)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		logger.Errorf("Failed to count revenues: %v", err)
		return echo.ErrInternalServerError
	}

	var revenues []models.Revenue
	if err := query.Order("date DESC").
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&revenues).Error; err != nil {
		logger.Errorf("Failed to fetch revenues: %v", err)
		return echo.ErrInternalServerError
	}

	details := make([]RevenueDetails, 0, len(revenues))
	for i := range revenues {
		details = append(details, revenueDetails(&revenues[i]))
	}

	return c.JSON(http.StatusOK, RevenueListResponse{
		Data: details,
		Pagination: PaginationDetails{
			Page:       page,
			PageSize:   pageSize,
			Total:      total,
			TotalPages: totalPages(total, pageSize),
		},
		Message: "Revenues retrieved successfully",
	})
}

// GetRevenueHandler godoc
// @Summary      Get a revenue entry
// @Tags         financials
// @Produce      json
// @Security     BearerAuth
// @Param        revenue_id  path  int  true  "Revenue ID"
// @Success      200 {object} RevenueDetails "Revenue retrieved successfully"
// @Failure      401 {object} echo.HTTPError "Unauthorized"
// @Failure      404 {object} echo.HTTPError "Not found"
// @Failure      500 {object} echo.HTTPError "Internal server error"
// @Router       /v1/financials/revenues/{revenue_id} [get]
func GetRevenueHandler(c echo.Context) error {
	revenue, err := findRevenue(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, revenueDetails(revenue))
}

// UpdateRevenueHandler godoc
// @Summary      Update a revenue entry
// @Tags         financials
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        revenue_id      path  int             true  "Revenue ID"
// @Param        revenueRequest  body  RevenueRequest  true  "Revenue payload"
// @Success      200 {object} RevenueDetails "Revenue updated successfully"
// @Failure      400 {object} echo.HTTPError "Bad request"
// @Failure      401 {object} echo.HTTPError "Unauthorized"
// @Failure      404 {object} echo.HTTPError "Not found"
// @Failure      500 {object} echo.HTTPError "Internal server error"
// @Router       /v1/financials/revenues/{revenue_id} [put]
func UpdateRevenueHandler(c echo.Context) error {
	logger := c.Logger()

	revenue, err := findRevenue(c)
	if err != nil {
		return err
	}

	var req RevenueRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid revenue payload:", err)
		return echo.ErrBadRequest
	}

	if err := applyRevenueRequest(revenue, &req); err != nil {
		return err
	}
	if err := requireProperty(revenue.PropertyID); err != nil {
		return err
	}

	if err := db.Conn.Save(revenue).Error; err != nil {
		logger.Errorf("Failed to update revenue: %v", err)
		return echo.ErrInternalServerError
	}

	return c.JSON(http.StatusOK, revenueDetails(revenue))
}

// DeleteRevenueHandler godoc
// @Summary      Delete a revenue entry
// @Tags         financials
// @Produce      json
// @Security     BearerAuth
// @Param        revenue_id  path  int  true  "Revenue ID"
// @Success      204 "Revenue deleted"
// @Failure      401 {object} echo.HTTPError "Unauthorized"
// @Failure      404 {object} echo.HTTPError "Not found"
// @Failure      500 {object} echo.HTTPError "Internal server error"
// @Router       /v1/financials/revenues/{revenue_id} [delete]
func DeleteRevenueHandler(c echo.Context) error {
	logger := c.Logger()

	revenue, err := findRevenue(c)
	if err != nil {
		return err
	}

	if err := db.Conn.Delete(revenue).Error; err != nil {
		logger.Errorf("Failed to delete revenue: %v", err)
		return echo.ErrInternalServerError
	}

	return c.NoContent(http.StatusNoContent)
}

// CreateExpenseHandler godoc
// @Summary      Record an expense
// @Tags         financials
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        expenseRequest  body  ExpenseRequest  true  "Expense payload"
// @Success      201 {object} ExpenseDetails "Expense recorded successfully"
// @Failure      400 {object} echo.HTTPError "Bad request"
// @Failure      401 {object} echo.HTTPError "Unauthorized"
// @Failure      500 {object} echo.HTTPError "Internal server error"
// @Router       /v1/financials/expenses [post]
func CreateExpenseHandler(c echo.Context) error {
	logger := c.Logger()

	userID, err := middlewares.GetAuthenticatedUserID(c)
	if err != nil {
		return echo.ErrUnauthorized
	}

	var req ExpenseRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid expense payload:", err)
		return echo.ErrBadRequest
	}

	expense := models.Expense{CreatedByID: &userID}
	if err := applyExpenseRequest(&expense, &req); err != nil {
		return err
	}
	if err := requireProperty(expense.PropertyID); err != nil {
		return err
	}

	if err := db.Conn.Create(&expense).Error; err != nil {
		logger.Errorf("Failed to record expense: %v", err)
		return echo.ErrInternalServerError
	}

	logger.Infof("Expense %d recorded", expense.ID)
	return c.JSON(http.StatusCreated, expenseDetails(&expense))
}

// GetAllExpensesHandler godoc
// @Summary      List expenses
// @Description  Returns expense entries, optionally filtered by property,
// @Description  category or paid state, newest first.
// @Tags         financials
// @Produce      json
// @Security     BearerAuth
// @Param        property_id  query  int     false  "Filter by property"
// @Param        category     query  string  false  "Filter by category"
// @Param        paid         query  bool    false  "Filter by paid state"
// @Param        page         query  int     false  "Page number (default 1)"
// @Param        page_size    query  int     false  "Page size (default 10, max 100)"
// @Success      200 {object} ExpenseListResponse "Expenses retrieved successfully"
// @Failure      401 {object} echo.HTTPError "Unauthorized"
// @Failure      500 {object} echo.HTTPError "Internal server error"
// @Router       /v1/financials/expenses [get]
func GetAllExpensesHandler(c echo.Context) error {
	logger := c.Logger()

	page, pageSize := parsePagination(c)

	query := db.Conn.Model(&models.Expense{})
	if propertyID := c.QueryParam("property_id"); propertyID != "" {
		query = query.Where("property_id = ?", propertyID)
	}
	if category := c.QueryParam("category"); category != "" {
		query = query.Where("category = ?", category)
	}
	if paid := c.QueryParam("paid"); paid != "" {
		query = query.Where("paid = ?", paid == "true")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		logger.Errorf("Failed to count expenses: %v", err)
		return echo.ErrInternalServerError
	}

	var expenses []models.Expense
	if err := query.Order("date DESC").
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&expenses).Error; err != nil {
		logger.Errorf("Failed to fetch expenses: %v", err)
		return echo.ErrInternalServerError
	}

	details := make([]ExpenseDetails, 0, len(expenses))
	for i := range expenses {
		details = append(details, expenseDetails(&expenses[i]))
	}

	return c.JSON(http.StatusOK, ExpenseListResponse{
		Data: details,
		Pagination: PaginationDetails{
			Page:       page,
			PageSize:   pageSize,
			Total:      total,
			TotalPages: totalPages(total, pageSize),
		},
		Message: "Expenses retrieved successfully",
	})
}

// GetExpenseHandler godoc
// @Summary      Get an expense entry
// @Tags         financials
// @Produce      json
// @Security     BearerAuth
// @Param        expense_id  path  int  true  "Expense ID"
// @Success      200 {object} ExpenseDetails "Expense retrieved successfully"
// @Failure      401 {object} echo.HTTPError "Unauthorized"
// @Failure      404 {object} echo.HTTPError "Not found"
// @Failure      500 {object} echo.HTTPError "Internal server error"
// @Router       /v1/financials/expenses/{expense_id} [get]
func GetExpenseHandler(c echo.Context) error {
	expense, err := findExpense(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, expenseDetails(expense))
}

// UpdateExpenseHandler godoc
// @Summary      Update an expense entry
// @Tags         financials
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        expense_id      path  int             true  "Expense ID"
// @Param        expenseRequest  body  ExpenseRequest  true  "Expense payload"
// @Success      200 {object} ExpenseDetails "Expense updated successfully"
// @Failure      400 {object} echo.HTTPError "Bad request"
// @Failure      401 {object} echo.HTTPError "Unauthorized"
// @Failure      404 {object} echo.HTTPError "Not found"
// @Failure      500 {object} echo.HTTPError "Internal server error"
// @Router       /v1/financials/expenses/{expense_id} [put]
func UpdateExpenseHandler(c echo.Context) error {
	logger := c.Logger()

	expense, err := findExpense(c)
	if err != nil {
		return err
	}

	var req ExpenseRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid expense payload:", err)
		return echo.ErrBadRequest
	}

	if err := applyExpenseRequest(expense, &req); err != nil {
		return err
	}
	if err := requireProperty(expense.PropertyID); err != nil {
		return err
	}

	if err := db.Conn.Save(expense).Error; err != nil {
		logger.Errorf("Failed to update expense: %v", err)
		return echo.ErrInternalServerError
	}

	return c.JSON(http.StatusOK, expenseDetails(expense))
}

// DeleteExpenseHandler godoc
// @Summary      Delete an expense entry
// @Tags         financials
// @Produce      json
// @Security     BearerAuth
// @Param        expense_id  path  int  true  "Expense ID"
// @Success      204 "Expense deleted"
// @Failure      401 {object} echo.HTTPError "Unauthorized"
// @Failure      404 {object} echo.HTTPError "Not found"
// @Failure      500 {object} echo.HTTPError "Internal server error"
// @Router       /v1/financials/expenses/{expense_id} [delete]
func DeleteExpenseHandler(c echo.Context) error {
	logger := c.Logger()

	expense, err := findExpense(c)
	if err != nil {
		return err
	}

	if err := db.Conn.Delete(expense).Error; err != nil {
		logger.Errorf("Failed to delete expense: %v", err)
		return echo.ErrInternalServerError
	}

	return c.NoContent(http.StatusNoContent)
}
