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

func paymentDetails(p *models.Payment) PaymentDetails {
	return PaymentDetails{
		ID:              p.ID,
		Amount:          p.Amount,
		AmountPaid:      p.AmountPaid,
		Balance:         p.Balance(),
		DueDate:         p.DueDate.Format(timeFormat),
		PaidDate:        formatTimePtr(p.PaidDate),
		Status:          string(p.Status),
		PaymentMethod:   p.PaymentMethod,
		ReferenceNumber: p.ReferenceNumber,
		Notes:           p.Notes,
		LeaseID:         p.LeaseID,
		TenantID:        p.TenantID,
		PropertyID:      p.PropertyID,
		CreatedAt:       p.CreatedAt.Format(timeFormat),
	}
}

func findPayment(c echo.Context) (*models.Payment, error) {
	paymentID, err := strconv.ParseUint(c.Param("payment_id"), 10, 64)
	if err != nil {
		return nil, &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "payment_id must be a numeric identifier",
		}
	}

	payment := models.Payment{}
	err = db.Conn.Where("id = ?", paymentID).First(&payment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &echo.HTTPError{
			Code:    http.StatusNotFound,
			Message: "Payment not found",
		}
	}
	if err != nil {
		c.Logger().Errorf("Failed to fetch payment: %v", err)
		return nil, echo.ErrInternalServerError
	}
	return &payment, nil
}

// derivePaymentStatus computes the status from the amounts and due date
// unless the payment was explicitly cancelled.
func derivePaymentStatus(payment *models.Payment, now time.Time) models.PaymentStatus {
	if payment.Status == models.PaymentCancelled {
		return models.PaymentCancelled
	}
	switch {
	case payment.Balance() == 0:
		return models.PaymentPaid
	case payment.IsOverdue(now):
		return models.PaymentOverdue
	case payment.AmountPaid > 0:
		return models.PaymentPartial
	default:
		return models.PaymentPending
	}
}

func publishPaymentOverdueEvent(c echo.Context, payment *models.Payment) {
	if payment.Status != models.PaymentOverdue {
		return
	}

	event := notifications.Event{
		Type:              models.NotifyPaymentOverdue,
		Priority:          models.PriorityHigh,
		Title:             "Payment overdue",
		Message:           fmt.Sprintf("Payment of %.2f was due on %s", payment.Balance(), payment.DueDate.Format("2006-01-02")),
		RelatedObjectType: "payment",
		RelatedObjectID:   &payment.ID,
		ActionURL:         fmt.Sprintf("/v1/financials/payments/%d", payment.ID),
	}

	if err := notifications.Publish(db.Conn, event); err != nil {
		c.Logger().Errorf("Failed to publish payment_overdue event: %v", err)
	}
}

// applyPaymentRequest validates the payload and copies it onto the
// record. Lease, tenant and property references are resolved separately
// against the database.
func applyPaymentRequest(payment *models.Payment, req *PaymentRequest) error {
	if req.Amount <= 0 {
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "amount must be greater than zero",
		}
	}
	if req.AmountPaid < 0 || req.AmountPaid > req.Amount {
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "amount_paid must be between zero and amount",
		}
	}
	if req.DueDate == "" || req.LeaseID == 0 {
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "due_date and lease_id fields are required",
		}
	}

	dueDate, err := parseTimeField(&req.DueDate, "due_date")
	if err != nil {
		return err
	}

	payment.Amount = req.Amount
	payment.AmountPaid = req.AmountPaid
	payment.DueDate = *dueDate
	payment.LeaseID = req.LeaseID
	payment.PaymentMethod = req.PaymentMethod
	payment.ReferenceNumber = req.ReferenceNumber
	payment.Notes = req.Notes
	if req.Status == string(models.PaymentCancelled) {
		payment.Status = models.PaymentCancelled
	} else {
		payment.Status = models.PaymentPending
	}
	return nil
}

// resolvePaymentLease fills the property and tenant references from the
// payment's lease, rejecting with 400 when the lease does not exist.
func resolvePaymentLease(c echo.Context, payment *models.Payment) error {
	lease := models.Lease{}
	err := db.Conn.Where("id = ?", payment.LeaseID).First(&lease).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "lease_id does not reference an existing lease",
		}
	}
	if err != nil {
		c.Logger().Errorf("Failed to fetch lease for payment: %v", err)
		return echo.ErrInternalServerError
	}

	payment.PropertyID = lease.PropertyID
	tenantID := lease.TenantID
	payment.TenantID = &tenantID
	return nil
}

// CreatePaymentHandler godoc
// @Summary      Schedule a payment
// @Description  Records a rent obligation under a lease. A payment whose
// @Description  due date is already past is created as overdue and
// @Description  publishes a payment_overdue event.
// @Tags         financials
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        paymentRequest  body  PaymentRequest  true  "Payment payload"
// @Success      201 {object} PaymentDetails "Payment scheduled successfully"
// @Failure      400 {object} echo.HTTPError "Bad request"
// @Failure      401 {object} echo.HTTPError "Unauthorized"
// @Failure      500 {object} echo.HTTPError "Internal server error"
// @Router       /v1/financials/payments [post]
func CreatePaymentHandler(c echo.Context) error {
	logger := c.Logger()

	userID, err := middlewares.GetAuthenticatedUserID(c)
	if err != nil {
		return echo.ErrUnauthorized
	}

	var req PaymentRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid payment payload:", err)
		return echo.ErrBadRequest
	}

	payment := models.Payment{CreatedByID: &userID}
	if err := applyPaymentRequest(&payment, &req); err != nil {
		return err
	}
	if err := resolvePaymentLease(c, &payment); err != nil {
		return err
	}
	payment.Status = derivePaymentStatus(&payment, time.Now())

	if err := db.Conn.Create(&payment).Error; err != nil {
		logger.Errorf("Failed to create payment: %v", err)
		return echo.ErrInternalServerError
	}

	publishPaymentOverdueEvent(c, &payment)

	logger.Infof("Payment %d scheduled", payment.ID)
	return c.JSON(http.StatusCreated, paymentDetails(&payment))
}

// GetAllPaymentsHandler godoc
// @Summary      List payments
// @Description  Returns payments ordered by due date, optionally filtered
// @Description  by status, lease, tenant or property.
// @Tags         financials
// @Produce      json
// @Security     BearerAuth
// @Param        status       query  string  false  "Filter by status"
// @Param        lease_id     query  int     false  "Filter by lease"
// @Param        tenant_id    query  int     false  "Filter by tenant"
// @Param        property_id  query  int     false  "Filter by property"
// @Param        page         query  int     false  "Page number (default 1)"
// @Param        page_size    query  int     false  "Page size (default 10, max 100)"
// @Success      200 {object} PaymentListResponse "Payments retrieved successfully"
// @Failure      401 {object} echo.HTTPError "Unauthorized"
// @Failure      500 {object} echo.HTTPError "Internal server error"
// @Router       /v1/financials/payments [get]
func GetAllPaymentsHandler(c echo.Context) error {
	logger := c.Logger()

	page, pageSize := parsePagination(c)

	query := db.Conn.Model(&models.Payment{})
	if status := c.QueryParam("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if leaseID := c.QueryParam("lease_id"); leaseID != "" {
		query = query.Where("lease_id = ?", leaseID)
	}
	if tenantID := c.QueryParam("tenant_id"); tenantID != "" {
		query = query.Where("tenant_id = ?", tenantID)
	}
	if propertyID := c.QueryParam("property_id"); propertyID != "" {
		query = query.Where("property_id = ?", propertyID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		logger.Errorf("Failed to count payments: %v", err)
		return echo.ErrInternalServerError
	}

	var payments []models.Payment
	if err := query.Order("due_date ASC").
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&payments).Error; err != nil {
		logger.Errorf("Failed to fetch payments: %v", err)
		return echo.ErrInternalServerError
	}

	details := make([]PaymentDetails, 0, len(payments))
	for i := range payments {
		details = append(details, paymentDetails(&payments[i]))
	}

	return c.JSON(http.StatusOK, PaymentListResponse{
		Data: details,
		Pagination: PaginationDetails{
			Page:       page,
			PageSize:   pageSize,
			Total:      total,
			TotalPages: totalPages(total, pageSize),
		},
		Message: "Payments retrieved successfully",
	})
}

// GetPaymentHandler godoc
// @Summary      Get a payment
// @Tags         financials
// @Produce      json
// @Security     BearerAuth
// @Param        payment_id  path  int  true  "Payment ID"
// @Success      200 {object} PaymentDetails "Payment retrieved successfully"
// @Failure      401 {object} echo.HTTPError "Unauthorized"
// @Failure      404 {object} echo.HTTPError "Not found"
// @Failure      500 {object} echo.HTTPError "Internal server error"
// @Router       /v1/financials/payments/{payment_id} [get]
func GetPaymentHandler(c echo.Context) error {
	payment, err := findPayment(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, paymentDetails(payment))
}

// UpdatePaymentHandler godoc
// @Summary      Update a payment
// @Description  Rewrites the payment from the payload. The status is
// @Description  re-derived; a payment that becomes overdue publishes a
// @Description  payment_overdue event.
// @Tags         financials
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payment_id      path  int             true  "Payment ID"
// @Param        paymentRequest  body  PaymentRequest  true  "Payment payload"
// @Success      200 {object} PaymentDetails "Payment updated successfully"
// @Failure      400 {object} echo.HTTPError "Bad request"
// @Failure      401 {object} echo.HTTPError "Unauthorized"
// @Failure      404 {object} echo.HTTPError "Not found"
// @Failure      500 {object} echo.HTTPError "Internal server error"
// @Router       /v1/financials/payments/{payment_id} [put]
func UpdatePaymentHandler(c echo.Context) error {
	logger := c.Logger()

	payment, err := findPayment(c)
	if err != nil {
		return err
	}
	previousStatus := payment.Status

	var req PaymentRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid payment payload:", err)
		return echo.ErrBadRequest
	}

	if err := applyPaymentRequest(payment, &req); err != nil {
		return err
	}
	if err := resolvePaymentLease(c, payment); err != nil {
		return err
	}
	payment.Status = derivePaymentStatus(payment, time.Now())

	if err := db.Conn.Save(payment).Error; err != nil {
		logger.Errorf("Failed to update payment: %v", err)
		return echo.ErrInternalServerError
	}

	if previousStatus != models.PaymentOverdue {
		publishPaymentOverdueEvent(c, payment)
	}

	return c.JSON(http.StatusOK, paymentDetails(payment))
}

// MarkPaymentPaidHandler godoc
// @Summary      Mark a payment as paid
// @Description  Settles the outstanding balance, records the cash received
// @Description  as revenue and publishes a payment_received event.
// @Tags         financials
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payment_id              path  int                     true   "Payment ID"
// @Param        markPaymentPaidRequest  body  MarkPaymentPaidRequest  false  "Settlement details"
// @Success      200 {object} PaymentDetails "Payment marked as paid"
// @Failure      400 {object} echo.HTTPError "Bad request"
// @Failure      401 {object} echo.HTTPError "Unauthorized"
// @Failure      404 {object} echo.HTTPError "Not found"
// @Failure      500 {object} echo.HTTPError "Internal server error"
// @Router       /v1/financials/payments/{payment_id}/mark-paid [post]
func MarkPaymentPaidHandler(c echo.Context) error {
	logger := c.Logger()

	userID, err := middlewares.GetAuthenticatedUserID(c)
	if err != nil {
		return echo.ErrUnauthorized
	}

	payment, err := findPayment(c)
	if err != nil {
		return err
	}

	if payment.Status == models.PaymentCancelled {
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "A cancelled payment cannot be marked as paid",
		}
	}
	if payment.Balance() == 0 {
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "Payment is already settled",
		}
	}

	var req MarkPaymentPaidRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid mark-paid payload:", err)
		return echo.ErrBadRequest
	}

	paidDate, err := parseTimeField(req.PaidDate, "paid_date")
	if err != nil {
		return err
	}
	if paidDate == nil {
		now := time.Now()
		paidDate = &now
	}

	received := payment.Balance()
	payment.AmountPaid = payment.Amount
	payment.PaidDate = paidDate
	payment.Status = models.PaymentPaid
	if req.PaymentMethod != "" {
		payment.PaymentMethod = req.PaymentMethod
	}
	if req.ReferenceNumber != "" {
		payment.ReferenceNumber = req.ReferenceNumber
	}

	if err := db.Conn.Save(payment).Error; err != nil {
		logger.Errorf("Failed to mark payment as paid: %v", err)
		return echo.ErrInternalServerError
	}

	leaseID := payment.LeaseID
	revenue := models.Revenue{
		Source:          models.RevenueRent,
		Amount:          received,
		Date:            *paidDate,
		PaymentMethod:   payment.PaymentMethod,
		ReferenceNumber: payment.ReferenceNumber,
		PropertyID:      payment.PropertyID,
		LeaseID:         &leaseID,
		TenantID:        payment.TenantID,
		CreatedByID:     &userID,
	}
	if err := db.Conn.Create(&revenue).Error; err != nil {
		logger.Errorf("Failed to record revenue for payment %d: %v", payment.ID, err)
	}

	event := notifications.Event{
		Type:              models.NotifyPaymentReceived,
		Title:             "Payment received",
		Message:           fmt.Sprintf("Payment of %.2f received (due %s)", received, payment.DueDate.Format("2006-01-02")),
		RelatedObjectType: "payment",
		RelatedObjectID:   &payment.ID,
		ActionURL:         fmt.Sprintf("/v1/financials/payments/%d", payment.ID),
	}
	if err := notifications.Publish(db.Conn, event); err != nil {
		logger.Errorf("Failed to publish payment_received event: %v", err)
	}

	logger.Infof("Payment %d settled", payment.ID)
	return c.JSON(http.StatusOK, paymentDetails(payment))
}

// DeletePaymentHandler godoc
// @Summary      Delete a payment
// @Tags         financials
// @Produce      json
// @Security     BearerAuth
// @Param        payment_id  path  int  true  "Payment ID"
// @Success      204 "Payment deleted"
// @Failure      401 {object} echo.HTTPError "Unauthorized"
// @Failure      404 {object} echo.HTTPError "Not found"
// @Failure      500 {object} echo.HTTPError "Internal server error"
// @Router       /v1/financials/payments/{payment_id} [delete]
func DeletePaymentHandler(c echo.Context) error {
	logger := c.Logger()

	payment, err := findPayment(c)
	if err != nil {
		return err
	}

	if err := db.Conn.Delete(payment).Error; err != nil {
		logger.Errorf("Failed to delete payment: %v", err)
		return echo.ErrInternalServerError
	}

	return c.NoContent(http.StatusNoContent)
}
