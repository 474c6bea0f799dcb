// SPDX-License-Identifier: GPL-3.0-only

package handlers

import (
	"math"
	"net/http"
	"propman-server/db"
	"propman-server/middlewares"
	"propman-server/models"
	"time"

	"github.com/labstack/echo/v4"
)

// monthBounds returns the first instant of the month containing now and
// the first instant of the following month.
func monthBounds(now time.Time) (time.Time, time.Time) {
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	return start, start.AddDate(0, 1, 0)
}

// GetDashboardSummaryHandler godoc
// @Summary      Get the portfolio dashboard summary
// @Description  Aggregates occupancy, tenant, lease and financial figures
// @Description  across the whole portfolio, including the income and spend
// @Description  recorded this calendar month and the caller's unread
// @Description  notification count.
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} DashboardSummaryResponse "Summary retrieved successfully"
// @Failure      401 {object} echo.HTTPError "Unauthorized"
// @Failure      500 {object} echo.HTTPError "Internal server error"
// @Router       /v1/dashboard/summary [get]
func GetDashboardSummaryHandler(c echo.Context) error {
	logger := c.Logger()

	userID, err := middlewares.GetAuthenticatedUserID(c)
	if err != nil {
		return echo.ErrUnauthorized
	}

	summary := DashboardSummaryResponse{Message: "Summary retrieved successfully"}

	type portfolioTotals struct {
		Count           int64
		TotalUnits      int64
		OccupiedUnits   int64
		MonthlyRevenue  float64
		MonthlyExpenses float64
		PortfolioValue  float64
	}
	var totals portfolioTotals
	if err := db.Conn.Model(&models.Property{}).
		Select("COUNT(*) as count, COALESCE(SUM(total_units), 0) as total_units, COALESCE(SUM(occupied_units), 0) as occupied_units, COALESCE(SUM(monthly_revenue), 0) as monthly_revenue, COALESCE(SUM(monthly_expenses), 0) as monthly_expenses, COALESCE(SUM(current_value), 0) as portfolio_value").
		Where("status = ?", models.PropertyActive).
		Scan(&totals).Error; err != nil {
		logger.Errorf("Failed to aggregate portfolio totals: %v", err)
		return echo.ErrInternalServerError
	}

	summary.TotalProperties = totals.Count
	summary.TotalUnits = totals.TotalUnits
	summary.OccupiedUnits = totals.OccupiedUnits
	summary.MonthlyRevenue = totals.MonthlyRevenue
	summary.MonthlyExpenses = totals.MonthlyExpenses
	summary.NetMonthlyIncome = totals.MonthlyRevenue - totals.MonthlyExpenses
	summary.PortfolioValue = totals.PortfolioValue
	if totals.TotalUnits > 0 {
		summary.OccupancyRate = math.Round(float64(totals.OccupiedUnits)/float64(totals.TotalUnits)*1000) / 10
	}

	now := time.Now()
	monthStart, nextMonth := monthBounds(now)

	if err := db.Conn.Model(&models.Revenue{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("date >= ? AND date < ?", monthStart, nextMonth).
		Scan(&summary.CurrentMonthRevenue).Error; err != nil {
		logger.Errorf("Failed to sum current-month revenue: %v", err)
		return echo.ErrInternalServerError
	}

	if err := db.Conn.Model(&models.Expense{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("date >= ? AND date < ?", monthStart, nextMonth).
		Scan(&summary.CurrentMonthExpenses).Error; err != nil {
		logger.Errorf("Failed to sum current-month expenses: %v", err)
		return echo.ErrInternalServerError
	}

	if err := db.Conn.Model(&models.Tenant{}).
		Where("status = ?", models.TenantActive).
		Count(&summary.ActiveTenants).Error; err != nil {
		logger.Errorf("Failed to count active tenants: %v", err)
		return echo.ErrInternalServerError
	}

	if err := db.Conn.Model(&models.Lease{}).
		Where("status IN ?", []models.LeaseStatus{models.LeaseActive, models.LeaseExpiringSoon}).
		Count(&summary.ActiveLeases).Error; err != nil {
		logger.Errorf("Failed to count active leases: %v", err)
		return echo.ErrInternalServerError
	}

	if err := db.Conn.Model(&models.Lease{}).
		Where("status NOT IN ? AND end_date BETWEEN ? AND ?",
			[]models.LeaseStatus{models.LeaseTerminated, models.LeaseExpired},
			now, now.Add(expiringSoonWindow)).
		Count(&summary.ExpiringLeases).Error; err != nil {
		logger.Errorf("Failed to count expiring leases: %v", err)
		return echo.ErrInternalServerError
	}

	if err := db.Conn.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&summary.UnreadNotifications).Error; err != nil {
		logger.Errorf("Failed to count unread notifications: %v", err)
		return echo.ErrInternalServerError
	}

	return c.JSON(http.StatusOK, summary)
}
