// SPDX-License-Identifier: GPL-3.0-only

package handlers

import "propman-server/models"

// swagger:model SignupRequest
type SignupRequest struct {
	// User's email address
	// required: true
	Email string `json:"email" example:"user@example.com"`
	// User's password
	// required: true
	Password string `json:"password" example:"MySecretPassword@123"`
	// Optional full name
	FullName *string `json:"full_name" example:"John Doe"`
	// Optional phone number
	PhoneNumber *string `json:"phone_number" example:"+15551234567"`
}

// swagger:model LoginRequest
type LoginRequest struct {
	// User's email address
	Email string `json:"email" example:"user@example.com"`
	// User's password
	Password string `json:"password" example:"MySecretPassword@123"`
}

// swagger:model AuthResponse
type AuthResponse struct {
	// Authentication session token.
	// Should be used in the Authorization header as a Bearer token.
	SessionToken string `json:"session_token" example:"sample_session_token"`
	// Message indicating successful operation
	Message string `json:"message" example:"Operation successful"`
}

// swagger:model GetUserResponse
type GetUserResponse struct {
	// Email address associated with the user's account
	Email string `json:"email" example:"user@example.com"`
	// Full name of the user
	FullName *string `json:"full_name" example:"John Doe"`
	// Phone number of the user
	PhoneNumber *string `json:"phone_number" example:"+15551234567"`
	// Whether the user has administrative privileges
	IsAdmin bool `json:"is_admin" example:"false"`
	// Message indicating successful retrieval
	Message string `json:"message" example:"User retrieved successfully"`
}

// swagger:model ChangePasswordRequest
type ChangePasswordRequest struct {
	// Current password
	CurrentPassword string `json:"current_password"`
	// New password
	NewPassword string `json:"new_password"`
}

// swagger:model PaginationDetails
type PaginationDetails struct {
	// Current page number
	Page int `json:"page"`
	// Page size
	PageSize int `json:"page_size"`
	// Total number of items
	Total int64 `json:"total"`
	// Total number of pages
	TotalPages int `json:"total_pages"`
}

// swagger:model CreateAPIKeyRequest
type CreateAPIKeyRequest struct {
	// Human-readable label for the key
	// required: true
	Name string `json:"name" example:"CI pipeline"`
	// Comma-separated list of allowed caller IPs; empty allows any
	AllowedIPs string `json:"allowed_ips" example:"192.0.2.1,198.51.100.7"`
	// Requests allowed per hour (1-10000, default 1000)
	RateLimit *int `json:"rate_limit" example:"1000"`
	// Capability flags; read defaults to true
	CanRead   *bool `json:"can_read" example:"true"`
	CanWrite  *bool `json:"can_write" example:"false"`
	CanDelete *bool `json:"can_delete" example:"false"`
	// Optional RFC 3339 expiry timestamp
	ExpiresAt *string `json:"expires_at" example:"2026-01-01T00:00:00Z"`
}

// swagger:model UpdateAPIKeyRequest
type UpdateAPIKeyRequest struct {
	// New label for the key
	Name *string `json:"name" example:"CI pipeline"`
	// New allowed IP list
	AllowedIPs *string `json:"allowed_ips" example:"192.0.2.1"`
	// New hourly rate limit (1-10000)
	RateLimit *int `json:"rate_limit" example:"500"`
	// Capability flags
	CanRead   *bool `json:"can_read"`
	CanWrite  *bool `json:"can_write"`
	CanDelete *bool `json:"can_delete"`
	// New RFC 3339 expiry; explicit null clears it
	ExpiresAt *string `json:"expires_at" example:"2026-01-01T00:00:00Z"`
}

// swagger:model APIKeyDetails
type APIKeyDetails struct {
	// Key identifier
	ID uint `json:"id" example:"1"`
	// Label of the key
	Name string `json:"name" example:"CI pipeline"`
	// Prefix plus mask characters; the full secret is never shown again
	MaskedKey string `json:"masked_key" example:"Ab3dEf7h****************************************"`
	// Whether the key is active
	IsActive bool `json:"is_active" example:"true"`
	// Allowed caller IPs
	AllowedIPs string `json:"allowed_ips" example:""`
	// Requests allowed per hour
	RateLimit int `json:"rate_limit" example:"1000"`
	// Capability flags
	CanRead   bool `json:"can_read" example:"true"`
	CanWrite  bool `json:"can_write" example:"false"`
	CanDelete bool `json:"can_delete" example:"false"`
	// Lifetime request count
	UsageCount int64 `json:"usage_count" example:"42"`
	// Timestamp of the most recent authenticated call
	LastUsedAt *string `json:"last_used_at" example:"2025-06-01T12:00:00Z"`
	// Expiry timestamp, if any
	ExpiresAt *string `json:"expires_at" example:"2026-01-01T00:00:00Z"`
	// Timestamp of when the key was created
	CreatedAt string `json:"created_at" example:"2025-01-01T12:00:00Z"`
	// Timestamp of when the key was last updated
	UpdatedAt string `json:"updated_at" example:"2025-01-01T12:00:00Z"`
}

// swagger:model CreateAPIKeyResponse
type CreateAPIKeyResponse struct {
	// The full plaintext key. Shown exactly once; store it securely.
	Key string `json:"key" example:"Ab3dEf7hJkLmNoPqRsTuVwXyZ0123456789abcdefgh"`
	// Details of the created key
	APIKey APIKeyDetails `json:"api_key"`
	// Message indicating successful creation
	Message string `json:"message" example:"API key created successfully"`
}

// swagger:model APIKeyResponse
type APIKeyResponse struct {
	// Details of the key
	APIKey APIKeyDetails `json:"api_key"`
	// Message indicating successful operation
	Message string `json:"message"`
}

// swagger:model APIKeyListResponse
type APIKeyListResponse struct {
	// List of the user's API keys
	Data []APIKeyDetails `json:"data"`
	// Pagination details
	Pagination PaginationDetails `json:"pagination"`
	// Message indicating successful retrieval
	Message string `json:"message" example:"API keys retrieved successfully"`
}

// swagger:model VerifyAPIKeyResponse
type VerifyAPIKeyResponse struct {
	// Whether the presented key is currently valid
	Valid bool `json:"valid" example:"true"`
	// Reason the key is not valid, when applicable
	Reason string `json:"reason,omitempty" example:"key_expired"`
	// Details of the matched key, when one was found
	APIKey *APIKeyDetails `json:"api_key,omitempty"`
	// Message indicating the verification outcome
	Message string `json:"message"`
}

// swagger:model UsageLogDetails
type UsageLogDetails struct {
	// Request path
	Endpoint string `json:"endpoint" example:"/v1/properties"`
	// HTTP method
	Method string `json:"method" example:"GET"`
	// Caller IP address
	IPAddress string `json:"ip_address" example:"192.0.2.1"`
	// Caller user agent, truncated to 500 characters
	UserAgent string `json:"user_agent" example:"curl/8.5.0"`
	// Response status code
	StatusCode int `json:"status_code" example:"200"`
	// Handler latency in seconds
	ResponseTime float64 `json:"response_time" example:"0.042"`
	// Timestamp of the call
	CreatedAt string `json:"created_at" example:"2025-06-01T12:00:00Z"`
}

// swagger:model UsageLogListResponse
type UsageLogListResponse struct {
	// Most recent calls, newest first
	Data []UsageLogDetails `json:"data"`
	// Message indicating successful retrieval
	Message string `json:"message" example:"Usage logs retrieved successfully"`
}

// swagger:model APIKeyStatisticsResponse
type APIKeyStatisticsResponse struct {
	// Total number of keys owned by the user
	TotalKeys int64 `json:"total_keys"`
	// Number of currently active keys
	ActiveKeys int64 `json:"active_keys"`
	// Total recorded API calls across all keys
	TotalRequests int64 `json:"total_requests"`
	// Request counts grouped by key name
	UsageByKey map[string]int64 `json:"usage_by_key"`
	// Request counts grouped by endpoint
	UsageByEndpoint map[string]int64 `json:"usage_by_endpoint"`
	// Request counts grouped by status code
	UsageByStatus map[string]int64 `json:"usage_by_status"`
	// Most recent calls, newest first
	RecentActivity []UsageLogDetails `json:"recent_activity"`
	// Message indicating successful retrieval
	Message string `json:"message"`
}

// swagger:model PropertyRequest
type PropertyRequest struct {
	// Property display name
	// required: true
	Name string `json:"name" example:"Maple Court Apartments"`
	// Property type: residential, commercial, mixed, industrial, land
	PropertyType string `json:"property_type" example:"residential"`
	// Status: active, under_contract, sold, inactive
	Status string `json:"status" example:"active"`
	// Street address
	// required: true
	Address string `json:"address" example:"12 Maple Ct"`
	City    string `json:"city" example:"Springfield"`
	State   string `json:"state" example:"IL"`
	ZipCode string `json:"zip_code" example:"62704"`
	Country string `json:"country" example:"USA"`
	// Unit counts
	TotalUnits    int `json:"total_units" example:"8"`
	OccupiedUnits int `json:"occupied_units" example:"6"`
	// Physical attributes
	SizeSqft  *float64 `json:"size_sqft" example:"6400"`
	YearBuilt *int     `json:"year_built" example:"1998"`
	// Financials
	PurchasePrice   *float64 `json:"purchase_price" example:"850000"`
	CurrentValue    float64  `json:"current_value" example:"920000"`
	MonthlyRevenue  float64  `json:"monthly_revenue" example:"9600"`
	MonthlyExpenses float64  `json:"monthly_expenses" example:"3100"`
	Description     *string  `json:"description"`
	ImageURL        *string  `json:"image_url"`
	// RFC 3339 acquisition date
	AcquisitionDate *string `json:"acquisition_date" example:"2019-03-15T00:00:00Z"`
}

// swagger:model PropertyDetails
type PropertyDetails struct {
	ID           uint   `json:"id"`
	Name         string `json:"name"`
	PropertyType string `json:"property_type"`
	Status       string `json:"status"`
	Address      string `json:"address"`
	City         string `json:"city"`
	State        string `json:"state"`
	ZipCode      string `json:"zip_code"`
	Country      string `json:"country"`
	// Formatted single-line address
	FullAddress   string   `json:"full_address"`
	TotalUnits    int      `json:"total_units"`
	OccupiedUnits int      `json:"occupied_units"`
	SizeSqft      *float64 `json:"size_sqft"`
	YearBuilt     *int     `json:"year_built"`

	PurchasePrice   *float64 `json:"purchase_price"`
	CurrentValue    float64  `json:"current_value"`
	MonthlyRevenue  float64  `json:"monthly_revenue"`
	MonthlyExpenses float64  `json:"monthly_expenses"`
	// Occupied share of units, percent
	OccupancyRate float64 `json:"occupancy_rate"`
	// Annualized return on purchase price, percent
	ROI float64 `json:"roi"`

	Description     *string `json:"description"`
	ImageURL        *string `json:"image_url"`
	AcquisitionDate *string `json:"acquisition_date"`
	CreatedAt       string  `json:"created_at"`
	UpdatedAt       string  `json:"updated_at"`
}

// swagger:model PropertyListResponse
type PropertyListResponse struct {
	Data       []PropertyDetails `json:"data"`
	Pagination PaginationDetails `json:"pagination"`
	Message    string            `json:"message"`
}

// swagger:model PropertyResponse
type PropertyResponse struct {
	Property PropertyDetails `json:"property"`
	Message  string          `json:"message"`
}

// swagger:model TenantRequest
type TenantRequest struct {
	// required: true
	FirstName string `json:"first_name" example:"Jane"`
	// required: true
	LastName string `json:"last_name" example:"Mitchell"`
	// required: true
	Email       string  `json:"email" example:"jane@example.com"`
	Phone       string  `json:"phone" example:"+15551234567"`
	DateOfBirth *string `json:"date_of_birth" example:"1990-04-12T00:00:00Z"`

	Employer         string   `json:"employer"`
	JobTitle         string   `json:"job_title"`
	MonthlyIncome    *float64 `json:"monthly_income"`
	EmploymentLength string   `json:"employment_length"`

	UnitNumber string `json:"unit_number" example:"3B"`
	// Status: active, inactive, pending
	Status string `json:"status" example:"pending"`

	EmergencyContactName  string `json:"emergency_contact_name"`
	EmergencyContactPhone string `json:"emergency_contact_phone"`

	MoveInDate  *string `json:"move_in_date"`
	MoveOutDate *string `json:"move_out_date"`
	Notes       *string `json:"notes"`
	// Property the tenant occupies
	PropertyID *uint `json:"property_id"`
}

// swagger:model TenantDetails
type TenantDetails struct {
	ID        uint   `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	// First and last name joined
	FullName string `json:"full_name"`
	// Uppercased first letters of first and last name
	Initials    string  `json:"initials"`
	Email       string  `json:"email"`
	Phone       string  `json:"phone"`
	DateOfBirth *string `json:"date_of_birth"`

	Employer         string   `json:"employer"`
	JobTitle         string   `json:"job_title"`
	MonthlyIncome    *float64 `json:"monthly_income"`
	EmploymentLength string   `json:"employment_length"`

	UnitNumber string `json:"unit_number"`
	Status     string `json:"status"`

	EmergencyContactName  string `json:"emergency_contact_name"`
	EmergencyContactPhone string `json:"emergency_contact_phone"`

	MoveInDate  *string `json:"move_in_date"`
	MoveOutDate *string `json:"move_out_date"`
	Notes       *string `json:"notes"`
	PropertyID  *uint   `json:"property_id"`
	// Name of the occupied property, when one is linked
	PropertyName string `json:"property_name,omitempty"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`
}

// swagger:model TenantListResponse
type TenantListResponse struct {
	Data       []TenantDetails   `json:"data"`
	Pagination PaginationDetails `json:"pagination"`
	Message    string            `json:"message"`
}

// swagger:model TenantResponse
type TenantResponse struct {
	Tenant  TenantDetails `json:"tenant"`
	Message string        `json:"message"`
}

// swagger:model LeaseRequest
type LeaseRequest struct {
	// RFC 3339 lease start
	// required: true
	StartDate string `json:"start_date" example:"2025-01-01T00:00:00Z"`
	// RFC 3339 lease end
	// required: true
	EndDate string `json:"end_date" example:"2026-01-01T00:00:00Z"`
	// required: true
	MonthlyRent     float64 `json:"monthly_rent" example:"1200"`
	SecurityDeposit float64 `json:"security_deposit" example:"1200"`
	// Status: pending, active, expiring_soon, expired, terminated
	Status string  `json:"status" example:"active"`
	Notes  *string `json:"notes"`
	// required: true
	PropertyID uint `json:"property_id"`
	// required: true
	TenantID uint `json:"tenant_id"`
}

// swagger:model LeaseDetails
type LeaseDetails struct {
	ID              uint    `json:"id"`
	StartDate       string  `json:"start_date"`
	EndDate         string  `json:"end_date"`
	MonthlyRent     float64 `json:"monthly_rent"`
	SecurityDeposit float64 `json:"security_deposit"`
	Status          string  `json:"status"`
	Notes           *string `json:"notes"`
	PropertyID      uint    `json:"property_id"`
	PropertyName    string  `json:"property_name,omitempty"`
	TenantID        uint    `json:"tenant_id"`
	TenantName      string  `json:"tenant_name,omitempty"`
	CreatedAt       string  `json:"created_at"`
	UpdatedAt       string  `json:"updated_at"`
}

// swagger:model LeaseListResponse
type LeaseListResponse struct {
	Data       []LeaseDetails    `json:"data"`
	Pagination PaginationDetails `json:"pagination"`
	Message    string            `json:"message"`
}

// swagger:model LeaseResponse
type LeaseResponse struct {
	Lease   LeaseDetails `json:"lease"`
	Message string       `json:"message"`
}

// swagger:model RevenueRequest
type RevenueRequest struct {
	// Source: rent, late_fee, security_deposit, parking, maintenance, other
	Source string `json:"source" example:"rent"`
	// required: true
	Amount float64 `json:"amount" example:"1200"`
	// RFC 3339 date the payment was received
	// required: true
	Date            string  `json:"date" example:"2025-06-01T00:00:00Z"`
	Description     *string `json:"description"`
	PaymentMethod   string  `json:"payment_method" example:"bank_transfer"`
	ReferenceNumber string  `json:"reference_number"`
	// required: true
	PropertyID uint  `json:"property_id"`
	LeaseID    *uint `json:"lease_id"`
	TenantID   *uint `json:"tenant_id"`
}

// swagger:model ExpenseRequest
type ExpenseRequest struct {
	// Category: maintenance, utilities, insurance, property_tax,
	// management_fee, mortgage, hoa, marketing, legal, supplies, other
	// required: true
	Category string `json:"category" example:"utilities"`
	// required: true
	Amount float64 `json:"amount" example:"340.5"`
	// RFC 3339 date the expense was incurred
	// required: true
	Date          string `json:"date" example:"2025-06-01T00:00:00Z"`
	Description   string `json:"description"`
	VendorName    string `json:"vendor_name"`
	InvoiceNumber string `json:"invoice_number"`
	PaymentMethod string `json:"payment_method"`
	Paid          bool   `json:"paid"`
	// RFC 3339 date the expense was paid
	PaidDate *string `json:"paid_date"`
	// required: true
	PropertyID uint `json:"property_id"`
}

// swagger:model RevenueDetails
type RevenueDetails struct {
	ID              uint    `json:"id"`
	Source          string  `json:"source"`
	Amount          float64 `json:"amount"`
	Date            string  `json:"date"`
	Description     *string `json:"description"`
	PaymentMethod   string  `json:"payment_method"`
	ReferenceNumber string  `json:"reference_number"`
	PropertyID      uint    `json:"property_id"`
	LeaseID         *uint   `json:"lease_id"`
	TenantID        *uint   `json:"tenant_id"`
	CreatedAt       string  `json:"created_at"`
}

// swagger:model ExpenseDetails
type ExpenseDetails struct {
	ID            uint    `json:"id"`
	Category      string  `json:"category"`
	Amount        float64 `json:"amount"`
	Date          string  `json:"date"`
	Description   string  `json:"description"`
	VendorName    string  `json:"vendor_name"`
	InvoiceNumber string  `json:"invoice_number"`
	PaymentMethod string  `json:"payment_method"`
	Paid          bool    `json:"paid"`
	PaidDate      *string `json:"paid_date"`
	PropertyID    uint    `json:"property_id"`
	CreatedAt     string  `json:"created_at"`
}

// swagger:model RevenueListResponse
type RevenueListResponse struct {
	Data       []RevenueDetails  `json:"data"`
	Pagination PaginationDetails `json:"pagination"`
	Message    string            `json:"message"`
}

// swagger:model ExpenseListResponse
type ExpenseListResponse struct {
	Data       []ExpenseDetails  `json:"data"`
	Pagination PaginationDetails `json:"pagination"`
	Message    string            `json:"message"`
}

// swagger:model PaymentRequest
type PaymentRequest struct {
	// Amount owed for this payment
	// required: true
	Amount float64 `json:"amount" example:"1200"`
	// Portion already settled, defaults to 0
	AmountPaid float64 `json:"amount_paid"`
	// RFC 3339 date the payment falls due
	// required: true
	DueDate string `json:"due_date" example:"2025-07-01T00:00:00Z"`
	// required: true
	LeaseID uint `json:"lease_id"`
	// Only "cancelled" is honored; any other value is derived from the
	// amounts and due date
	Status          string `json:"status"`
	PaymentMethod   string `json:"payment_method"`
	ReferenceNumber string `json:"reference_number"`
	Notes           string `json:"notes"`
}

// swagger:model MarkPaymentPaidRequest
type MarkPaymentPaidRequest struct {
	// RFC 3339 date the payment was settled, defaults to now
	PaidDate        *string `json:"paid_date"`
	PaymentMethod   string  `json:"payment_method"`
	ReferenceNumber string  `json:"reference_number"`
}

// swagger:model PaymentDetails
type PaymentDetails struct {
	ID         uint    `json:"id"`
	Amount     float64 `json:"amount"`
	AmountPaid float64 `json:"amount_paid"`
	// Amount still owed
	Balance         float64 `json:"balance"`
	DueDate         string  `json:"due_date"`
	PaidDate        *string `json:"paid_date"`
	Status          string  `json:"status"`
	PaymentMethod   string  `json:"payment_method"`
	ReferenceNumber string  `json:"reference_number"`
	Notes           string  `json:"notes"`
	LeaseID         uint    `json:"lease_id"`
	TenantID        *uint   `json:"tenant_id"`
	PropertyID      uint    `json:"property_id"`
	CreatedAt       string  `json:"created_at"`
}

// swagger:model PaymentListResponse
type PaymentListResponse struct {
	Data       []PaymentDetails  `json:"data"`
	Pagination PaginationDetails `json:"pagination"`
	Message    string            `json:"message"`
}

// swagger:model NotificationDetails
type NotificationDetails struct {
	ID       uint   `json:"id"`
	Title    string `json:"title"`
	Message  string `json:"message"`
	Type     string `json:"type"`
	Priority string `json:"priority"`
	IsRead   bool   `json:"is_read"`
	ReadAt   *string `json:"read_at"`
	// Type and ID of the record this notification refers to
	RelatedObjectType string  `json:"related_object_type,omitempty"`
	RelatedObjectID   *uint   `json:"related_object_id,omitempty"`
	ActionURL         string  `json:"action_url,omitempty"`
	ExpiresAt         *string `json:"expires_at"`
	CreatedAt         string  `json:"created_at"`
}

// swagger:model NotificationListResponse
type NotificationListResponse struct {
	Data       []NotificationDetails `json:"data"`
	Pagination PaginationDetails     `json:"pagination"`
	Message    string                `json:"message"`
}

// swagger:model UnreadCountResponse
type UnreadCountResponse struct {
	// Number of unread notifications for the user
	UnreadCount int64  `json:"unread_count"`
	Message     string `json:"message"`
}

// swagger:model DashboardSummaryResponse
type DashboardSummaryResponse struct {
	// Portfolio totals
	TotalProperties int64   `json:"total_properties"`
	TotalUnits      int64   `json:"total_units"`
	OccupiedUnits   int64   `json:"occupied_units"`
	OccupancyRate   float64 `json:"occupancy_rate"`
	// Tenant and lease counts
	ActiveTenants  int64 `json:"active_tenants"`
	ActiveLeases   int64 `json:"active_leases"`
	ExpiringLeases int64 `json:"expiring_leases"`
	// Monthly financials across the portfolio
	MonthlyRevenue   float64 `json:"monthly_revenue"`
	MonthlyExpenses  float64 `json:"monthly_expenses"`
	NetMonthlyIncome float64 `json:"net_monthly_income"`
	// Income and spend actually recorded this calendar month
	CurrentMonthRevenue  float64 `json:"current_month_revenue"`
	CurrentMonthExpenses float64 `json:"current_month_expenses"`
	// Total portfolio valuation
	PortfolioValue float64 `json:"portfolio_value"`
	// Unread notifications for the calling user
	UnreadNotifications int64  `json:"unread_notifications"`
	Message             string `json:"message"`
}

func apiKeyDetails(key *models.APIKey) APIKeyDetails {
	details := APIKeyDetails{
		ID:         key.ID,
		Name:       key.Name,
		MaskedKey:  key.MaskedKey(),
		IsActive:   key.IsActive,
		AllowedIPs: key.AllowedIPs,
		RateLimit:  key.RateLimit,
		CanRead:    key.CanRead,
		CanWrite:   key.CanWrite,
		CanDelete:  key.CanDelete,
		UsageCount: key.UsageCount,
		CreatedAt:  key.CreatedAt.Format(timeFormat),
		UpdatedAt:  key.UpdatedAt.Format(timeFormat),
	}
	if key.LastUsedAt != nil {
		s := key.LastUsedAt.Format(timeFormat)
		details.LastUsedAt = &s
	}
	if key.ExpiresAt != nil {
		s := key.ExpiresAt.Format(timeFormat)
		details.ExpiresAt = &s
	}
	return details
}
