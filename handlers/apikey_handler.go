// SPDX-License-Identifier: GPL-3.0-only

package handlers

import (
	"errors"
	"net/http"
	"propman-server/apiauth"
	"propman-server/crypto"
	"propman-server/db"
	"propman-server/middlewares"
	"propman-server/models"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// prefixRetries bounds how many times key creation retries on a prefix
// collision before giving up.
const prefixRetries = 3

func findUserAPIKey(c echo.Context, userID uint) (*models.APIKey, error) {
	keyID, err := strconv.ParseUint(c.Param("key_id"), 10, 64)
	if err != nil {
		return nil, &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "key_id must be a numeric identifier",
		}
	}

	apiKey := models.APIKey{}
	err = db.Conn.Where("id = ? AND user_id = ?", keyID, userID).First(&apiKey).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &echo.HTTPError{
			Code:    http.StatusNotFound,
			Message: "API key not found",
		}
	}
	if err != nil {
		c.Logger().Errorf("Failed to fetch API key: %v", err)
		return nil, echo.ErrInternalServerError
	}
	return &apiKey, nil
}

// CreateAPIKeyHandler godoc
// @Summary      Create an API key
// @Description  Issues a new API key for the authenticated user. The full
// @Description  plaintext key is returned exactly once in the response.
// @Tags         api-keys
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        createAPIKeyRequest  body  CreateAPIKeyRequest  true  "API key payload"
// @Success      201 {object} CreateAPIKeyResponse "API key created successfully"
// @Failure      400 {object} echo.HTTPError "Bad request"
// @Failure      401 {object} echo.HTTPError "Unauthorized"
// @Failure      500 {object} echo.HTTPError "Internal server error"
// @Router       /v1/auth/api-keys [post]
func CreateAPIKeyHandler(c echo.Context) error {
	logger := c.Logger()

	userID, err := middlewares.GetAuthenticatedUserID(c)
	if err != nil {
		logger.Error("Failed to get authenticated user:", err)
		return echo.ErrUnauthorized
	}

	var req CreateAPIKeyRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid create API key payload:", err)
		return echo.ErrBadRequest
	}

	if req.Name == "" {
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "name field is required",
		}
	}

	rateLimit := 1000
	if req.RateLimit != nil {
		rateLimit = *req.RateLimit
	}
	if rateLimit < 1 || rateLimit > 10000 {
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "rate_limit must be between 1 and 10000",
		}
	}

	expiresAt, err := parseTimeField(req.ExpiresAt, "expires_at")
	if err != nil {
		return err
	}

	canRead := true
	if req.CanRead != nil {
		canRead = *req.CanRead
	}

	apiKey := models.APIKey{
		Name:       req.Name,
		IsActive:   true,
		AllowedIPs: req.AllowedIPs,
		RateLimit:  rateLimit,
		CanRead:    canRead,
		CanWrite:   req.CanWrite != nil && *req.CanWrite,
		CanDelete:  req.CanDelete != nil && *req.CanDelete,
		ExpiresAt:  expiresAt,
		UserID:     userID,
	}

	// The prefix carries a unique index, so a fresh secret is drawn on
	// collision instead of surfacing the constraint error.
	var secret *apiauth.Secret
	for attempt := 0; attempt < prefixRetries; attempt++ {
		secret, err = apiauth.GenerateSecret()
		if err != nil {
			logger.Errorf("Failed to generate API key secret: %v", err)
			return echo.ErrInternalServerError
		}

		var count int64
		if err := db.Conn.Model(&models.APIKey{}).Where("key_prefix = ?", secret.Prefix).Count(&count).Error; err != nil {
			logger.Errorf("Failed to check prefix uniqueness: %v", err)
			return echo.ErrInternalServerError
		}
		if count == 0 {
			break
		}
		secret = nil
	}
	if secret == nil {
		logger.Error("Exhausted prefix collision retries.")
		return echo.ErrInternalServerError
	}

	apiKey.KeyPrefix = secret.Prefix
	apiKey.KeyHash = secret.Hash

	if err := db.Conn.Create(&apiKey).Error; err != nil {
		logger.Errorf("Failed to create API key: %v", err)
		return echo.ErrInternalServerError
	}

	logger.Infof("API key %d created", apiKey.ID)
	return c.JSON(http.StatusCreated, CreateAPIKeyResponse{
		Key:     secret.Plain,
		APIKey:  apiKeyDetails(&apiKey),
		Message: "API key created successfully. Store the key securely; it will not be shown again.",
	})
}

// GetAllAPIKeysHandler godoc
// @Summary      List API keys
// @Description  Returns the authenticated user's API keys, newest first.
// @Tags         api-keys
// @Produce      json
// @Security     BearerAuth
// @Param        page      query  int  false  "Page number (default 1)"
// @Param        page_size query  int  false  "Page size (default 10, max 100)"
// @Success      200 {object} APIKeyListResponse "API keys retrieved successfully"
// @Failure      401 {object} echo.HTTPError "Unauthorized"
// @Failure      500 {object} echo.HTTPError "Internal server error"
// @Router       /v1/auth/api-keys [get]
func GetAllAPIKeysHandler(c echo.Context) error {
	logger := c.Logger()

	userID, err := middlewares.GetAuthenticatedUserID(c)
	if err != nil {
		logger.Error("Failed to get authenticated user:", err)
		return echo.ErrUnauthorized
	}

	page, pageSize := parsePagination(c)

	var total int64
	if err := db.Conn.Model(&models.APIKey{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		logger.Errorf("Failed to count API keys: %v", err)
		return echo.ErrInternalServerError
	}

	var keys []models.APIKey
	if err := db.Conn.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&keys).Error; err != nil {
		logger.Errorf("Failed to fetch API keys: %v", err)
		return echo.ErrInternalServerError
	}

	details := make([]APIKeyDetails, 0, len(keys))
	for i := range keys {
		details = append(details, apiKeyDetails(&keys[i]))
	}

	return c.JSON(http.StatusOK, APIKeyListResponse{
		Data: details,
		Pagination: PaginationDetails{
			Page:       page,
			PageSize:   pageSize,
			Total:      total,
			TotalPages: totalPages(total, pageSize),
		},
		Message: "API keys retrieved successfully",
	})
}

// GetAPIKeyHandler godoc
// @Summary      Get an API key
// @Description  Returns one of the user's API keys by ID.
// @Tags         api-keys
// @Produce      json
// @Security     BearerAuth
// @Param        key_id  path  int  true  "API key ID"
// @Success      200 {object} APIKeyResponse "API key retrieved successfully"
// @Failure      401 {object} echo.HTTPError "Unauthorized"
// @Failure      404 {object} echo.HTTPError "Not found"
// @Failure      500 {object} echo.HTTPError "Internal server error"
// @Router       /v1/auth/api-keys/{key_id} [get]
func GetAPIKeyHandler(c echo.Context) error {
	userID, err := middlewares.GetAuthenticatedUserID(c)
	if err != nil {
		return echo.ErrUnauthorized
	}

	apiKey, err := findUserAPIKey(c, userID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, APIKeyResponse{
		APIKey:  apiKeyDetails(apiKey),
		Message: "API key retrieved successfully",
	})
}

// UpdateAPIKeyHandler godoc
// @Summary      Update an API key
// @Description  Updates the mutable settings of an API key. The secret
// @Description  itself never changes here; use rotate for that.
// @Tags         api-keys
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        key_id  path  int  true  "API key ID"
// @Param        updateAPIKeyRequest  body  UpdateAPIKeyRequest  true  "Update payload"
// @Success      200 {object} APIKeyResponse "API key updated successfully"
// @Failure      400 {object} echo.HTTPError "Bad request"
// @Failure      401 {object} echo.HTTPError "Unauthorized"
// @Failure      404 {object} echo.HTTPError "Not found"
// @Failure      500 {object} echo.HTTPError "Internal server error"
// @Router       /v1/auth/api-keys/{key_id} [put]
func UpdateAPIKeyHandler(c echo.Context) error {
	logger := c.Logger()

	userID, err := middlewares.GetAuthenticatedUserID(c)
	if err != nil {
		return echo.ErrUnauthorized
	}

	apiKey, err := findUserAPIKey(c, userID)
	if err != nil {
		return err
	}

	var req UpdateAPIKeyRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid update API key payload:", err)
		return echo.ErrBadRequest
	}

	updates := map[string]any{}
	if req.Name != nil {
		if *req.Name == "" {
			return &echo.HTTPError{
				Code:    http.StatusBadRequest,
				Message: "name must not be empty",
			}
		}
		updates["name"] = *req.Name
	}
	if req.AllowedIPs != nil {
		updates["allowed_ips"] = *req.AllowedIPs
	}
	if req.RateLimit != nil {
		if *req.RateLimit < 1 || *req.RateLimit > 10000 {
			return &echo.HTTPError{
				Code:    http.StatusBadRequest,
				Message: "rate_limit must be between 1 and 10000",
			}
		}
		updates["rate_limit"] = *req.RateLimit
	}
	if req.CanRead != nil {
		updates["can_read"] = *req.CanRead
	}
	if req.CanWrite != nil {
		updates["can_write"] = *req.CanWrite
	}
	if req.CanDelete != nil {
		updates["can_delete"] = *req.CanDelete
	}
	if req.ExpiresAt != nil {
		expiresAt, err := parseTimeField(req.ExpiresAt, "expires_at")
		if err != nil {
			return err
		}
		updates["expires_at"] = expiresAt
	}

	if len(updates) > 0 {
		if err := db.Conn.Model(apiKey).Updates(updates).Error; err != nil {
			logger.Errorf("Failed to update API key: %v", err)
			return echo.ErrInternalServerError
		}
	}

	return c.JSON(http.StatusOK, APIKeyResponse{
		APIKey:  apiKeyDetails(apiKey),
		Message: "API key updated successfully",
	})
}

// DeleteAPIKeyHandler godoc
// @Summary      Delete an API key
// @Description  Permanently revokes an API key. Its usage logs are removed
// @Description  with it.
// @Tags         api-keys
// @Produce      json
// @Security     BearerAuth
// @Param        key_id  path  int  true  "API key ID"
// @Success      204 "API key deleted"
// @Failure      401 {object} echo.HTTPError "Unauthorized"
// @Failure      404 {object} echo.HTTPError "Not found"
// @Failure      500 {object} echo.HTTPError "Internal server error"
// @Router       /v1/auth/api-keys/{key_id} [delete]
func DeleteAPIKeyHandler(c echo.Context) error {
	logger := c.Logger()

	userID, err := middlewares.GetAuthenticatedUserID(c)
	if err != nil {
		return echo.ErrUnauthorized
	}

	apiKey, err := findUserAPIKey(c, userID)
	if err != nil {
		return err
	}

	if err := db.Conn.Unscoped().Delete(apiKey).Error; err != nil {
		logger.Errorf("Failed to delete API key: %v", err)
		return echo.ErrInternalServerError
	}

	logger.Infof("API key %d deleted", apiKey.ID)
	return c.NoContent(http.StatusNoContent)
}

// RotateAPIKeyHandler godoc
// @Summary      Rotate an API key
// @Description  Replaces the key's secret with a fresh one and resets its
// @Description  usage counters. The old secret stops working immediately.
// @Tags         api-keys
// @Produce      json
// @Security     BearerAuth
// @Param        key_id  path  int  true  "API key ID"
// @Success      200 {object} CreateAPIKeyResponse "API key rotated successfully"
// @Failure      401 {object} echo.HTTPError "Unauthorized"
// @Failure      404 {object} echo.HTTPError "Not found"
// @Failure      500 {object} echo.HTTPError "Internal server error"
// @Router       /v1/auth/api-keys/{key_id}/rotate [post]
func RotateAPIKeyHandler(c echo.Context) error {
	logger := c.Logger()

	userID, err := middlewares.GetAuthenticatedUserID(c)
	if err != nil {
		return echo.ErrUnauthorized
	}

	apiKey, err := findUserAPIKey(c, userID)
	if err != nil {
		return err
	}

	var secret *apiauth.Secret
	for attempt := 0; attempt < prefixRetries; attempt++ {
		secret, err = apiauth.GenerateSecret()
		if err != nil {
			logger.Errorf("Failed to generate API key secret: %v", err)
			return echo.ErrInternalServerError
		}

		var count int64
		if err := db.Conn.Model(&models.APIKey{}).Where("key_prefix = ? AND id != ?", secret.Prefix, apiKey.ID).Count(&count).Error; err != nil {
			logger.Errorf("Failed to check prefix uniqueness: %v", err)
			return echo.ErrInternalServerError
		}
		if count == 0 {
			break
		}
		secret = nil
	}
	if secret == nil {
		logger.Error("Exhausted prefix collision retries.")
		return echo.ErrInternalServerError
	}

	updates := map[string]any{
		"key_prefix":   secret.Prefix,
		"key_hash":     secret.Hash,
		"usage_count":  0,
		"last_used_at": nil,
		"created_at":   time.Now(),
	}
	if err := db.Conn.Model(apiKey).Updates(updates).Error; err != nil {
		logger.Errorf("Failed to rotate API key: %v", err)
		return echo.ErrInternalServerError
	}

	logger.Infof("API key %d rotated", apiKey.ID)
	return c.JSON(http.StatusOK, CreateAPIKeyResponse{
		Key:     secret.Plain,
		APIKey:  apiKeyDetails(apiKey),
		Message: "API key rotated successfully. Store the new key securely; it will not be shown again.",
	})
}

// SetAPIKeyActiveHandler flips the key's active flag. Wired to both the
// activate and deactivate routes.
func SetAPIKeyActiveHandler(active bool) echo.HandlerFunc {
	return func(c echo.Context) error {
		logger := c.Logger()

		userID, err := middlewares.GetAuthenticatedUserID(c)
		if err != nil {
			return echo.ErrUnauthorized
		}

		apiKey, err := findUserAPIKey(c, userID)
		if err != nil {
			return err
		}

		if err := db.Conn.Model(apiKey).Update("is_active", active).Error; err != nil {
			logger.Errorf("Failed to update API key active flag: %v", err)
			return echo.ErrInternalServerError
		}

		message := "API key deactivated"
		if active {
			message = "API key activated"
		}
		return c.JSON(http.StatusOK, APIKeyResponse{
			APIKey:  apiKeyDetails(apiKey),
			Message: message,
		})
	}
}

// VerifyAPIKeyHandler godoc
// @Summary      Verify an API key
// @Description  Checks a plaintext key against the user's own keys and
// @Description  reports whether it is currently valid. Does not consume
// @Description  quota or write usage logs.
// @Tags         api-keys
// @Produce      json
// @Security     BearerAuth
// @Param        key  query  string  true  "Plaintext API key to check"
// @Success      200 {object} VerifyAPIKeyResponse "Verification outcome"
// @Failure      400 {object} echo.HTTPError "Bad request"
// @Failure      401 {object} echo.HTTPError "Unauthorized"
// @Failure      500 {object} echo.HTTPError "Internal server error"
// @Router       /v1/auth/api-keys/verify [get]
func VerifyAPIKeyHandler(c echo.Context) error {
	logger := c.Logger()

	userID, err := middlewares.GetAuthenticatedUserID(c)
	if err != nil {
		return echo.ErrUnauthorized
	}

	plaintext := c.QueryParam("key")
	if plaintext == "" {
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "key query parameter is required",
		}
	}
	if len(plaintext) < apiauth.PrefixLength {
		return c.JSON(http.StatusOK, VerifyAPIKeyResponse{
			Valid:   false,
			Reason:  string(apiauth.ReasonMalformedCredential),
			Message: "Key is malformed",
		})
	}

	apiKey := models.APIKey{}
	err = db.Conn.Where("key_prefix = ? AND user_id = ?", plaintext[:apiauth.PrefixLength], userID).First(&apiKey).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.JSON(http.StatusOK, VerifyAPIKeyResponse{
			Valid:   false,
			Reason:  string(apiauth.ReasonUnknownKey),
			Message: "No matching key found",
		})
	}
	if err != nil {
		logger.Errorf("Failed to look up API key: %v", err)
		return echo.ErrInternalServerError
	}

	if !crypto.VerifyAPIKeyHash(plaintext, apiKey.KeyHash) {
		return c.JSON(http.StatusOK, VerifyAPIKeyResponse{
			Valid:   false,
			Reason:  string(apiauth.ReasonInvalidSecret),
			Message: "Key secret does not match",
		})
	}

	details := apiKeyDetails(&apiKey)
	if !apiKey.IsActive {
		return c.JSON(http.StatusOK, VerifyAPIKeyResponse{
			Valid:   false,
			Reason:  string(apiauth.ReasonKeyInactive),
			APIKey:  &details,
			Message: "Key is inactive",
		})
	}
	if apiKey.IsExpired(time.Now()) {
		return c.JSON(http.StatusOK, VerifyAPIKeyResponse{
			Valid:   false,
			Reason:  string(apiauth.ReasonKeyExpired),
			APIKey:  &details,
			Message: "Key has expired",
		})
	}

	return c.JSON(http.StatusOK, VerifyAPIKeyResponse{
		Valid:   true,
		APIKey:  &details,
		Message: "Key is valid",
	})
}

// GetAPIKeyUsageLogsHandler godoc
// @Summary      Get API key usage logs
// @Description  Returns the 100 most recent calls made with the key.
// @Tags         api-keys
// @Produce      json
// @Security     BearerAuth
// @Param        key_id  path  int  true  "API key ID"
// @Success      200 {object} UsageLogListResponse "Usage logs retrieved successfully"
// @Failure      401 {object} echo.HTTPError "Unauthorized"
// @Failure      404 {object} echo.HTTPError "Not found"
// @Failure      500 {object} echo.HTTPError "Internal server error"
// @Router       /v1/auth/api-keys/{key_id}/usage [get]
func GetAPIKeyUsageLogsHandler(c echo.Context) error {
	logger := c.Logger()

	userID, err := middlewares.GetAuthenticatedUserID(c)
	if err != nil {
		return echo.ErrUnauthorized
	}

	apiKey, err := findUserAPIKey(c, userID)
	if err != nil {
		return err
	}

	var logs []models.APIKeyUsageLog
	if err := db.Conn.Where("api_key_id = ?", apiKey.ID).
		Order("created_at DESC").
		Limit(100).
		Find(&logs).Error; err != nil {
		logger.Errorf("Failed to fetch usage logs: %v", err)
		return echo.ErrInternalServerError
	}

	details := make([]UsageLogDetails, 0, len(logs))
	for _, entry := range logs {
		details = append(details, usageLogDetails(&entry))
	}

	return c.JSON(http.StatusOK, UsageLogListResponse{
		Data:    details,
		Message: "Usage logs retrieved successfully",
	})
}

func usageLogDetails(entry *models.APIKeyUsageLog) UsageLogDetails {
	return UsageLogDetails{
		Endpoint:     entry.Endpoint,
		Method:       entry.Method,
		IPAddress:    entry.IPAddress,
		UserAgent:    entry.UserAgent,
		StatusCode:   entry.StatusCode,
		ResponseTime: entry.ResponseTime,
		CreatedAt:    entry.CreatedAt.Format(timeFormat),
	}
}

// GetAPIKeyStatisticsHandler godoc
// @Summary      Get API key statistics
// @Description  Aggregates usage across all of the user's API keys.
// @Tags         api-keys
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} APIKeyStatisticsResponse "Statistics retrieved successfully"
// @Failure      401 {object} echo.HTTPError "Unauthorized"
// @Failure      500 {object} echo.HTTPError "Internal server error"
// @Router       /v1/auth/api-keys/statistics [get]
func GetAPIKeyStatisticsHandler(c echo.Context) error {
	logger := c.Logger()

	userID, err := middlewares.GetAuthenticatedUserID(c)
	if err != nil {
		return echo.ErrUnauthorized
	}

	var keys []models.APIKey
	if err := db.Conn.Where("user_id = ?", userID).Find(&keys).Error; err != nil {
		logger.Errorf("Failed to fetch API keys: %v", err)
		return echo.ErrInternalServerError
	}

	stats := APIKeyStatisticsResponse{
		UsageByKey:      map[string]int64{},
		UsageByEndpoint: map[string]int64{},
		UsageByStatus:   map[string]int64{},
		Message:         "Statistics retrieved successfully",
	}

	keyIDs := make([]uint, 0, len(keys))
	now := time.Now()
	for i := range keys {
		stats.TotalKeys++
		if keys[i].IsValid(now) {
			stats.ActiveKeys++
		}
		stats.UsageByKey[keys[i].Name] = keys[i].UsageCount
		stats.TotalRequests += keys[i].UsageCount
		keyIDs = append(keyIDs, keys[i].ID)
	}

	if len(keyIDs) > 0 {
		type endpointCount struct {
			Endpoint string
			Count    int64
		}
		var byEndpoint []endpointCount
		if err := db.Conn.Model(&models.APIKeyUsageLog{}).
			Select("endpoint, COUNT(*) as count").
			Where("api_key_id IN ?", keyIDs).
			Group("endpoint").
			Scan(&byEndpoint).Error; err != nil {
			logger.Errorf("Failed to aggregate usage by endpoint: %v", err)
			return echo.ErrInternalServerError
		}
		for _, row := range byEndpoint {
			stats.UsageByEndpoint[row.Endpoint] = row.Count
		}

		type statusCount struct {
			StatusCode int
			Count      int64
		}
		var byStatus []statusCount
		if err := db.Conn.Model(&models.APIKeyUsageLog{}).
			Select("status_code, COUNT(*) as count").
			Where("api_key_id IN ?", keyIDs).
			Group("status_code").
			Scan(&byStatus).Error; err != nil {
			logger.Errorf("Failed to aggregate usage by status: %v", err)
			return echo.ErrInternalServerError
		}
		for _, row := range byStatus {
			stats.UsageByStatus[strconv.Itoa(row.StatusCode)] = row.Count
		}

		var recent []models.APIKeyUsageLog
		if err := db.Conn.Where("api_key_id IN ?", keyIDs).
			Order("created_at DESC").
			Limit(20).
			Find(&recent).Error; err != nil {
			logger.Errorf("Failed to fetch recent activity: %v", err)
			return echo.ErrInternalServerError
		}
		for i := range recent {
			stats.RecentActivity = append(stats.RecentActivity, usageLogDetails(&recent[i]))
		}
	}

	return c.JSON(http.StatusOK, stats)
}
