package v1

import (
	"fmt"
	"net/http"

	"medguard_service/internal/domain/pwa"

	"github.com/gin-gonic/gin"
)

// PWAHandler defines the interface for handling push subscription, offline sync
// and settings operations
type PWAHandler interface {
	Subscribe(ctx *gin.Context)
	Unsubscribe(ctx *gin.Context)
	RegisterDevice(ctx *gin.Context)
	ListSubscriptions(ctx *gin.Context)
	Sync(ctx *gin.Context)
	GetSettings(ctx *gin.Context)
	UpdateSettings(ctx *gin.Context)
	Manifest(ctx *gin.Context)
}

// pwaHandler struct holds the services
type pwaHandler struct {
	subscriptionService pwa.SubscriptionService
	syncService         pwa.SyncService
	settingsService     pwa.SettingsService
}

// NewPWAHandler creates a new PWAHandler
func NewPWAHandler(subscriptionService pwa.SubscriptionService, syncService pwa.SyncService, settingsService pwa.SettingsService) PWAHandler {
	return &pwaHandler{
		subscriptionService: subscriptionService,
		syncService:         syncService,
		settingsService:     settingsService,
	}
}

// Subscribe upserts a browser push subscription
func (handler *pwaHandler) Subscribe(ctx *gin.Context) {
	var request SubscribeRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid request body"})
		return
	}

	if err := request.Validate(); err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: err.Error()})
		return
	}

	subscription, err := handler.subscriptionService.Subscribe(ctx, &pwa.PushSubscription{
		UserID:     request.UserID,
		Endpoint:   request.Endpoint,
		P256dh:     request.P256dh,
		Auth:       request.Auth,
		DeviceName: request.DeviceName,
	})
	if err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: fmt.Sprintf("error storing subscription: %v", err)})
		return
	}

	ctx.JSON(http.StatusCreated, newSubscriptionResponse(subscription))
}

// Unsubscribe removes a subscription by endpoint
func (handler *pwaHandler) Unsubscribe(ctx *gin.Context) {
	endpoint := ctx.Query("endpoint")
	if len(endpoint) == 0 {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: "endpoint query parameter is required"})
		return
	}

	if err := handler.subscriptionService.Unsubscribe(ctx, endpoint); err != nil {
		ctx.JSON(http.StatusNotFound, ErrorResponse{Message: fmt.Sprintf("error removing subscription: %v", err)})
		return
	}

	ctx.JSON(http.StatusNoContent, InfoResponse{Message: "subscription removed"})
}

// RegisterDevice upserts a native device token
func (handler *pwaHandler) RegisterDevice(ctx *gin.Context) {
	var request RegisterDeviceRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid request body"})
		return
	}

	if err := request.Validate(); err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: err.Error()})
		return
	}

	device, err := handler.subscriptionService.RegisterDevice(ctx, &pwa.UserDevice{
		UserID:     request.UserID,
		FCMToken:   request.FCMToken,
		DeviceType: request.DeviceType,
	})
	if err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: fmt.Sprintf("error registering device: %v", err)})
		return
	}

	ctx.JSON(http.StatusCreated, newDeviceResponse(device))
}

// ListSubscriptions returns the user's push subscriptions and devices
func (handler *pwaHandler) ListSubscriptions(ctx *gin.Context) {
	userID := ctx.Param("userId")

	subscriptions, devices, err := handler.subscriptionService.ListForUser(ctx, userID)
	if err != nil {
		ctx.JSON(http.StatusNotFound, ErrorResponse{Message: fmt.Sprintf("list query failed: %v", err)})
		return
	}

	subscriptionResponses := []SubscriptionResponse{}
	for _, subscription := range subscriptions {
		subscriptionResponses = append(subscriptionResponses, newSubscriptionResponse(subscription))
	}

	deviceResponses := []DeviceResponse{}
	for _, device := range devices {
		deviceResponses = append(deviceResponses, newDeviceResponse(device))
	}

	ctx.JSON(http.StatusOK, gin.H{
		"subscriptions": subscriptionResponses,
		"devices":       deviceResponses,
	})
}

// Sync applies a batch of offline client changes
func (handler *pwaHandler) Sync(ctx *gin.Context) {
	var request SyncRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid request body"})
		return
	}

	if err := request.Validate(); err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: err.Error()})
		return
	}

	items := make([]*pwa.OfflineData, 0, len(request.Items))
	for _, item := range request.Items {
		items = append(items, &pwa.OfflineData{
			Resource:        item.Resource,
			ResourceID:      item.ResourceID,
			Payload:         item.Payload,
			ClientTimestamp: item.ClientTimestamp,
		})
	}

	results, err := handler.syncService.Sync(ctx, request.UserID, items)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: fmt.Sprintf("error syncing offline data: %v", err)})
		return
	}

	listResponse := []SyncItemResponse{}
	for _, result := range results {
		listResponse = append(listResponse, SyncItemResponse{
			ResourceID: result.ResourceID,
			Applied:    result.Applied,
			Reason:     result.Reason,
		})
	}

	ctx.JSON(http.StatusOK, listResponse)
}

// GetSettings returns the user's PWA settings
func (handler *pwaHandler) GetSettings(ctx *gin.Context) {
	userID := ctx.Param("userId")

	settings, err := handler.settingsService.Get(ctx, userID)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: fmt.Sprintf("error loading settings: %v", err)})
		return
	}

	ctx.JSON(http.StatusOK, newSettingsResponse(settings))
}

// UpdateSettings replaces the user's PWA settings
func (handler *pwaHandler) UpdateSettings(ctx *gin.Context) {
	userID := ctx.Param("userId")

	var request UpdateSettingsRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid request body"})
		return
	}

	if err := request.Validate(); err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: err.Error()})
		return
	}

	settings := &pwa.PWASettings{
		UserID:         userID,
		OfflineEnabled: request.OfflineEnabled,
		SyncIntervalS:  request.SyncIntervalS,
		ThemeColor:     request.ThemeColor,
	}

	if err := handler.settingsService.Update(ctx, settings); err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: fmt.Sprintf("error updating settings: %v", err)})
		return
	}

	ctx.JSON(http.StatusOK, newSettingsResponse(settings))
}

// Manifest serves the web app manifest for installable clients
func (handler *pwaHandler) Manifest(ctx *gin.Context) {
	ctx.Header("Content-Type", "application/manifest+json")
	ctx.JSON(http.StatusOK, gin.H{
		"name":             "MedGuard SA",
		"short_name":       "MedGuard",
		"description":      "Medication management for South African patients",
		"start_url":        "/",
		"display":          "standalone",
		"background_color": "#ffffff",
		"theme_color":      "#2563eb",
		"lang":             "en-ZA",
		"icons": []gin.H{
			{"src": "/static/icons/icon-192.png", "sizes": "192x192", "type": "image/png"},
			{"src": "/static/icons/icon-512.png", "sizes": "512x512", "type": "image/png"},
		},
	})
}
