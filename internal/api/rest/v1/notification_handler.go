package v1

import (
	"fmt"
	"net/http"

	"medguard_service/internal/domain/notifications"
	"medguard_service/internal/pkg/strutil"

	"github.com/gin-gonic/gin"
)

// NotificationHandler defines the interface for handling dispatch, inbox and
// preference operations
type NotificationHandler interface {
	Dispatch(ctx *gin.Context)
	ListInbox(ctx *gin.Context)
	UnreadCount(ctx *gin.Context)
	MarkRead(ctx *gin.Context)
	MarkAllRead(ctx *gin.Context)
	GetPreferences(ctx *gin.Context)
	UpdatePreferences(ctx *gin.Context)
}

// notificationHandler struct holds the services
type notificationHandler struct {
	dispatchService    notifications.DispatchService
	inboxService       notifications.InboxService
	preferencesService notifications.PreferencesService
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(dispatchService notifications.DispatchService, inboxService notifications.InboxService, preferencesService notifications.PreferencesService) NotificationHandler {
	return &notificationHandler{
		dispatchService:    dispatchService,
		inboxService:       inboxService,
		preferencesService: preferencesService,
	}
}

// Dispatch delivers one notification over the requested channels
func (handler *notificationHandler) Dispatch(ctx *gin.Context) {
	var request DispatchNotificationRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid request body"})
		return
	}

	if err := request.Validate(); err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: err.Error()})
		return
	}

	result, err := handler.dispatchService.Dispatch(ctx, &notifications.DispatchRequest{
		UserID: request.UserID,
		Notification: &notifications.Notification{
			Title:            request.Title,
			Body:             request.Body,
			NotificationType: request.NotificationType,
			Priority:         request.Priority,
			Metadata:         request.Metadata,
		},
		Channels: request.Channels,
	})
	if err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: fmt.Sprintf("error dispatching notification: %v", err)})
		return
	}

	ctx.JSON(http.StatusCreated, DispatchResponse{UserID: result.UserID, Outcomes: result.Outcomes})
}

// ListInbox fetches a user's in-app notifications, newest first
func (handler *notificationHandler) ListInbox(ctx *gin.Context) {
	query := notifications.NewInboxQuery(ctx.Param("userId"))

	if unreadOnly := ctx.Query("unreadOnly"); unreadOnly == "true" {
		query.UnreadOnly = true
	}

	if limit := ctx.Query("limit"); len(limit) > 0 {
		query.Limit = strutil.ConvertToInt(limit)
	}

	if offset := ctx.Query("offset"); len(offset) > 0 {
		query.Offset = strutil.ConvertToInt(offset)
	}

	if err := query.Validate(); err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: err.Error()})
		return
	}

	rows, err := handler.inboxService.List(ctx, query)
	if err != nil {
		ctx.JSON(http.StatusNotFound, ErrorResponse{Message: fmt.Sprintf("list query failed: %v", err)})
		return
	}

	listResponse := []InboxItemResponse{}
	for _, row := range rows {
		listResponse = append(listResponse, newInboxItemResponse(row))
	}

	ctx.JSON(http.StatusOK, listResponse)
}

// UnreadCount returns the number of unread in-app notifications
func (handler *notificationHandler) UnreadCount(ctx *gin.Context) {
	userID := ctx.Param("userId")

	count, err := handler.inboxService.UnreadCount(ctx, userID)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: fmt.Sprintf("error counting unread notifications: %v", err)})
		return
	}

	ctx.JSON(http.StatusOK, UnreadCountResponse{UnreadCount: count})
}

// MarkRead marks one notification read
func (handler *notificationHandler) MarkRead(ctx *gin.Context) {
	userID := ctx.Param("userId")
	userNotificationID := ctx.Param("id")

	if err := handler.inboxService.MarkRead(ctx, userID, userNotificationID); err != nil {
		ctx.JSON(http.StatusNotFound, ErrorResponse{Message: fmt.Sprintf("notification with id %s not found", userNotificationID)})
		return
	}

	ctx.JSON(http.StatusOK, InfoResponse{Message: fmt.Sprintf("marked notification %s read", userNotificationID)})
}

// MarkAllRead marks every unread in-app notification read
func (handler *notificationHandler) MarkAllRead(ctx *gin.Context) {
	userID := ctx.Param("userId")

	if err := handler.inboxService.MarkAllRead(ctx, userID); err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: fmt.Sprintf("error marking notifications read: %v", err)})
		return
	}

	ctx.JSON(http.StatusOK, InfoResponse{Message: "marked all notifications read"})
}

// GetPreferences returns the user's channel preferences
func (handler *notificationHandler) GetPreferences(ctx *gin.Context) {
	userID := ctx.Param("userId")

	prefs, err := handler.preferencesService.Get(ctx, userID)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: fmt.Sprintf("error loading preferences: %v", err)})
		return
	}

	ctx.JSON(http.StatusOK, newPreferencesResponse(prefs))
}

// UpdatePreferences replaces the user's channel preferences
func (handler *notificationHandler) UpdatePreferences(ctx *gin.Context) {
	userID := ctx.Param("userId")

	var request UpdatePreferencesRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid request body"})
		return
	}

	if err := request.Validate(); err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: err.Error()})
		return
	}

	prefs := &notifications.UserNotificationPreferences{
		UserID:          userID,
		EmailEnabled:    request.EmailEnabled,
		PushEnabled:     request.PushEnabled,
		SMSEnabled:      request.SMSEnabled,
		InAppEnabled:    request.InAppEnabled,
		EmailAddress:    request.EmailAddress,
		PhoneNumber:     request.PhoneNumber,
		QuietHoursStart: request.QuietHoursStart,
		QuietHoursEnd:   request.QuietHoursEnd,
		Timezone:        request.Timezone,
	}

	if err := handler.preferencesService.Update(ctx, prefs); err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: fmt.Sprintf("error updating preferences: %v", err)})
		return
	}

	ctx.JSON(http.StatusOK, newPreferencesResponse(prefs))
}
