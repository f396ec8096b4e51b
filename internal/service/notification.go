package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/Zelesto/trailers-backend-sub001/internal/domain"
)

// NotificationType represents the type of notification.
type NotificationType string

const (
	NotificationTripPlanned      NotificationType = "TRIP_PLANNED"
	NotificationTripAssigned     NotificationType = "TRIP_ASSIGNED"
	NotificationTripCompleted    NotificationType = "TRIP_COMPLETED"
	NotificationTripCancelled    NotificationType = "TRIP_CANCELLED"
	NotificationPaymentPosted    NotificationType = "PAYMENT_POSTED"
	NotificationVarianceDetected NotificationType = "VARIANCE_DETECTED"
)

// Notification represents a notification to be sent.
type Notification struct {
	ID          string
	Type        NotificationType
	RecipientID string // Driver ID or back-office channel
	Title       string
	Message     string
	Data        map[string]interface{}
	CreatedAt   time.Time
}

// NotificationService handles notification delivery.
type NotificationService struct {
	// In a real system, this would have:
	// - Push notification client (FCM, APNS)
	// - SMS client (Twilio)
	// - Email client (SendGrid)
	// - WebSocket connections for real-time dispatch boards
}

// NewNotificationService creates a new NotificationService.
func NewNotificationService() *NotificationService {
	return &NotificationService{}
}

// NotifyTripPlanned notifies dispatch that a trip has been planned.
func (s *NotificationService) NotifyTripPlanned(ctx context.Context, trip *domain.Trip) error {
	notification := Notification{
		Type:        NotificationTripPlanned,
		RecipientID: "dispatch",
		Title:       "Trip Planned",
		Message:     fmt.Sprintf("Trip from %s to %s is planned", trip.OriginName, trip.DestinationName),
		Data: map[string]interface{}{
			"trip_id":      trip.ID,
			"scheduled_at": trip.ScheduledAt,
		},
		CreatedAt: time.Now(),
	}
	return s.send(ctx, notification)
}

// NotifyTripAssigned notifies the driver that a trip has been assigned to them.
func (s *NotificationService) NotifyTripAssigned(ctx context.Context, trip *domain.Trip, driverID string) error {
	notification := Notification{
		Type:        NotificationTripAssigned,
		RecipientID: driverID,
		Title:       "Trip Assigned",
		Message:     fmt.Sprintf("You have been assigned a trip from %s to %s", trip.OriginName, trip.DestinationName),
		Data: map[string]interface{}{
			"trip_id":    trip.ID,
			"vehicle_id": trip.VehicleID,
		},
		CreatedAt: time.Now(),
	}
	return s.send(ctx, notification)
}

// NotifyTripCompleted notifies dispatch that a trip has completed.
func (s *NotificationService) NotifyTripCompleted(ctx context.Context, trip *domain.Trip) error {
	notification := Notification{
		Type:        NotificationTripCompleted,
		RecipientID: "dispatch",
		Title:       "Trip Completed",
		Message:     fmt.Sprintf("Trip %s has arrived at %s", trip.ID, trip.DestinationName),
		Data: map[string]interface{}{
			"trip_id":      trip.ID,
			"completed_at": trip.CompletedAt,
		},
		CreatedAt: time.Now(),
	}
	return s.send(ctx, notification)
}

// NotifyTripCancelled notifies the assigned driver, if any, about a cancellation.
func (s *NotificationService) NotifyTripCancelled(ctx context.Context, trip *domain.Trip) error {
	if trip.DriverID == "" {
		return nil // No one to notify
	}

	notification := Notification{
		Type:        NotificationTripCancelled,
		RecipientID: trip.DriverID,
		Title:       "Trip Cancelled",
		Message:     "The trip assigned to you has been cancelled",
		Data: map[string]interface{}{
			"trip_id": trip.ID,
			"reason":  trip.CancelReason,
		},
		CreatedAt: time.Now(),
	}
	return s.send(ctx, notification)
}

// NotifyPaymentPosted notifies finance that a payment has been posted to the ledger.
func (s *NotificationService) NotifyPaymentPosted(ctx context.Context, payment *domain.Payment) error {
	notification := Notification{
		Type:        NotificationPaymentPosted,
		RecipientID: "finance",
		Title:       "Payment Posted",
		Message:     fmt.Sprintf("Payment %s of %s has been posted", payment.Reference, payment.Amount.StringFixed(2)),
		Data: map[string]interface{}{
			"payment_id": payment.ID,
			"amount":     payment.Amount.String(),
			"method":     payment.Method,
		},
		CreatedAt: time.Now(),
	}
	return s.send(ctx, notification)
}

// NotifyVarianceDetected alerts finance about a reconciliation variance.
func (s *NotificationService) NotifyVarianceDetected(ctx context.Context, rec *domain.Reconciliation) error {
	notification := Notification{
		Type:        NotificationVarianceDetected,
		RecipientID: "finance",
		Title:       "Reconciliation Variance",
		Message:     fmt.Sprintf("Account %s has a variance of %s", rec.AccountID, rec.Variance.StringFixed(2)),
		Data: map[string]interface{}{
			"reconciliation_id": rec.ID,
			"account_id":        rec.AccountID,
			"variance":          rec.Variance.String(),
		},
		CreatedAt: time.Now(),
	}
	return s.send(ctx, notification)
}

// send delivers a notification (mock implementation).
func (s *NotificationService) send(ctx context.Context, notification Notification) error {
	// In a real implementation, this would:
	// 1. Store notification in database
	// 2. Send push notification via FCM/APNS
	// 3. Send SMS if enabled
	// 4. Broadcast via WebSocket for real-time updates

	log.Printf("[NOTIFICATION] Type=%s, Recipient=%s, Title=%s, Message=%s",
		notification.Type, notification.RecipientID, notification.Title, notification.Message)

	return nil
}
