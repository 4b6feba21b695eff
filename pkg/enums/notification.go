package enums

import "fmt"

type NotificationType string

const (
	NotificationOrderPlaced         NotificationType = "order_placed"
	NotificationOrderStatus         NotificationType = "order_status"
	NotificationSubscriptionRequest NotificationType = "subscription_request"
	NotificationSubscription        NotificationType = "subscription"
	NotificationGeneral             NotificationType = "general"
)

var validNotificationTypes = map[NotificationType]struct{}{
	NotificationOrderPlaced:         {},
	NotificationOrderStatus:         {},
	NotificationSubscriptionRequest: {},
	NotificationSubscription:        {},
	NotificationGeneral:             {},
}

func (t NotificationType) IsValid() bool {
	_, ok := validNotificationTypes[t]
	return ok
}

func ParseNotificationType(value string) (NotificationType, error) {
	typ := NotificationType(value)
	if !typ.IsValid() {
		return "", fmt.Errorf("invalid notification type %q", value)
	}
	return typ, nil
}

func (t NotificationType) String() string {
	return string(t)
}
