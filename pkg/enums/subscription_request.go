package enums

import "fmt"

type SubscriptionRequestStatus string

const (
	SubscriptionRequestPending  SubscriptionRequestStatus = "pending"
	SubscriptionRequestApproved SubscriptionRequestStatus = "approved"
	SubscriptionRequestRejected SubscriptionRequestStatus = "rejected"
)

func (s SubscriptionRequestStatus) IsValid() bool {
	switch s {
	case SubscriptionRequestPending, SubscriptionRequestApproved, SubscriptionRequestRejected:
		return true
	}
	return false
}

func (s SubscriptionRequestStatus) String() string {
	return string(s)
}

func ParseSubscriptionRequestStatus(value string) (SubscriptionRequestStatus, error) {
	status := SubscriptionRequestStatus(value)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid subscription request status %q", value)
	}
	return status, nil
}
