package redisx

import "fmt"

const ns = "staybook:v1"

func KeyPropertySummary(propertyID string) string {
	return fmt.Sprintf("%s:property:%s:summary", ns, propertyID)
}

func KeyPropertyAvailability(propertyID string) string {
	return fmt.Sprintf("%s:property:%s:availability", ns, propertyID)
}

func KeyPropertyBookings(propertyID string) string {
	return fmt.Sprintf("%s:property:%s:bookings", ns, propertyID)
}

func KeyRateLimit(scope, id string) string {
	return fmt.Sprintf("%s:rl:%s:%s", ns, scope, id)
}

func ChannelPropertiesChanged() string {
	return ns + ":properties:changed"
}
