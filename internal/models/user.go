// Package models contains the client-side projections of server objects.
// They are caches of whatever the backend returned; the client does not
// validate their shape beyond presence.
package models

// UserProfile is the server's view of the authenticated user, fetched from
// GET /users/me after credential validation.
type UserProfile struct {
	ID               string         `json:"_id"`
	Name             string         `json:"name"`
	Email            string         `json:"email"`
	SubscriptionTier string         `json:"subscriptionTier"`
	UsageCounters    map[string]int `json:"usage"`
	Preferences      map[string]any `json:"preferences"`
}
