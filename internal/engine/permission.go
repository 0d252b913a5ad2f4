package engine

import "fmt"

// Usage is what the caller tracks about oracle spending.
type Usage struct {
	HasAPIKey    bool
	TokenBalance int
	DailyCount   int
	DailyLimit   int
}

// Decision is the answer of a permission check.
type Decision struct {
	Allowed bool
	Reason  string
}

// PermissionFunc decides whether mixing is currently permitted.
type PermissionFunc func(u Usage) Decision

// DefaultPermission allows players with their own key, players under the
// daily limit, and players with tokens left.
func DefaultPermission(u Usage) Decision {
	switch {
	case u.HasAPIKey:
		return Decision{Allowed: true}
	case u.DailyCount < u.DailyLimit:
		return Decision{Allowed: true}
	case u.TokenBalance > 0:
		return Decision{Allowed: true}
	default:
		return Decision{Reason: fmt.Sprintf("daily limit of %d mixes reached", u.DailyLimit)}
	}
}

// consume charges one oracle call against u.
func (u Usage) consume() Usage {
	switch {
	case u.HasAPIKey:
	case u.DailyCount < u.DailyLimit:
		u.DailyCount++
	case u.TokenBalance > 0:
		u.TokenBalance--
	}
	return u
}
