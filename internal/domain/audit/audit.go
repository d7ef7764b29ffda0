package audit

import (
	"time"
)

// Category represents the type of audit event.
type Category string

const (
	CategoryAccount  Category = "account"
	CategoryRole     Category = "role"
	CategoryGym      Category = "gym"
	CategorySecurity Category = "security"
	CategorySystem   Category = "system"
)

// Action represents the action that occurred.
type Action string

const (
	ActionCreate      Action = "create"
	ActionUpdate      Action = "update"
	ActionLogin       Action = "login"
	ActionLogout      Action = "logout"
	ActionRoleAcquire Action = "role_acquire"
	ActionFlagSet     Action = "flag_set"
)

// Severity represents the severity level of an audit event.
type Severity string

const (
	SeverityInfo     Severity = "info"
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)

// Event represents a single audit log entry. Role-flag mutations and gym
// creation are each recorded individually so a partially completed
// role-acquisition sequence is visible in the log.
type Event struct {
	ID           string    `json:"id"`
	Timestamp    time.Time `json:"timestamp"`
	Category     Category  `json:"category"`
	Action       Action    `json:"action"`
	Severity     Severity  `json:"severity"`
	ActorID      string    `json:"actor_id"`
	ActorEmail   string    `json:"actor_email"`
	ResourceID   string    `json:"resource_id"`
	ResourceType string    `json:"resource_type"`
	Description  string    `json:"description"`
	IPAddress    string    `json:"ip_address"`
}
