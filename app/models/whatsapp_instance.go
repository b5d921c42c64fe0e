package models

import "time"

// WhatsApp instance connection states.
const (
	InstanceStatusConnected    = "connected"
	InstanceStatusDisconnected = "disconnected"
)

// WhatsAppInstance tracks one tenant's connected WhatsApp session. The
// gateway posts heartbeats while the session is alive; the background
// reconciler flips stale instances to disconnected.
type WhatsAppInstance struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	InstanceKey     string     `gorm:"type:varchar(100);not null;uniqueIndex" json:"instance_key"`
	TenantSlug      string     `gorm:"type:varchar(100);not null;index" json:"tenant_slug"`
	Status          string     `gorm:"type:varchar(20);not null;default:'disconnected';index" json:"status"`
	LastHeartbeatAt *time.Time `gorm:"type:timestamp;default:null" json:"last_heartbeat_at,omitempty"`
	CreatedAt       time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}
