package repository

import (
	"time"

	"github.com/genesishub/checkout/app/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// instanceRepository implements the InstanceRepository interface
type instanceRepository struct {
	db *gorm.DB
}

// NewInstanceRepository creates a new instance repository instance
func NewInstanceRepository(db *gorm.DB) InstanceRepository {
	return &instanceRepository{db: db}
}

// UpsertHeartbeat records a heartbeat for an instance, creating the row on
// first contact and flipping the status back to connected on every beat.
func (r *instanceRepository) UpsertHeartbeat(instanceKey, tenantSlug string, at time.Time) (*models.WhatsAppInstance, error) {
	instance := &models.WhatsAppInstance{
		InstanceKey:     instanceKey,
		TenantSlug:      tenantSlug,
		Status:          models.InstanceStatusConnected,
		LastHeartbeatAt: &at,
	}
	if err := r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "instance_key"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"tenant_slug",
			"status",
			"last_heartbeat_at",
			"updated_at",
		}),
	}).Create(instance).Error; err != nil {
		return nil, err
	}

	// Ensure ID is populated after upsert.
	if err := r.db.Where("instance_key = ?", instanceKey).First(instance).Error; err != nil {
		return nil, err
	}
	return instance, nil
}

// MarkStaleDisconnected flips connected instances whose last heartbeat is
// older than staleBefore. Returns the number of affected rows.
func (r *instanceRepository) MarkStaleDisconnected(staleBefore time.Time) (int64, error) {
	tx := r.db.Model(&models.WhatsAppInstance{}).
		Where("status = ? AND (last_heartbeat_at IS NULL OR last_heartbeat_at < ?)", models.InstanceStatusConnected, staleBefore).
		Update("status", models.InstanceStatusDisconnected)
	return tx.RowsAffected, tx.Error
}

func (r *instanceRepository) GetByInstanceKey(instanceKey string) (*models.WhatsAppInstance, error) {
	var instance models.WhatsAppInstance
	if err := r.db.Where("instance_key = ?", instanceKey).First(&instance).Error; err != nil {
		return nil, err
	}
	return &instance, nil
}
