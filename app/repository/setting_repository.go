package repository

import (
	"github.com/genesishub/checkout/app/models"
	"gorm.io/gorm"
)

type settingRepository struct {
	db *gorm.DB
}

// NewSettingRepository creates a settings repository backed by the settings
// table and the in-memory AppSettings cache.
func NewSettingRepository(db *gorm.DB) SettingRepository {
	return &settingRepository{db: db}
}

// Get returns the cached application settings loaded at startup.
func (r *settingRepository) Get() (*models.AppSettings, error) {
	return models.GetAppSettings(), nil
}

// Save persists the settings and refreshes the in-memory cache, so webhook
// secret changes take effect without a restart.
func (r *settingRepository) Save(settings *models.AppSettings) error {
	return models.SaveSettings(r.db, settings)
}

// GetValue reads one raw setting row. Missing keys yield an empty string,
// matching the defaults applied at load time.
func (r *settingRepository) GetValue(key string) (string, error) {
	var setting models.Setting
	err := r.db.Where("setting_key = ?", key).First(&setting).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return "", nil
		}
		return "", err
	}
	return setting.Value, nil
}

// SetValue writes one raw setting row, creating it on first use. The
// AppSettings cache is not touched; callers changing cached values go
// through Save.
func (r *settingRepository) SetValue(key, value string) error {
	var setting models.Setting
	err := r.db.Where("setting_key = ?", key).First(&setting).Error

	if err == gorm.ErrRecordNotFound {
		setting = models.Setting{
			Key:   key,
			Value: value,
			Type:  "string",
		}
		return r.db.Create(&setting).Error
	} else if err != nil {
		return err
	}

	setting.Value = value
	return r.db.Save(&setting).Error
}
