package models

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

// Setting represents a system setting
type Setting struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Key       string    `gorm:"column:setting_key;size:255;not null;uniqueIndex" json:"key" validate:"required,min=1,max=255"`
	Value     string    `gorm:"type:text" json:"value"`
	Type      string    `gorm:"size:50;not null" json:"type" validate:"required"` // string, boolean, integer, float
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AppSettings represents the application settings structure
type AppSettings struct {
	SiteTitle            string `json:"site_title" validate:"required,min=1,max=255"`
	CheckoutEnabled      bool   `json:"checkout_enabled"`
	AsaasWebhookToken    string `json:"asaas_webhook_token" validate:"max=255"`
	AbacateWebhookSecret string `json:"abacatepay_webhook_secret" validate:"max=255"`
	mu                   sync.RWMutex
}

// Global settings instance
var (
	appSettings *AppSettings
	settingsMu  sync.RWMutex
)

// GetAppSettings returns the current application settings
func GetAppSettings() *AppSettings {
	settingsMu.RLock()
	defer settingsMu.RUnlock()
	return appSettings
}

// LoadSettings loads settings from database into memory
func LoadSettings(db *gorm.DB) error {
	settingsMu.Lock()
	defer settingsMu.Unlock()

	// Initialize with defaults
	appSettings = &AppSettings{
		SiteTitle:       "Genesis Hub",
		CheckoutEnabled: true,
	}

	// Load settings from database
	var settings []Setting
	if err := db.Find(&settings).Error; err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	// Apply loaded settings
	for _, setting := range settings {
		switch setting.Key {
		case "site_title":
			appSettings.SiteTitle = setting.Value
		case "checkout_enabled":
			appSettings.CheckoutEnabled = setting.Value == "true"
		case "asaas_webhook_token":
			appSettings.AsaasWebhookToken = setting.Value
		case "abacatepay_webhook_secret":
			appSettings.AbacateWebhookSecret = setting.Value
		}
	}

	return nil
}

// SaveSettings saves current settings to database
func SaveSettings(db *gorm.DB, settings *AppSettings) error {
	settingsMu.Lock()
	defer settingsMu.Unlock()

	// Validate settings
	if err := settings.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	// Convert settings to database format
	settingsMap := map[string]interface{}{
		"site_title":                settings.SiteTitle,
		"checkout_enabled":          fmt.Sprintf("%t", settings.CheckoutEnabled),
		"asaas_webhook_token":       settings.AsaasWebhookToken,
		"abacatepay_webhook_secret": settings.AbacateWebhookSecret,
	}

	// Save each setting
	for key, value := range settingsMap {
		var setting Setting
		result := db.Where("setting_key = ?", key).First(&setting)

		if result.Error != nil {
			if result.Error == gorm.ErrRecordNotFound {
				// Create new setting
				setting = Setting{
					Key:   key,
					Value: fmt.Sprintf("%v", value),
					Type:  getSettingType(key),
				}
				if err := db.Create(&setting).Error; err != nil {
					return fmt.Errorf("failed to create setting %s: %w", key, err)
				}
			} else {
				return fmt.Errorf("failed to query setting %s: %w", key, result.Error)
			}
		} else {
			// Update existing setting
			setting.Value = fmt.Sprintf("%v", value)
			if err := db.Save(&setting).Error; err != nil {
				return fmt.Errorf("failed to update setting %s: %w", key, err)
			}
		}
	}

	// Update global settings
	appSettings = settings
	return nil
}

// getSettingType returns the type of a setting based on its key
func getSettingType(key string) string {
	switch key {
	case "checkout_enabled":
		return "boolean"
	default:
		return "string"
	}
}

// Validate validates the settings
func (s *AppSettings) Validate() error {
	validate := validator.New()
	return validate.Struct(s)
}

// ToJSON converts settings to JSON
func (s *AppSettings) ToJSON() ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return json.Marshal(s)
}

// GetSiteTitle returns the site title
func (s *AppSettings) GetSiteTitle() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.SiteTitle
}

// IsCheckoutEnabled returns whether new checkouts may be created
func (s *AppSettings) IsCheckoutEnabled() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.CheckoutEnabled
}

// GetAsaasWebhookToken returns the access token expected on Asaas webhooks
func (s *AppSettings) GetAsaasWebhookToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.AsaasWebhookToken
}

// GetAbacateWebhookSecret returns the shared secret expected on AbacatePay webhooks
func (s *AppSettings) GetAbacateWebhookSecret() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.AbacateWebhookSecret
}
