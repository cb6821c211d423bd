package domain

import (
	"context"
	"strconv"
	"strings"

	"github.com/creasty/defaults"
)

// Setting key suffixes appended to the tenant credential
const (
	SettingStatus               = ""
	SettingDisplayStyle         = "_displayStyle"
	SettingReviewLimit          = "_reviewLimit"
	SettingReviewDisplayHeading = "_reviewDisplayHeading"
	SettingReviewFormHeading    = "_reviewFormHeading"
)

// SettingSuffixes lists every key suffix a tenant owns, in storage order
var SettingSuffixes = []string{
	SettingStatus,
	SettingDisplayStyle,
	SettingReviewLimit,
	SettingReviewDisplayHeading,
	SettingReviewFormHeading,
}

// SettingKeys returns the full storage keys of a credential
func SettingKeys(credential string) []string {
	keys := make([]string, 0, len(SettingSuffixes))
	for _, suffix := range SettingSuffixes {
		keys = append(keys, SettingKey(credential, suffix))
	}
	return keys
}

const (
	SettingsEnabled  = "enabled"
	SettingsDisabled = "disabled"

	defaultReviewLimit = 5
)

// Settings is the per-tenant display configuration
type Settings struct {
	Status               string `json:"status" default:"enabled" validate:"required,max=32"`
	DisplayStyle         string `json:"displayStyle" default:"grid" validate:"required,max=32"`
	ReviewLimit          string `json:"reviewLimit" default:"5" validate:"required,numeric"`
	ReviewDisplayHeading string `json:"reviewDisplayHeading" default:"Customer Reviews" validate:"required,max=255"`
	ReviewFormHeading    string `json:"reviewFormHeading" default:"Submit Your Reviews" validate:"required,max=255"`
}

// DefaultSettings returns the set written when an account is created
func DefaultSettings() Settings {
	var s Settings
	s.ApplyDefaults()
	return s
}

// ApplyDefaults fills every empty field with its default
func (s *Settings) ApplyDefaults() {
	// defaults.Set only fails on non-pointer input
	_ = defaults.Set(s)
}

// Enabled is the storefront kill switch
func (s Settings) Enabled() bool {
	return strings.EqualFold(strings.TrimSpace(s.Status), SettingsEnabled)
}

// Limit parses ReviewLimit, falling back to 5 when it is absent or not positive
func (s Settings) Limit() int {
	n, err := strconv.Atoi(strings.TrimSpace(s.ReviewLimit))
	if err != nil || n <= 0 {
		return defaultReviewLimit
	}
	return n
}

// Entries maps each key suffix to its value
func (s Settings) Entries() map[string]string {
	return map[string]string{
		SettingStatus:               s.Status,
		SettingDisplayStyle:         s.DisplayStyle,
		SettingReviewLimit:          s.ReviewLimit,
		SettingReviewDisplayHeading: s.ReviewDisplayHeading,
		SettingReviewFormHeading:    s.ReviewFormHeading,
	}
}

// Set assigns the value of one key suffix; unknown suffixes are ignored
func (s *Settings) Set(suffix, value string) {
	switch suffix {
	case SettingStatus:
		s.Status = value
	case SettingDisplayStyle:
		s.DisplayStyle = value
	case SettingReviewLimit:
		s.ReviewLimit = value
	case SettingReviewDisplayHeading:
		s.ReviewDisplayHeading = value
	case SettingReviewFormHeading:
		s.ReviewFormHeading = value
	}
}

// SettingKey builds the storage key for a credential and suffix
func SettingKey(credential, suffix string) string {
	return credential + suffix
}

// SettingsRepository defines the interface for tenant settings data access
type SettingsRepository interface {
	// Get returns the raw value of one key and whether it exists
	Get(ctx context.Context, credential, suffix string) (string, bool, error)

	// GetAll returns the tenant's settings with defaults for absent keys
	GetAll(ctx context.Context, credential string) (Settings, error)

	// UpsertAll writes all five keys atomically
	UpsertAll(ctx context.Context, credential string, settings Settings) error
}
