package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()

	assert.Equal(t, "enabled", s.Status)
	assert.Equal(t, "grid", s.DisplayStyle)
	assert.Equal(t, "5", s.ReviewLimit)
	assert.Equal(t, "Customer Reviews", s.ReviewDisplayHeading)
	assert.Equal(t, "Submit Your Reviews", s.ReviewFormHeading)
}

func TestSettings_ApplyDefaultsKeepsStoredValues(t *testing.T) {
	s := Settings{Status: "disabled", ReviewLimit: "2"}
	s.ApplyDefaults()

	assert.Equal(t, "disabled", s.Status)
	assert.Equal(t, "2", s.ReviewLimit)
	assert.Equal(t, "grid", s.DisplayStyle)
}

func TestSettings_Enabled(t *testing.T) {
	assert.True(t, Settings{Status: "Enabled"}.Enabled())
	assert.False(t, Settings{Status: "DISABLED"}.Enabled())
	assert.False(t, Settings{}.Enabled())
}

func TestSettings_Limit(t *testing.T) {
	assert.Equal(t, 2, Settings{ReviewLimit: "2"}.Limit())
	assert.Equal(t, 5, Settings{ReviewLimit: "abc"}.Limit())
	assert.Equal(t, 5, Settings{ReviewLimit: "0"}.Limit())
}

func TestSettings_SetAndEntries(t *testing.T) {
	var s Settings
	for suffix, value := range DefaultSettings().Entries() {
		s.Set(suffix, value)
	}
	assert.Equal(t, DefaultSettings(), s)
	assert.Equal(t, "abc_reviewLimit", SettingKey("abc", SettingReviewLimit))
}
