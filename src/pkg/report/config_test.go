package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInitializeConfig(t *testing.T) {
	assert.Equal(t, DefaultValueConfig(), InitializeConfig(nil))

	cfg := InitializeConfig(&Config{Title: "Laporan Lengkap", GridColumns: 9, GridRows: -1})
	assert.Equal(t, "Laporan Lengkap", cfg.Title)
	assert.Equal(t, "Halal Bi Halal", cfg.EventName)
	assert.Equal(t, 4, cfg.GridColumns)
	assert.Equal(t, 1, cfg.GridRows)
	assert.Equal(t, 48, cfg.DescriptionBudget)
}
