package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClamp(t *testing.T) {
	assert.Equal(t, 2, Clamp(1, 2, 5))
	assert.Equal(t, 5, Clamp(9, 2, 5))
	assert.Equal(t, 3, Clamp(3, 2, 5))
	assert.Equal(t, 0.5, Clamp(0.5, 0.0, 1.0))
}

func TestGetPackageName(t *testing.T) {
	assert.Equal(t, "util", GetPackageName())
}

func TestNormalizeFlagName(t *testing.T) {
	assert.Equal(t, "--bundle", normalizeFlagName("bundle"))
	assert.Equal(t, "--bundle", normalizeFlagName("-bundle"))
	assert.Equal(t, "--bundle", normalizeFlagName(" --bundle "))
}

func TestMissingFlags(t *testing.T) {
	defer func() { RequiredFlags = map[*string]string{} }()

	bundle, sender, recipient := "", "treasurer@example.org", "  "
	RequiredFlag(&bundle, "bundle")
	RequiredFlag(&sender, "-sender")
	RequiredFlag(&recipient, "--recipient")

	assert.Equal(t, []string{"--bundle", "--recipient"}, MissingFlags())

	bundle = "bundle.json"
	recipient = "board@example.org"
	assert.Empty(t, MissingFlags())
}
