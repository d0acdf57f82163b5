package color

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPalette(t *testing.T) {
	plain := NewPalette(false)
	assert.Equal(t, "ok", plain.OK.Sprint("ok"))

	colored := NewPalette(true)
	assert.Contains(t, colored.OK.Sprint("ok"), "\x1b[32mok")
	// Enabling one palette leaves the other untouched.
	assert.Equal(t, "ok", plain.OK.Sprint("ok"))
}

func TestSupported(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "out")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	t.Setenv("NO_COLOR", "")
	t.Setenv("FORCE_COLOR", "")
	assert.False(t, Supported(f))

	t.Setenv("FORCE_COLOR", "1")
	assert.True(t, Supported(f))

	t.Setenv("NO_COLOR", "1")
	assert.False(t, Supported(f))
}
