package loader

import (
	"errors"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

type stubFeature struct {
	name    string
	enabled bool
	loadErr error
	loaded  bool
}

func (f *stubFeature) Name() string    { return f.name }
func (f *stubFeature) IsEnabled() bool { return f.enabled }
func (f *stubFeature) Load(app fiber.Router) error {
	f.loaded = true
	return f.loadErr
}

func TestLoadAll(t *testing.T) {
	app := fiber.New()

	t.Run("Skips Disabled", func(t *testing.T) {
		mgr := NewManager()
		on := &stubFeature{name: "on", enabled: true}
		off := &stubFeature{name: "off", enabled: false}
		mgr.Register(on)
		mgr.Register(off)

		assert.NoError(t, mgr.LoadAll(app))
		assert.True(t, on.loaded)
		assert.False(t, off.loaded)
	})

	t.Run("Propagates Load Error", func(t *testing.T) {
		mgr := NewManager()
		mgr.Register(&stubFeature{name: "broken", enabled: true, loadErr: errors.New("boom")})

		err := mgr.LoadAll(app)
		assert.ErrorContains(t, err, "broken")
	})
}
