package wm

import (
	"fmt"

	"github.com/clogwench/wincore/imgio"
	"github.com/clogwench/wincore/platform"
)

// captureToPNG asks the backend for its current composite and writes it
// to path as a PNG, for Debug(ScreenCapture) responses.
func (m *Manager) captureToPNG(path string) (string, error) {
	composer, ok := m.backend.(platform.Composer)
	if !ok {
		return "", fmt.Errorf("wm: backend %T does not support screen capture", m.backend)
	}
	if err := imgio.SavePNGFile(path, composer.Composite()); err != nil {
		return "", err
	}
	return path, nil
}
