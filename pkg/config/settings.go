package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	errs "github.com/pepaslabs/phosphor-uikit/pkg/errors"
)

// Defaults applied when neither the settings file nor flags override them.
const (
	// DefaultBaseURL is the Phosphor core raw-content tree. Icons live at
	// <base>/<style>/<name>.svg.
	DefaultBaseURL = "https://raw.githubusercontent.com/phosphor-icons/core/main/assets"

	// DefaultRenderer is the rasterizer backend used when none is configured.
	DefaultRenderer = "rsvg"
)

// Settings holds user-level configuration loaded from
// ~/.config/phosphor-uikit/config.toml. All fields are optional; zero values
// fall back to defaults. Command-line flags override settings.
type Settings struct {
	BaseURL  string `toml:"base_url"`  // icon source URL template base
	CacheDir string `toml:"cache_dir"` // icon cache root override
	Renderer string `toml:"renderer"`  // rasterizer backend: rsvg, inkscape, native
}

// DefaultSettingsPath returns the settings file location under the user's
// config directory.
func DefaultSettingsPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "phosphor-uikit", "config.toml"), nil
}

// LoadSettings reads settings from path. A missing file is not an error;
// defaults are returned. A present but malformed file is a config error.
func LoadSettings(path string) (*Settings, error) {
	s := &Settings{BaseURL: DefaultBaseURL, Renderer: DefaultRenderer}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeConfig, err, "%s: unable to read settings", path)
	}
	if err := toml.Unmarshal(data, s); err != nil {
		return nil, errs.Wrap(errs.ErrCodeConfig, err, "%s: malformed settings", path)
	}
	if s.BaseURL == "" {
		s.BaseURL = DefaultBaseURL
	}
	if s.Renderer == "" {
		s.Renderer = DefaultRenderer
	}
	return s, nil
}
