package puffy

import (
	"errors"
	"fmt"
	"io/fs"
	"log"

	"github.com/BurntSushi/toml"
)

// LoadRunConfig reads a TOML window config named name from fsys on top of
// def: keys the file leaves out keep def's values. A missing file is not an
// error and returns def unchanged. Unknown keys are logged and ignored.
//
//	title = "Puffy"
//	width = 1280
//	height = 720
//	show_fps = true
func LoadRunConfig(fsys fs.FS, name string, def RunConfig) (RunConfig, error) {
	data, err := fs.ReadFile(fsys, name)
	if errors.Is(err, fs.ErrNotExist) {
		return def, nil
	}
	if err != nil {
		return def, fmt.Errorf("puffy: read config %s: %w", name, err)
	}

	cfg := def
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return def, fmt.Errorf("puffy: parse config %s: %w", name, err)
	}
	for _, key := range md.Undecoded() {
		log.Printf("puffy: config %s: unknown key %q", name, key.String())
	}
	if cfg.Width < 0 || cfg.Height < 0 {
		return def, fmt.Errorf("puffy: config %s: negative window size %dx%d", name, cfg.Width, cfg.Height)
	}
	return cfg, nil
}
