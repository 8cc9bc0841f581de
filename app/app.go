// Package app loads the optional uspec.yml configuration consumed by the
// CLI: default random seed, sample counts and output settings. Loading is
// memoized process-wide; the returned viper instance is read-only by
// convention.
package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/viper"
)

const cfgName = "uspec"

var (
	cfg  *viper.Viper
	once sync.Once
)

// Config loads uspec.yml from the working directory or its config/ subdir,
// falling back to the module root when running inside the repository. A
// missing file yields an empty (not nil) configuration; only a malformed
// file is an error.
func Config() mo.Result[*viper.Viper] {
	once.Do(func() {
		cfg, _ = load()
	})
	return lo.If(cfg == nil, mo.Err[*viper.Viper](fmt.Errorf("can not load %s.yml", cfgName))).Else(mo.Ok(cfg))
}

func load() (*viper.Viper, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigName(cfgName)
	addSearchPaths(v)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return v, nil
		}
		return nil, fmt.Errorf("read %s.yml: %w", cfgName, err)
	}
	return v, nil
}

// addSearchPaths registers the CWD, its config/ subdir and the nearest
// ancestor containing a go.mod. Viper resolves relative paths against the
// CWD, which varies between IDE runs, `go test` and shipped binaries; the
// module-root path keeps dev-time lookup stable.
func addSearchPaths(v *viper.Viper) {
	cwd, err := os.Getwd()
	if err != nil {
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		return
	}
	if root, ok := findModuleRoot(cwd); ok {
		v.AddConfigPath(root)
		v.AddConfigPath(filepath.Join(root, "config"))
	}
	v.AddConfigPath(cwd)
	v.AddConfigPath(filepath.Join(cwd, "config"))
}

// findModuleRoot walks upward from start until it finds a directory holding
// a go.mod.
func findModuleRoot(start string) (string, bool) {
	dir := start
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}
