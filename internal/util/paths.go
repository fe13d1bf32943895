// Package util provides file system locations and small numeric helpers.
package util

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

// userDirsFile is the xdg-user-dirs file under the config home.
const userDirsFile = "user-dirs.dirs"

// Dirs resolves per-user locations. The zero value reads the process
// environment and home directory.
type Dirs struct {
	Getenv func(string) string
	Home   func() (string, error)
}

func (d Dirs) env(key string) string {
	get := d.Getenv
	if get == nil {
		get = os.Getenv
	}
	return strings.TrimSpace(get(key))
}

func (d Dirs) home() string {
	home := os.UserHomeDir
	if d.Home != nil {
		home = d.Home
	}
	h, err := home()
	if err != nil {
		return ""
	}
	return h
}

// Data is where the journal and the config file live.
func (d Dirs) Data(app string) string {
	if base := d.env("XDG_DATA_HOME"); base != "" {
		return filepath.Join(base, app)
	}
	if home := d.home(); home != "" {
		return filepath.Join(home, ".local", "share", app)
	}
	return filepath.Join(".", app)
}

// Documents follows XDG_DOCUMENTS_DIR, then user-dirs.dirs, then ~/Documents.
func (d Dirs) Documents() string {
	home := d.home()
	if dir := d.env("XDG_DOCUMENTS_DIR"); dir != "" {
		return expandHome(dir, home)
	}
	if home == "" {
		return "."
	}
	configHome := d.env("XDG_CONFIG_HOME")
	if configHome == "" {
		configHome = filepath.Join(home, ".config")
	}
	if dir := readUserDir(filepath.Join(configHome, userDirsFile), "XDG_DOCUMENTS_DIR", home); dir != "" {
		return dir
	}
	return filepath.Join(home, "Documents")
}

// Reports is where exported task sheets land.
func (d Dirs) Reports(app string) string {
	return filepath.Join(d.Documents(), strings.ToUpper(app))
}

// DataDir resolves Data against the running process.
func DataDir(app string) string { return Dirs{}.Data(app) }

// ReportsDir resolves Reports against the running process.
func ReportsDir(app string) string { return Dirs{}.Reports(app) }

// readUserDir looks key up in a shell-style user-dirs file. $HOME in the
// value expands to home.
func readUserDir(path, key, home string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return parseUserDir(string(data), key, home)
}

func parseUserDir(data, key, home string) string {
	// Seed HOME so the parser can expand it inside quoted values.
	vars, err := godotenv.Unmarshal("HOME='" + home + "'\n" + data)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(vars[key])
}

func expandHome(path, home string) string {
	return strings.ReplaceAll(path, "$HOME", home)
}
