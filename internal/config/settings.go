package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/akyairhashvil/stoplicht/internal/util"
	"github.com/fsnotify/fsnotify"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Annotation kinds accepted in task slot settings.
const (
	AnnotationNone  = "none"
	AnnotationText  = "text"
	AnnotationPages = "pages"
)

// Settings is the runtime configuration of the widget.
type Settings struct {
	Timer   TimerSettings   `mapstructure:"timer"`
	Assets  AssetSettings   `mapstructure:"assets"`
	Tasks   []SlotSettings  `mapstructure:"tasks"`
	Board   BoardSettings   `mapstructure:"board"`
	Log     LogSettings     `mapstructure:"log"`
	Journal JournalSettings `mapstructure:"journal"`
	Chime   ChimeSettings   `mapstructure:"chime"`
	UI      UISettings      `mapstructure:"ui"`
}

type TimerSettings struct {
	// MaxMinutes caps the minutes input; 0 disables the cap.
	MaxMinutes     int           `mapstructure:"max_minutes"`
	DefaultMinutes int           `mapstructure:"default_minutes"`
	IdleMessage    string        `mapstructure:"idle_message"`
	WorkingMessage string        `mapstructure:"working_message"`
	InvalidMessage string        `mapstructure:"invalid_message"`
	GracePeriod    time.Duration `mapstructure:"grace_period"`
}

type AssetSettings struct {
	// BaseURL is the location of the hosting script; assets resolve next to it.
	BaseURL string `mapstructure:"base_url"`
	// Dir is the local directory holding the asset folders.
	Dir string `mapstructure:"dir"`
}

type SlotSettings struct {
	Folder     string   `mapstructure:"folder"`
	Label      string   `mapstructure:"label"`
	Annotation string   `mapstructure:"annotation"`
	Files      []string `mapstructure:"files"`
}

type BoardSettings struct {
	Addr string `mapstructure:"addr"`
}

type LogSettings struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

type JournalSettings struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

type ChimeSettings struct {
	Enabled bool `mapstructure:"enabled"`
}

type UISettings struct {
	Theme string `mapstructure:"theme"`
}

// DefaultTasks mirrors the classroom deployment: workbooks, readers and two extras.
func DefaultTasks() []SlotSettings {
	return []SlotSettings{
		{
			Folder:     "werkboeken",
			Label:      "Werkboekje",
			Annotation: AnnotationText,
			Files: []string{
				"Werkboekje 1.jpg", "Werkboekje 2.jpg", "Werkboekje 3.jpg",
				"Werkboekje 4.jpg", "Werkboekje 5.jpg", "Werkboekje 6.jpg",
				"Werkboekje 7.jpg", "Werkboekje 8.jpg", "Werkboekje 9.jpg",
			},
		},
		{
			Folder:     "leesboeken",
			Label:      "Leesboek",
			Annotation: AnnotationPages,
			Files: []string{
				"Leesboekje 1.jpg", "Leesboekje 2.jpg", "Leesboekje 3.jpg",
				"Leesboekje 4.jpg", "Leesboekje 5.jpg", "Leesboekje 6.jpg",
				"Leesboekje 7.jpg", "Leesboekje 8.jpg", "Leesboekje 9.jpg",
			},
		},
		{Folder: "taak3", Label: "Taak 3", Annotation: AnnotationText, Files: []string{"Splitsen tot 6.png"}},
		{Folder: "extra", Label: "Extra", Annotation: AnnotationText, Files: []string{"Kleurpotloden.png"}},
	}
}

func setDefaults(v *viper.Viper) {
	dataDir := util.DataDir(AppName)
	v.SetDefault("timer.max_minutes", DefaultMaxMinutes)
	v.SetDefault("timer.default_minutes", DefaultMinutes)
	v.SetDefault("timer.idle_message", DefaultIdleMessage)
	v.SetDefault("timer.working_message", DefaultWorkingMessage)
	v.SetDefault("timer.invalid_message", InvalidMinutesMessage)
	v.SetDefault("timer.grace_period", GracePeriod)
	v.SetDefault("assets.base_url", "")
	v.SetDefault("assets.dir", ".")
	v.SetDefault("board.addr", DefaultBoardAddr)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", filepath.Join(dataDir, LogFileName))
	v.SetDefault("journal.enabled", true)
	v.SetDefault("journal.path", filepath.Join(dataDir, DBFileName))
	v.SetDefault("chime.enabled", true)
	v.SetDefault("ui.theme", "default")

	tasks := make([]map[string]any, 0, len(DefaultTasks()))
	for _, t := range DefaultTasks() {
		tasks = append(tasks, map[string]any{
			"folder":     t.Folder,
			"label":      t.Label,
			"annotation": t.Annotation,
			"files":      t.Files,
		})
	}
	v.SetDefault("tasks", tasks)
}

// Loader reads Settings from file, environment and defaults.
type Loader struct {
	v *viper.Viper
}

// NewLoader prepares a loader. An empty path searches the working
// directory and the data directory for stoplicht.yaml.
func NewLoader(path string) *Loader {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(ConfigName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath(util.DataDir(AppName))
	}
	return &Loader{v: v}
}

// Load reads the configuration. A missing file in the search path is not an error.
func (l *Loader) Load() (Settings, error) {
	if err := l.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Settings{}, fmt.Errorf("read config: %w", err)
		}
	}
	return l.decode()
}

func (l *Loader) decode() (Settings, error) {
	var s Settings
	if err := l.v.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("decode config: %w", err)
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// File returns the config file in use, or "" when running on defaults.
func (l *Loader) File() string {
	return l.v.ConfigFileUsed()
}

// Watch re-reads the settings whenever the config file changes.
func (l *Loader) Watch(fn func(Settings, error)) {
	if l.v.ConfigFileUsed() == "" {
		return
	}
	l.v.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		fn(l.decode())
	})
	l.v.WatchConfig()
}

// Load is a shortcut for NewLoader(path).Load().
func Load(path string) (Settings, error) {
	return NewLoader(path).Load()
}

// LoadDotEnv loads .env style files into the process environment. Missing files are skipped.
func LoadDotEnv(paths ...string) error {
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load %s: %w", p, err)
		}
	}
	return nil
}

// Validate checks the settings for values the widget cannot work with.
func (s Settings) Validate() error {
	if s.Timer.MaxMinutes < 0 {
		return fmt.Errorf("timer.max_minutes must be >= 0, got %d", s.Timer.MaxMinutes)
	}
	if s.Timer.GracePeriod <= 0 {
		return fmt.Errorf("timer.grace_period must be positive")
	}
	if len(s.Tasks) > MaxTaskSlots {
		return fmt.Errorf("at most %d task slots are supported, got %d", MaxTaskSlots, len(s.Tasks))
	}
	for i, t := range s.Tasks {
		switch t.Annotation {
		case "", AnnotationNone, AnnotationText, AnnotationPages:
		default:
			return fmt.Errorf("tasks[%d]: unknown annotation %q", i, t.Annotation)
		}
		if t.Folder == "" {
			return fmt.Errorf("tasks[%d]: folder is required", i)
		}
	}
	return nil
}
