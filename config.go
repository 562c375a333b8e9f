package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// --- CONFIGURATION ---

const defaultConfigPath = "./daily-dharma.yaml"

type Config struct {
	Store StoreConfig `yaml:"store"`
	Log   LogConfig   `yaml:"log"`
	Data  DataConfig  `yaml:"data"`
	Links LinksConfig `yaml:"links"`
	UI    UIConfig    `yaml:"ui"`
}

type StoreConfig struct {
	Path string `yaml:"path" env:"DHARMA_DB_PATH" env-default:"daily-dharma.db"`
}

type LogConfig struct {
	Path   string `yaml:"path"   env:"DHARMA_LOG_PATH"   env-default:"daily-dharma.log"`
	Level  string `yaml:"level"  env:"DHARMA_LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"DHARMA_LOG_FORMAT" env-default:"json"`
}

// DataConfig names the two JSON resources. Each is a file path or an http(s) URL.
type DataConfig struct {
	Content      string        `yaml:"content"       env:"DHARMA_CONTENT_SOURCE" env-default:"pali-data.json"`
	Suttas       string        `yaml:"suttas"        env:"DHARMA_SUTTA_SOURCE"   env-default:"sutra-data.json"`
	FetchTimeout time.Duration `yaml:"fetch_timeout" env:"DHARMA_FETCH_TIMEOUT"  env-default:"5s"`
}

// LinksConfig holds text/template strings for the outbound sutta links.
type LinksConfig struct {
	English    string `yaml:"english"     env:"DHARMA_LINK_ENGLISH"     env-default:"https://suttacentral.net/mn{{.ID}}/en/sujato"`
	Localized  string `yaml:"localized"   env:"DHARMA_LINK_LOCALIZED"   env-default:"https://www.budsas.org/uni/u-kinh-trungbo/trung{{.ID}}.htm"`
	AudioVideo string `yaml:"audio_video" env:"DHARMA_LINK_AUDIO_VIDEO" env-default:"https://www.youtube.com/watch?v={{.VideoID}}&list={{.PlaylistID}}&index={{.Index}}"`
	AudioFind  string `yaml:"audio_find"  env:"DHARMA_LINK_AUDIO_FIND"  env-default:"https://www.youtube.com/results?search_query=majjhima+nikaya+{{.ID}}+{{urlquery .ShortTitle}}"`
	PlaylistID string `yaml:"playlist_id" env:"DHARMA_PLAYLIST_ID"      env-default:"PL8DgjWmX16apWGx0MsW2gWFfyhJz_whyR"`
}

type TabConfig struct {
	Key   string `yaml:"key"`
	Label string `yaml:"label"`
}

type UIConfig struct {
	DefaultTab string      `yaml:"default_tab" env:"DHARMA_DEFAULT_TAB" env-default:"all"`
	Style      string      `yaml:"style"       env:"DHARMA_STYLE"       env-default:"auto"`
	Tabs       []TabConfig `yaml:"tabs"`
}

var defaultTabs = []TabConfig{
	{Key: FilterAll, Label: "Everything"},
	{Key: string(KindPali), Label: "Pāli"},
	{Key: string(KindTeaching), Label: "Teachings"},
	{Key: string(KindSutta), Label: "Suttas"},
}

// LoadConfig reads YAML from path (or CONFIG_PATH, or ./daily-dharma.yaml
// when it exists) and applies environment overrides and defaults.
func LoadConfig(path string) (*Config, error) {
	var cfg Config

	explicitPath := path != ""
	if !explicitPath {
		path = os.Getenv("CONFIG_PATH")
		explicitPath = path != ""
	}
	if !explicitPath {
		path = defaultConfigPath
	}

	if _, err := os.Stat(path); err == nil {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	} else if explicitPath {
		return nil, fmt.Errorf("config: file %s: %w", path, err)
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config: read env: %w", err)
	}

	if len(cfg.UI.Tabs) == 0 {
		cfg.UI.Tabs = append([]TabConfig(nil), defaultTabs...)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	var errs []error
	if c.Store.Path == "" {
		errs = append(errs, errors.New("store.path is required"))
	}
	if c.Data.FetchTimeout <= 0 {
		errs = append(errs, errors.New("data.fetch_timeout must be positive"))
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		errs = append(errs, fmt.Errorf("log.format must be json or console, got %q", c.Log.Format))
	}
	// Render both audio variants once so bad field names fail at startup.
	if b, err := NewLinkBuilder(c.Links, map[int]AudioRef{1: {VideoID: "probe", Index: 1}}); err != nil {
		errs = append(errs, err)
	} else {
		for _, id := range []int{1, 2} {
			if _, err := b.Enrich(SuttaRecord{ID: id, Title: "Probe"}); err != nil {
				errs = append(errs, err)
			}
		}
	}

	seen := make(map[string]bool)
	for _, t := range c.UI.Tabs {
		if t.Key == "" {
			errs = append(errs, errors.New("ui.tabs: key is required"))
			continue
		}
		if seen[t.Key] {
			errs = append(errs, fmt.Errorf("ui.tabs: duplicate key %q", t.Key))
		}
		seen[t.Key] = true
	}
	if !seen[c.UI.DefaultTab] {
		errs = append(errs, fmt.Errorf("ui.default_tab %q is not in ui.tabs", c.UI.DefaultTab))
	}
	return errors.Join(errs...)
}
