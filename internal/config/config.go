package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/andybalholm/cascadia"
	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

// DefaultTitle is used when the page has no job title element.
const DefaultTitle = "フルキャストのお仕事"

// Selectors are the CSS selectors for each located field.
// These WILL break when the host page changes its markup.
type Selectors struct {
	// Value cell of the labeled "work period" row.
	WorkPeriod string `toml:"work_period"`
	// Value cell of the labeled "work time" row.
	WorkTime string `toml:"work_time"`
	// Candidate rows for the label-scan fallback.
	DetailRow string `toml:"detail_row"`
	JobTitle  string `toml:"job_title"`
	MapLink   string `toml:"map_link"`
	// Header cells of the detail table (belongings, clothing).
	HeaderCell string `toml:"header_cell"`
	// Element the calendar button is prepended to.
	Container string `toml:"container"`
}

// Labels are the Japanese labels matched by the label scans.
type Labels struct {
	WorkPeriod string `toml:"work_period"`
	WorkTime   string `toml:"work_time"`
	Belongings string `toml:"belongings"`
	Clothing   string `toml:"clothing"`
}

// StyleRule is one inline CSS declaration of the calendar button.
type StyleRule struct {
	Property string `toml:"property"`
	Value    string `toml:"value"`
}

// Button describes the injected calendar link.
type Button struct {
	Text  string      `toml:"text"`
	Style []StyleRule `toml:"style"`
}

// CSS renders the style rules as an inline style attribute value.
func (b Button) CSS() string {
	parts := make([]string, 0, len(b.Style))
	for _, rule := range b.Style {
		parts = append(parts, rule.Property+": "+rule.Value)
	}
	return strings.Join(parts, "; ")
}

// Value returns the value of a style property, or "" when unset.
func (b Button) Value(property string) string {
	for _, rule := range b.Style {
		if rule.Property == property {
			return rule.Value
		}
	}
	return ""
}

// Config groups everything the pipeline reads about the host page.
type Config struct {
	Selectors    Selectors `toml:"selectors"`
	Labels       Labels    `toml:"labels"`
	DefaultTitle string    `toml:"default_title"`
	Button       Button    `toml:"button"`
}

// Default returns the built-in configuration for the Fullcast job detail page.
func Default() *Config {
	return &Config{
		Selectors: Selectors{
			WorkPeriod: ".job-detail-row:has(.job-detail-term) div:not(.job-detail-term)",
			WorkTime:   ".job-detail-row:has(.job-detail-time) div:not(.job-detail-time)",
			DetailRow:  ".job-detail-row",
			JobTitle:   ".job-title.mt-2",
			MapLink:    ".job-traffic-info-box a.map",
			HeaderCell: "th",
			Container:  ".recruit-detail-box",
		},
		Labels: Labels{
			WorkPeriod: "勤務期間",
			WorkTime:   "勤務時間",
			Belongings: "持ち物",
			Clothing:   "服装",
		},
		DefaultTitle: DefaultTitle,
		Button: Button{
			Text: "Googleカレンダーに登録",
			Style: []StyleRule{
				{"display", "block"},
				{"width", "250px"},
				{"margin", "20px auto"},
				{"padding", "10px"},
				{"text-align", "center"},
				{"color", "#fff"},
				{"background-color", "#4285F4"},
				{"border-radius", "5px"},
				{"text-decoration", "none"},
				{"font-weight", "bold"},
			},
		},
	}
}

// Load returns the defaults overlaid with the TOML file at path.
// Keys absent from the file keep their default values. An empty path
// returns the defaults unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if strings.TrimSpace(cfg.DefaultTitle) == "" {
		cfg.DefaultTitle = DefaultTitle
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that every selector compiles.
func (c *Config) Validate() error {
	selectors := []struct {
		name  string
		value string
	}{
		{"work_period", c.Selectors.WorkPeriod},
		{"work_time", c.Selectors.WorkTime},
		{"detail_row", c.Selectors.DetailRow},
		{"job_title", c.Selectors.JobTitle},
		{"map_link", c.Selectors.MapLink},
		{"header_cell", c.Selectors.HeaderCell},
		{"container", c.Selectors.Container},
	}

	var errs []error
	for _, s := range selectors {
		if _, err := cascadia.Compile(s.value); err != nil {
			errs = append(errs, fmt.Errorf("selector %s %q: %w", s.name, s.value, err))
		}
	}
	return errors.Join(errs...)
}

// Telegram holds the bot credentials for the Telegram presenter.
type Telegram struct {
	BotToken string
	ChatID   string
}

// Configured reports whether both credentials are set.
func (t Telegram) Configured() bool {
	return t.BotToken != "" && t.ChatID != ""
}

// LoadEnv loads variables from the given .env files (default ".env") into the
// process environment, then reads the Telegram credentials. Missing files are
// not an error; variables already set in the environment win.
func LoadEnv(files ...string) (Telegram, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Telegram{}, fmt.Errorf("loading %s: %w", f, err)
		}
	}

	return Telegram{
		BotToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
		ChatID:   os.Getenv("TELEGRAM_CHAT_ID"),
	}, nil
}
