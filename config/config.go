package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"

	"lab-reservations/schedule"
)

// Config holds all configuration values. It is loaded once at startup and
// passed by reference; nothing reads viper after Load returns.
type Config struct {
	Port        string        `mapstructure:"PORT"`
	Env         string        `mapstructure:"ENV"`
	Timezone    string        `mapstructure:"FACILITY_TIMEZONE"`
	CallTimeout time.Duration `mapstructure:"GATEWAY_CALL_TIMEOUT"`

	// Google service account shared by the calendar and sheets clients.
	CredentialsFile string `mapstructure:"GOOGLE_CREDENTIALS_FILE"`
	CalendarID      string `mapstructure:"CALENDAR_ID"`

	// Ledger backend: "sheets" or "postgres".
	LedgerBackend string `mapstructure:"LEDGER_BACKEND"`
	SpreadsheetID string `mapstructure:"SPREADSHEET_ID"`
	SheetName     string `mapstructure:"SHEET_NAME"`
	PostgresDSN   string `mapstructure:"POSTGRES_DSN"`

	// Document storage. Uploads are disabled when the cloud name is empty.
	CloudinaryCloudName string `mapstructure:"CLOUDINARY_CLOUD_NAME"`
	CloudinaryAPIKey    string `mapstructure:"CLOUDINARY_API_KEY"`
	CloudinaryAPISecret string `mapstructure:"CLOUDINARY_API_SECRET"`
	CloudinaryFolder    string `mapstructure:"CLOUDINARY_FOLDER"`

	// Slot catalog. Fixed mode reads the block start list; interval mode
	// reads the day window and step.
	CatalogMode         string   `mapstructure:"CATALOG_MODE"`
	CatalogBlockStarts  []string `mapstructure:"CATALOG_BLOCK_STARTS"`
	CatalogBlockMinutes int      `mapstructure:"CATALOG_BLOCK_MINUTES"`
	CatalogDayStart     string   `mapstructure:"CATALOG_DAY_START"`
	CatalogDayEnd       string   `mapstructure:"CATALOG_DAY_END"`
	CatalogStepMinutes  int      `mapstructure:"CATALOG_STEP_MINUTES"`
}

func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AutomaticEnv()

	// AutomaticEnv alone does not surface env-only keys to Unmarshal;
	// keys without a default need an explicit binding.
	for _, key := range []string{
		"GOOGLE_CREDENTIALS_FILE",
		"CALENDAR_ID",
		"SPREADSHEET_ID",
		"POSTGRES_DSN",
		"CLOUDINARY_CLOUD_NAME",
		"CLOUDINARY_API_KEY",
		"CLOUDINARY_API_SECRET",
	} {
		if err := viper.BindEnv(key); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", key, err)
		}
	}

	viper.SetDefault("PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("FACILITY_TIMEZONE", "America/Santiago")
	viper.SetDefault("GATEWAY_CALL_TIMEOUT", "10s")
	viper.SetDefault("LEDGER_BACKEND", "sheets")
	viper.SetDefault("SHEET_NAME", "C-LAB RESERVA")
	viper.SetDefault("CLOUDINARY_FOLDER", "reservations")
	viper.SetDefault("CATALOG_MODE", "fixed")
	viper.SetDefault("CATALOG_BLOCK_STARTS", []string{
		"08:30", "09:40", "10:50", "12:00", "14:10", "15:20", "16:30", "17:40",
	})
	viper.SetDefault("CATALOG_BLOCK_MINUTES", 60)
	viper.SetDefault("CATALOG_DAY_START", "09:00")
	viper.SetDefault("CATALOG_DAY_END", "18:00")
	viper.SetDefault("CATALOG_STEP_MINUTES", 60)

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}

// Location resolves the facility timezone.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// BuildCatalog turns the textual catalog settings into a validated Catalog.
// Clock strings parse strictly; a malformed value fails startup.
func (c *Config) BuildCatalog(loc *time.Location) (*schedule.Catalog, error) {
	var cat *schedule.Catalog

	switch schedule.Mode(c.CatalogMode) {
	case schedule.ModeFixed:
		blocks := make([]schedule.FixedBlock, 0, len(c.CatalogBlockStarts))
		for _, s := range c.CatalogBlockStarts {
			off, err := parseClock(s)
			if err != nil {
				return nil, fmt.Errorf("%w: block start %q: %v", schedule.ErrInvalidCatalogConfig, s, err)
			}
			blocks = append(blocks, schedule.FixedBlock{
				Offset:   off,
				Duration: time.Duration(c.CatalogBlockMinutes) * time.Minute,
			})
		}
		cat = &schedule.Catalog{Mode: schedule.ModeFixed, Loc: loc, Blocks: blocks}
	case schedule.ModeInterval:
		dayStart, err := parseClock(c.CatalogDayStart)
		if err != nil {
			return nil, fmt.Errorf("%w: day start %q: %v", schedule.ErrInvalidCatalogConfig, c.CatalogDayStart, err)
		}
		dayEnd, err := parseClock(c.CatalogDayEnd)
		if err != nil {
			return nil, fmt.Errorf("%w: day end %q: %v", schedule.ErrInvalidCatalogConfig, c.CatalogDayEnd, err)
		}
		cat = &schedule.Catalog{
			Mode:     schedule.ModeInterval,
			Loc:      loc,
			DayStart: dayStart,
			DayEnd:   dayEnd,
			Step:     time.Duration(c.CatalogStepMinutes) * time.Minute,
			Duration: time.Duration(c.CatalogBlockMinutes) * time.Minute,
		}
	default:
		return nil, fmt.Errorf("%w: unknown mode %q", schedule.ErrInvalidCatalogConfig, c.CatalogMode)
	}

	if err := cat.Validate(); err != nil {
		return nil, err
	}
	return cat, nil
}

func parseClock(s string) (time.Duration, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, err
	}
	return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute, nil
}
