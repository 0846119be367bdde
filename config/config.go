package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/ionut-t/vkeyboard/core"
)

// Duration decodes TOML strings such as "200ms".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

type Font struct {
	Face string  `toml:"face"`
	Size float64 `toml:"size"`
	DPI  float64 `toml:"dpi"`
	Tab  string  `toml:"tab"`
}

// Layout is the pixel geometry of the text surface.
type Layout struct {
	Width       float64 `toml:"width"`
	Height      float64 `toml:"height"`
	LineHeight  float64 `toml:"line_height"`
	PaddingTop  float64 `toml:"padding_top"`
	PaddingLeft float64 `toml:"padding_left"`
}

func (l Layout) Geometry() core.Geometry {
	return core.Geometry{
		Width:       l.Width,
		Height:      l.Height,
		LineHeight:  l.LineHeight,
		PaddingTop:  l.PaddingTop,
		PaddingLeft: l.PaddingLeft,
	}
}

type Keyboard struct {
	Language     string   `toml:"language"`
	RepeatDelay  Duration `toml:"repeat_delay"`
	RepeatPeriod Duration `toml:"repeat_period"`
	Visible      bool     `toml:"visible"`
}

type Editor struct {
	Syntax string `toml:"syntax"`
	Theme  string `toml:"theme"`
}

type Log struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
	File   string `toml:"file"`
}

type Config struct {
	Font     Font     `toml:"font"`
	Layout   Layout   `toml:"layout"`
	Keyboard Keyboard `toml:"keyboard"`
	Editor   Editor   `toml:"editor"`
	Log      Log      `toml:"log"`
}

func Default() Config {
	return Config{
		Font: Font{
			Face: "goregular",
			Size: 16,
			DPI:  72,
			Tab:  core.DefaultTab,
		},
		Layout: Layout{
			Width:       600,
			Height:      200,
			LineHeight:  20,
			PaddingTop:  8,
			PaddingLeft: 8,
		},
		Keyboard: Keyboard{
			Language:     "en",
			RepeatDelay:  Duration{200 * time.Millisecond},
			RepeatPeriod: Duration{40 * time.Millisecond},
			Visible:      true,
		},
		Editor: Editor{
			Theme: "dracula",
		},
		Log: Log{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads the file at path over the defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	if err := checkUndecoded(md); err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}

	return cfg, cfg.Validate()
}

// Parse decodes TOML text over the defaults.
func Parse(data string) (Config, error) {
	cfg := Default()

	md, err := toml.Decode(data, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := checkUndecoded(md); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	return cfg, cfg.Validate()
}

func checkUndecoded(md toml.MetaData) error {
	undecoded := md.Undecoded()
	if len(undecoded) == 0 {
		return nil
	}

	keys := make([]string, len(undecoded))
	for i, k := range undecoded {
		keys[i] = k.String()
	}
	return fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
}

func (c Config) Validate() error {
	var errs []error

	if c.Font.Size <= 0 {
		errs = append(errs, fmt.Errorf("font.size must be positive, got %g", c.Font.Size))
	}
	if c.Font.DPI <= 0 {
		errs = append(errs, fmt.Errorf("font.dpi must be positive, got %g", c.Font.DPI))
	}
	if c.Layout.Width <= 0 {
		errs = append(errs, fmt.Errorf("layout.width must be positive, got %g", c.Layout.Width))
	}
	if c.Layout.LineHeight <= 0 {
		errs = append(errs, fmt.Errorf("layout.line_height must be positive, got %g", c.Layout.LineHeight))
	}
	if c.Layout.PaddingTop < 0 || c.Layout.PaddingLeft < 0 {
		errs = append(errs, errors.New("layout padding must not be negative"))
	}
	if c.Keyboard.RepeatDelay.Duration <= 0 || c.Keyboard.RepeatPeriod.Duration <= 0 {
		errs = append(errs, errors.New("keyboard repeat_delay and repeat_period must be positive"))
	}

	return errors.Join(errs...)
}
