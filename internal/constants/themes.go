package constants

import (
	"database/sql/driver"
	"fmt"
	"strings"
)

// ColorTheme is the profile theme preference
type ColorTheme string

const (
	ThemeLight ColorTheme = "LIGHT"
	ThemeDark  ColorTheme = "DARK"
)

func (t ColorTheme) String() string { return string(t) }

// ParseColorTheme validates a raw theme name (case-insensitive)
func ParseColorTheme(name string) (ColorTheme, bool) {
	switch ColorTheme(strings.ToUpper(name)) {
	case ThemeLight:
		return ThemeLight, true
	case ThemeDark:
		return ThemeDark, true
	}
	return "", false
}

// Scan implements the sql.Scanner interface
func (t *ColorTheme) Scan(src interface{}) error {
	if src == nil {
		*t = ""
		return nil
	}
	switch v := src.(type) {
	case string:
		*t = ColorTheme(v)
	case []byte:
		*t = ColorTheme(v)
	default:
		return fmt.Errorf("ColorTheme: cannot scan type %T", src)
	}
	return nil
}

// Value implements the driver.Valuer interface
func (t ColorTheme) Value() (driver.Value, error) { return string(t), nil }
