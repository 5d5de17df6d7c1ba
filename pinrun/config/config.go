// Package config holds pinrun's global settings. Settings come from an
// optional TOML file and from command line flags; flags set explicitly win.
package config

import (
	"flag"
	"fmt"
	"strconv"

	"github.com/BurntSushi/toml"

	"affinity.mask/pkg/log"
)

// Config is the set of global settings.
type Config struct {
	// File is the TOML file the remaining fields were loaded from, if any.
	File string `toml:"-"`

	LogLevel   string `toml:"log_level"`
	LogFormat  string `toml:"log_format"`
	ReportMask bool   `toml:"report_mask"`
	Timing     bool   `toml:"timing"`

	// PrintMask asks for the affinity readback instead of a run. It is an
	// action, so it is neither read from the file nor forwarded.
	PrintMask bool `toml:"-"`
}

// RegisterFlags registers the global flags on fs and returns the Config they
// write into.
func RegisterFlags(fs *flag.FlagSet) *Config {
	c := &Config{}
	fs.StringVar(&c.File, "config", "", "path to a TOML file with default settings.")
	fs.StringVar(&c.LogLevel, "log-level", "warning", "log level: debug, info or warning.")
	fs.StringVar(&c.LogFormat, "log-format", "text", "log format: text or json.")
	fs.BoolVar(&c.ReportMask, "report-mask", false, "print each process's affinity after pinning.")
	fs.BoolVar(&c.Timing, "timing", false, "print real/user/sys time after the child is joined.")
	fs.BoolVar(&c.PrintMask, "print-mask", false, "print the cpu affinity of pinrun, or of the pid given as the only argument, and exit.")
	return c
}

// Load merges the file named by -config under the flags already parsed into
// c. Flags that were set explicitly on fs keep their values.
func (c *Config) Load(fs *flag.FlagSet) error {
	if c.File == "" {
		return nil
	}
	var fromFile Config
	if _, err := toml.DecodeFile(c.File, &fromFile); err != nil {
		return fmt.Errorf("reading config %q: %w", c.File, err)
	}

	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	if !set["log-level"] && fromFile.LogLevel != "" {
		c.LogLevel = fromFile.LogLevel
	}
	if !set["log-format"] && fromFile.LogFormat != "" {
		c.LogFormat = fromFile.LogFormat
	}
	if !set["report-mask"] {
		c.ReportMask = fromFile.ReportMask
	}
	if !set["timing"] {
		c.Timing = fromFile.Timing
	}
	return nil
}

// Apply configures logging from c.
func (c *Config) Apply() error {
	if err := log.SetLevel(c.LogLevel); err != nil {
		return err
	}
	return log.SetFormat(c.LogFormat)
}

// ToFlags returns the flags that reproduce c in another process. The file is
// not forwarded since its contents are already merged.
func (c *Config) ToFlags() []string {
	return []string{
		"-log-level=" + c.LogLevel,
		"-log-format=" + c.LogFormat,
		"-report-mask=" + strconv.FormatBool(c.ReportMask),
		"-timing=" + strconv.FormatBool(c.Timing),
	}
}
