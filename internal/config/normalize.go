package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.normalizeInputs(); err != nil {
		return err
	}
	c.normalizeMatching()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		c.Paths.DataDir = defaultDataDir
	}
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeInputs() error {
	var err error
	c.Inputs.ForayCSV = strings.TrimSpace(c.Inputs.ForayCSV)
	if c.Inputs.ForayCSV != "" {
		if c.Inputs.ForayCSV, err = expandPath(c.Inputs.ForayCSV); err != nil {
			return fmt.Errorf("inputs.foray_csv: %w", err)
		}
	}
	c.Inputs.MycoBankCSV = strings.TrimSpace(c.Inputs.MycoBankCSV)
	if c.Inputs.MycoBankCSV != "" {
		if c.Inputs.MycoBankCSV, err = expandPath(c.Inputs.MycoBankCSV); err != nil {
			return fmt.Errorf("inputs.mycobank_csv: %w", err)
		}
	}
	return nil
}

// normalizeMatching clamps unusable overrides back to "use the default"
// rather than erroring; a bad knob must never block a run.
func (c *Config) normalizeMatching() {
	if c.Matching.Workers < 0 {
		c.Matching.Workers = 0
	}
	if c.Matching.CacheCapacity < 0 {
		c.Matching.CacheCapacity = 0
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
