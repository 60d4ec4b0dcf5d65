package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.normalizeEditor(); err != nil {
		return err
	}
	c.normalizeOrder()
	c.normalizeWorkflow()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		c.Paths.DataDir = defaultDataDir
	}
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeEditor() error {
	c.Editor.URL = strings.TrimSpace(c.Editor.URL)
	if c.Editor.URL == "" {
		c.Editor.URL = defaultEditorURL
	}
	c.Editor.ExecPath = strings.TrimSpace(c.Editor.ExecPath)
	if c.Editor.ExecPath == "" {
		if value, ok := os.LookupEnv("CHROME_PATH"); ok {
			c.Editor.ExecPath = strings.TrimSpace(value)
		}
	}
	if c.Editor.ViewportWidth <= 0 {
		c.Editor.ViewportWidth = defaultViewportWidth
	}
	if c.Editor.ViewportHeight <= 0 {
		c.Editor.ViewportHeight = defaultViewportHeight
	}
	if c.Editor.NavTimeout <= 0 {
		c.Editor.NavTimeout = defaultNavTimeout
	}
	if c.Editor.SettleDelayMs <= 0 {
		c.Editor.SettleDelayMs = defaultSettleDelayMs
	}
	if c.Editor.DownloadTimeout <= 0 {
		c.Editor.DownloadTimeout = defaultDownloadTimeout
	}
	c.Editor.FrameTemplate = strings.TrimSpace(c.Editor.FrameTemplate)
	if c.Editor.FrameTemplate == "" {
		c.Editor.FrameTemplate = defaultFrameTemplate
	}
	c.Editor.MarginGroup = strings.TrimSpace(c.Editor.MarginGroup)
	if c.Editor.MarginGroup == "" {
		c.Editor.MarginGroup = defaultMarginGroup
	}
	return nil
}

func (c *Config) normalizeOrder() {
	c.Order.Stock = strings.TrimSpace(c.Order.Stock)
	if c.Order.Stock == "" {
		c.Order.Stock = defaultOrderStock
	}
}

func (c *Config) normalizeWorkflow() {
	if c.Workflow.JobPauseMs < 0 {
		c.Workflow.JobPauseMs = defaultJobPauseMs
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
