package main

import (
	"log/slog"
	"strings"
	"sync"

	"chaptersaw/internal/config"
	"chaptersaw/internal/deps"
	"chaptersaw/internal/logging"
	"chaptersaw/internal/toolchain"
)

type commandContext struct {
	configFlag  *string
	verboseFlag *bool

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error
}

func newCommandContext(configFlag *string, verboseFlag *bool) *commandContext {
	return &commandContext{
		configFlag:  configFlag,
		verboseFlag: verboseFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		level := cfg.Logging.Level
		if c.verboseFlag != nil && *c.verboseFlag {
			level = "debug"
		}
		c.logger, c.loggerErr = logging.New(logging.Options{
			Level:  level,
			Format: cfg.Logging.Format,
		})
	})
	return c.logger, c.loggerErr
}

// ensureToolchain verifies the external binaries exist and returns a runner
// bound to the configured paths.
func (c *commandContext) ensureToolchain() (*toolchain.Runner, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := c.ensureLogger()
	if err != nil {
		return nil, err
	}
	requirements := deps.Requirements(cfg.Tools.FFmpeg, cfg.Tools.FFprobe, cfg.Tools.MkvPropEdit)
	if err := deps.Verify(requirements); err != nil {
		return nil, err
	}
	return toolchain.NewRunner(cfg.Tools.FFmpeg, cfg.Tools.FFprobe,
		toolchain.WithLogger(logger),
		toolchain.WithMkvPropEdit(cfg.Tools.MkvPropEdit),
	), nil
}
