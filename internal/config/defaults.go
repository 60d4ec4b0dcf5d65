package config

const (
	defaultLogDir          = "~/.local/share/cardforge/logs"
	defaultDataDir         = "~/.local/share/cardforge/data"
	defaultEditorURL       = "https://cardconjurer.app/"
	defaultViewportWidth   = 1920
	defaultViewportHeight  = 1080
	defaultNavTimeout      = 15
	defaultSettleDelayMs   = 300
	defaultDownloadTimeout = 20
	defaultFrameTemplate   = "Seventh"
	defaultMarginGroup     = "Margin"
	defaultOrderStock      = "(S30) Standard Smooth"
	defaultJobPauseMs      = 250
	defaultLogFormat       = "console"
	defaultLogLevel        = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			LogDir:  defaultLogDir,
			DataDir: defaultDataDir,
		},
		Editor: Editor{
			URL:             defaultEditorURL,
			Headless:        false,
			ViewportWidth:   defaultViewportWidth,
			ViewportHeight:  defaultViewportHeight,
			NavTimeout:      defaultNavTimeout,
			SettleDelayMs:   defaultSettleDelayMs,
			DownloadTimeout: defaultDownloadTimeout,
			FrameTemplate:   defaultFrameTemplate,
			MarginGroup:     defaultMarginGroup,
		},
		Order: Order{
			Stock: defaultOrderStock,
			Foil:  false,
		},
		Workflow: Workflow{
			JobPauseMs: defaultJobPauseMs,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
