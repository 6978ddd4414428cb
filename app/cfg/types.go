package cfg

type Cfg struct {
	// Notification configuration
	TelegramToken  string
	TelegramChatID string

	// Scan configuration
	SourcesDir   string
	UserAgent    string
	Cutoff       string
	LookbackDays int
	DryRun       bool

	// Trigger surfaces
	Serve        bool
	Port         string
	APIAccessKey string
	CronSpec     string

	// Helper modes
	GetChatID        bool
	TestNotification bool

	// Application metadata
	Debug   bool
	Version string
}
