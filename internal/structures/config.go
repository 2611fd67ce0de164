package structures

import "time"

type Server struct {
	Host string `yaml:"host" validate:"required"`
	Port int    `yaml:"port" validate:"required|uint|min:1"`
}

type StoreConfig struct {
	Addr     string `yaml:"addr" validate:"required"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	RootPath string `yaml:"rootPath" validate:"required"`
}

type TrackingConfig struct {
	// MagRoles is the priority-ordered list of magnitude roles. The first
	// case-insensitive substring match against a member's role names wins.
	MagRoles []string `yaml:"magRoles" validate:"required|minLen:1"`
	// ArtChannels holds keywords; a channel whose name contains any of them
	// counts as an art channel.
	ArtChannels []string `yaml:"artChannels" validate:"required|minLen:1"`
}

type PlatformConfig struct {
	RosterURL string        `yaml:"rosterUrl"`
	Timeout   time.Duration `yaml:"timeout"`
}

type SnapshotConfig struct {
	FilePath string        `yaml:"filePath" validate:"required|unixPath"`
	Interval time.Duration `yaml:"interval" validate:"required|min:1"`
}

type SyncConfig struct {
	Interval time.Duration `yaml:"interval" validate:"required|min:1"`
}

type LoggerConfig struct {
	Level string `yaml:"level" validate:"required|in:trace,debug,info,warn,error,fatal,panic"`
	Mode  uint32 `yaml:"mode" validate:"required|uint"`
	Dir   string `yaml:"dir" validate:"required|unixPath"`
}

type CacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	Size    int           `yaml:"size"`
	TTL     time.Duration `yaml:"ttl"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

type Config struct {
	AppName   string
	Debug     bool
	Path      string
	WebServer Server         `yaml:"webServer"`
	Store     StoreConfig    `yaml:"store"`
	Tracking  TrackingConfig `yaml:"tracking"`
	Platform  PlatformConfig `yaml:"platform"`
	Snapshot  SnapshotConfig `yaml:"snapshot"`
	Sync      SyncConfig     `yaml:"sync"`
	Logger    LoggerConfig   `yaml:"logger"`
	Cache     CacheConfig    `yaml:"cache"`
	Metrics   MetricsConfig  `yaml:"metrics"`
}
