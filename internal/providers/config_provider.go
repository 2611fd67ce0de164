package providers

import (
	"fmt"
	"github.com/spf13/viper"
	"path/filepath"
	"scad/internal/structures"
	"strings"
)

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	filename := filepath.Base(flags.ConfigPath)
	viper.AddConfigPath(filepath.Dir(flags.ConfigPath))
	viper.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	viper.SetConfigType("yaml")

	viper.BindEnv("logger.level", "SCAD_LOG_LEVEL")
	viper.BindEnv("store.addr", "SCAD_REDIS_ADDR")
	viper.BindEnv("store.password", "SCAD_REDIS_PASSWORD")
	viper.BindEnv("platform.rosterUrl", "SCAD_ROSTER_URL")
	viper.BindEnv("sync.interval", "SCAD_SYNC_INTERVAL")
	viper.BindEnv("snapshot.interval", "SCAD_SNAPSHOT_INTERVAL")
	viper.BindEnv("cache.enabled", "SCAD_CACHE_ENABLED")
	viper.BindEnv("cache.size", "SCAD_CACHE_SIZE")

	err := viper.ReadInConfig()
	if err != nil {
		return nil, err
	}

	err = viper.Unmarshal(&conf)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	cnfValidator := NewCnfValidator(&conf)
	err = cnfValidator.Validate()
	if err != nil {
		return nil, err
	}

	conf.AppName = "CommunityAnalyticsDaemon"
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}
