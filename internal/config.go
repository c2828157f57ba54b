package internal

import (
	"fmt"
	"time"
)

type Config struct {
	Host                string        `env:"HOST,default=0.0.0.0"`
	HTTPPort            int           `env:"HTTP_PORT,required=true"`
	GRPCPort            int           `env:"GRPC_PORT,required=true"`
	DebugPort           int           `env:"DEBUG_PORT,default=8081"`
	BadgerFilepath      string        `env:"BADGER_FILEPATH,required=true"`
	LogLevel            string        `env:"LOG_LEVEL,required=true"`
	HealthInterval      time.Duration `env:"HEALTH_INTERVAL,default=5s"`
	ShutdownTimeout     time.Duration `env:"SHUTDOWN_TIMEOUT,default=10s"`
	ReadHeaderTimeout   time.Duration `env:"READ_HEADER_TIMEOUT,default=5s"`
	RequireModelAtBoot  bool          `env:"REQUIRE_MODEL_AT_BOOT,default=false"`
	// 0 disables the watcher, reloads then only happen through POST /admin/reload
	ModelReloadInterval time.Duration `env:"MODEL_RELOAD_INTERVAL,default=0s"`
}

func (c Config) HTTPAddress() string {
	return fmt.Sprintf("%s:%d", c.Host, c.HTTPPort)
}

func (c Config) GRPCAddress() string {
	return fmt.Sprintf("%s:%d", c.Host, c.GRPCPort)
}
