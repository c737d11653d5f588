package main

import (
	"github.com/voicefoundry-au-solutionconsultants/omilia-utils/pkg/formatter"
	"github.com/voicefoundry-au-solutionconsultants/omilia-utils/pkg/harness"
	"github.com/voicefoundry-au-solutionconsultants/omilia-utils/pkg/httpserver"
)

// Config is the process environment of ivrkit. Empty log settings fall back
// to the defaults of APP_ENV.
type Config struct {
	Env            string `env:"APP_ENV" envDefault:"development"`
	LogLevel       string `env:"LOG_LEVEL"`
	LogFormat      string `env:"LOG_FORMAT"`
	JWTSecret      string `env:"IVRKIT_JWT_SECRET"`
	CacheSize      int    `env:"IVRKIT_CACHE_SIZE"`
	AllowEval      bool   `env:"IVRKIT_ALLOW_EVAL" envDefault:"false"`
	TimezoneOffset *int   `env:"IVRKIT_TIMEZONE_OFFSET"`

	HTTP httpserver.Config
}

func (c Config) cacheSize() int {
	if c.CacheSize > 0 {
		return c.CacheSize
	}
	return harness.DefaultCacheSize
}

func (c Config) greetingOffset() int {
	if c.TimezoneOffset != nil {
		return *c.TimezoneOffset
	}
	return formatter.GreetingOffset
}
