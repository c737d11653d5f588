// Package config loads typed configuration from the environment.
//
// It wraps github.com/joho/godotenv for .env files and
// github.com/caarlos0/env/v11 for struct tags:
//
//	type Config struct {
//		LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
//		CacheSize int    `env:"IVRKIT_CACHE_SIZE" envDefault:"256"`
//	}
//
//	var cfg Config
//	if err := config.Load(&cfg); err != nil {
//		log.Fatal(err)
//	}
//
// Each configuration type is parsed once per process and served from an
// in-memory cache afterwards. LoadEnv reads additional .env files, ResetCache
// and Reload let tests start over after changing the environment.
//
// Errors are sentinels usable with errors.Is: ErrParsingConfig,
// ErrInvalidConfigType, ErrNilPointer and ErrLoadingEnvFile.
package config
