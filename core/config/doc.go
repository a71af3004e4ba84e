// Package config provides configuration management for tinyhttpd.
//
// It utilizes Viper for loading configuration from environment variables and
// an optional .env file.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Server: socket, limits, timeouts and document root
//   - Storage: S3/MinIO credentials and bucket used to restore pages
//   - Log: Logging level and format
//
// Defaults come from the `default` struct tags of each section and are
// overridden by environment variables such as SERVER_PORT or LOG_LEVEL.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.Port)
package config
