// Package config provides configuration management for the clip catalog.
//
// It utilizes Viper for loading configuration from environment variables and
// an optional .env file (via godotenv).
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings,
// divided into subsections owned by their respective packages:
//   - Server: HTTP server settings (port, API key, rate limits)
//   - Database: catalog database connection (mysql or sqlite)
//   - Storage: S3/MinIO credentials and the thumbnail bucket
//   - Log: logging level and format
//   - Library: media library root folder and ffmpeg/ffprobe binaries
//
// Defaults are declared as struct tags on the partial configs and registered
// with Viper through reflection, so every key is overridable from the
// environment (e.g. LIBRARY_ROOT_FOLDER, DATABASE_DRIVER).
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Library.RootFolder)
package config
