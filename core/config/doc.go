// Package config loads the application configuration.
//
// Configuration is assembled from three layers, lowest priority first:
//  1. Struct-tag defaults (the `default` tag on each config field)
//  2. A .env file in the working directory, loaded via godotenv
//  3. Environment variables, mapped by Viper (SERVER_PORT -> server.port)
//
// Each subsystem owns its own Config struct (server, log, database, remote,
// archive); this package only composes them and drives the binding.
package config
