// SPDX-License-Identifier: MIT

// Package config loads the airpath service configuration.
//
// Precedence, lowest first: built-in defaults, the config file (.toml, .yaml
// or .yml), then environment variables. LoadEnvFiles can populate the
// environment from .env files beforehand.
//
// Environment overrides:
//
//	AIRPATH_LIMIT_PM25, AIRPATH_LIMIT_PM10, AIRPATH_LIMIT_NO2
//	AIRPATH_ESCALATION_FACTOR, AIRPATH_MAX_ESCALATIONS, AIRPATH_MAX_DETOUR
//	AIRPATH_ORACLE_KIND, AIRPATH_GRID_DIR
//	AIRPATH_OPENWEATHER_URL, OPENWEATHER_API_KEY
//	AIRPATH_NETWORK_WALK, AIRPATH_NETWORK_BIKE
//	AIRPATH_ADDR (or PORT), AIRPATH_MAX_CONCURRENT
//	AIRPATH_LOG_LEVEL, AIRPATH_LOG_FORMAT
package config
