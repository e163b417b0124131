// Package config loads mypykaizen settings.
//
// Precedence (highest to lowest):
//  1. Environment variables (MYPYKAIZEN_CHECKER, MYPYKAIZEN_LOG_LEVEL, etc.)
//  2. Config file (.mypykaizen.yaml in the working directory)
//  3. Built-in defaults
//
// Command-line arguments are never consulted: they belong to the wrapped
// checker. The baseline file name is not configurable.
package config
