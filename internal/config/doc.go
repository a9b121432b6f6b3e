// Package config loads and validates rigcheck settings.
//
// Settings come from a YAML file; wait budgets and retry policy come from
// environment variables with sane defaults so CI systems can tune them
// without editing the config file.
package config
