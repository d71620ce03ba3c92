// Package config resolves the engine's process-wide configuration from the
// environment: the database path and the forced-tag set applied at
// startup.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Config is the resolved, immutable configuration captured once at Manager
// construction time. Nothing here is re-read per call: the tag-scope filter
// in particular depends on this being a one-shot snapshot (see
// internal/tagscope).
type Config struct {
	DBPath    string
	ForceTags []string
}

// Load reads TODOIT_DB_PATH and TODOIT_FORCE_TAGS via viper's environment
// binding. An explicit dbPathOverride (non-empty) takes precedence over the
// environment, so a path passed directly to the constructor always wins.
func Load(dbPathOverride string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("TODOIT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("db_path", "TODOIT_DB_PATH")
	_ = v.BindEnv("force_tags", "TODOIT_FORCE_TAGS")

	dbPath := dbPathOverride
	if dbPath == "" {
		dbPath = v.GetString("db_path")
	}
	if dbPath == "" {
		return nil, fmt.Errorf("TODOIT_DB_PATH is not set and no explicit path was provided")
	}
	dbPath = os.ExpandEnv(dbPath)

	return &Config{
		DBPath:    dbPath,
		ForceTags: parseForceTags(v.GetString("force_tags")),
	}, nil
}

// parseForceTags splits a comma-separated tag list, trims whitespace, drops
// empty segments and lower-cases each tag so the set is a canonical
// case-folded match target for the tag-scope filter.
func parseForceTags(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	tags := make([]string, 0, len(parts))
	seen := make(map[string]bool, len(parts))
	for _, p := range parts {
		tag := strings.ToLower(strings.TrimSpace(p))
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		tags = append(tags, tag)
	}
	return tags
}
