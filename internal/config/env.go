package config

import (
	"errors"
	"math"
	"strings"

	engineopts "github.com/phyten/what2do/internal/engine/opts"
)

// EnvConfigPath names the variable that points at an explicit config file.
const EnvConfigPath = "WHAT2DO_CONFIG"

func FromEnv(getenv func(string) string) (Config, error) {
	if getenv == nil {
		getenv = func(string) string { return "" }
	}
	var cfg Config
	var errs []error

	setString := func(target **string, key string) {
		raw := strings.TrimSpace(getenv(key))
		if raw == "" {
			return
		}
		value := raw
		*target = &value
	}
	setList := func(target **[]string, key string) {
		raw := strings.TrimSpace(getenv(key))
		if raw == "" {
			return
		}
		list := engineopts.SplitMulti([]string{raw})
		if len(list) == 0 {
			empty := make([]string, 0)
			*target = &empty
			return
		}
		copyVals := make([]string, len(list))
		copy(copyVals, list)
		*target = &copyVals
	}
	setBool := func(target **bool, key string) {
		raw := strings.TrimSpace(getenv(key))
		if raw == "" {
			return
		}
		v, err := engineopts.ParseBool(raw, key)
		if err != nil {
			errs = append(errs, err)
			return
		}
		value := v
		*target = &value
	}
	setInt := func(target **int, key string, min, max int) {
		raw := strings.TrimSpace(getenv(key))
		if raw == "" {
			return
		}
		v, err := engineopts.ParseIntInRange(raw, key, min, max)
		if err != nil {
			errs = append(errs, err)
			return
		}
		value := v
		*target = &value
	}

	setList(&cfg.Scan.Paths, "WHAT2DO_PATH")
	setList(&cfg.Scan.Extensions, "WHAT2DO_EXT")
	setList(&cfg.Scan.Langs, "WHAT2DO_LANG")
	setList(&cfg.Scan.Excludes, "WHAT2DO_EXCLUDE")
	setList(&cfg.Scan.Tags, "WHAT2DO_TAGS")
	setBool(&cfg.Scan.CommentsOnly, "WHAT2DO_COMMENTS_ONLY")
	setBool(&cfg.Scan.ExcludeTypical, "WHAT2DO_EXCLUDE_TYPICAL")
	setBool(&cfg.Scan.Hidden, "WHAT2DO_HIDDEN")
	setBool(&cfg.Scan.FollowSymlinks, "WHAT2DO_FOLLOW_SYMLINKS")
	setBool(&cfg.Scan.Gitignore, "WHAT2DO_GITIGNORE")
	if raw := strings.TrimSpace(getenv("WHAT2DO_NO_GITIGNORE")); raw != "" {
		v, err := engineopts.ParseBool(raw, "WHAT2DO_NO_GITIGNORE")
		if err != nil {
			errs = append(errs, err)
		} else {
			value := !v
			cfg.Scan.Gitignore = &value
		}
	}
	setInt(&cfg.Scan.MaxFileBytes, "WHAT2DO_MAX_FILE_BYTES", 0, math.MaxInt)

	setString(&cfg.Report.Format, "WHAT2DO_FORMAT")
	setString(&cfg.Report.Out, "WHAT2DO_OUT")
	setString(&cfg.Report.Color, "WHAT2DO_COLOR")
	// Upper bound is enforced by NormalizeReport so every layer shares one message.
	setInt(&cfg.Report.Truncate, "WHAT2DO_TRUNCATE", 0, math.MaxInt)

	if len(errs) > 0 {
		return cfg, errors.Join(errs...)
	}
	return cfg, nil
}
