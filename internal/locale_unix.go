//go:build !windows && !darwin

package internal

import "os"

// detectSystemLocale reads the locale from the environment, most specific
// variable first.
func detectSystemLocale() string {
	return localeFromEnv("LC_MONETARY", "LC_ALL", "LANG")
}

func localeFromEnv(vars ...string) string {
	for _, v := range vars {
		locale := os.Getenv(v)
		if locale != "" && locale != "C" && locale != "POSIX" {
			return locale
		}
	}
	return ""
}
