//go:build darwin

package internal

import (
	"os"
	"os/exec"
	"strings"
)

// detectSystemLocale prefers a locale set in the terminal and falls back to
// the AppleLocale preference ("en_US", "sv_SE").
func detectSystemLocale() string {
	if locale := localeFromEnv("LC_ALL", "LC_MONETARY", "LANG"); locale != "" {
		return locale
	}
	out, err := exec.Command("defaults", "read", "-g", "AppleLocale").Output()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(out))
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
