//go:build windows

package internal

import (
	"os"
	"syscall"
	"unsafe"
)

var procGetUserDefaultLocaleName = syscall.NewLazyDLL("kernel32.dll").NewProc("GetUserDefaultLocaleName")

// detectSystemLocale checks the environment first (WSL and tests set it) and
// then asks Windows for the user locale.
func detectSystemLocale() string {
	if locale := localeFromEnv("LC_MONETARY", "LC_ALL", "LANG"); locale != "" {
		return locale
	}

	const localeNameMaxLength = 85
	buf := make([]uint16, localeNameMaxLength)
	ret, _, _ := procGetUserDefaultLocaleName.Call(uintptr(unsafe.Pointer(&buf[0])), uintptr(len(buf)))
	if ret == 0 {
		return ""
	}
	return syscall.UTF16ToString(buf)
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
