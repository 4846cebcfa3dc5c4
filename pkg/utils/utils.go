package utils

import (
	"os"
	"path/filepath"
)

func GetDefaultDataDir() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		// No home directory (CI containers); keep data next to the binary's cwd
		return "lingocards-data"
	}
	return filepath.Join(configDir, "lingocards")
}
