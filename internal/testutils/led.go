package testutils

import (
	"os"
	"path/filepath"
	"strconv"
)

// InitLED creates the sysfs files of an LED class device in path
func InitLED(path string) error {
	files := map[string]string{
		"trigger":        "[none] timer heartbeat default-on",
		"brightness":     "0",
		"max_brightness": "255",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(path, name), []byte(content), 0644); err != nil {
			return err
		}
	}
	return nil
}

// InitGPIO creates a sysfs GPIO tree under root, with the provided lines already exported
func InitGPIO(root string, lines ...int) error {
	for _, name := range []string{"export", "unexport"} {
		if err := os.WriteFile(filepath.Join(root, name), nil, 0644); err != nil {
			return err
		}
	}
	for _, line := range lines {
		dir := filepath.Join(root, "gpio"+strconv.Itoa(line))
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
		if err := os.WriteFile(filepath.Join(dir, "direction"), []byte("in"), 0644); err != nil {
			return err
		}
		if err := os.WriteFile(filepath.Join(dir, "value"), []byte("0"), 0644); err != nil {
			return err
		}
	}
	return nil
}
