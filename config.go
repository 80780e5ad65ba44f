package main

import (
	"bufio"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Config holds the editor settings read from ~/.sketchrc.
type Config struct {
	SaveDirectory string
	Database      string
	GridWidth     int
	GridHeight    int
	Confirmations bool
}

func loadConfig() *Config {
	config := &Config{
		GridWidth:     200,
		GridHeight:    100,
		Confirmations: true,
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return config
	}

	configPath := filepath.Join(homeDir, ".sketchrc")
	file, err := os.Open(configPath)
	if err != nil {
		return config
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		switch strings.ToLower(key) {
		case "savedirectory", "save_directory", "savedir":
			config.SaveDirectory = expandPath(homeDir, value)
		case "database", "db":
			config.Database = expandPath(homeDir, value)
		case "gridwidth", "grid_width":
			if n, err := strconv.Atoi(value); err == nil && n > 0 {
				config.GridWidth = n
			}
		case "gridheight", "grid_height":
			if n, err := strconv.Atoi(value); err == nil && n > 0 {
				config.GridHeight = n
			}
		case "confirmations", "confirm":
			config.Confirmations = strings.ToLower(value) == "true"
		}
	}

	return config
}

func expandPath(homeDir, value string) string {
	if strings.HasPrefix(value, "~") {
		value = filepath.Join(homeDir, strings.TrimPrefix(value, "~"))
	}
	if !filepath.IsAbs(value) {
		if absPath, err := filepath.Abs(value); err == nil {
			value = absPath
		}
	}
	return value
}
