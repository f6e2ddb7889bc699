// Package config provides environment configuration helpers for deskbot
// commands. Values come from the process environment, optionally seeded
// from a .env file.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Default device configuration for the ESP32 display.
const (
	DefaultDeviceIP   = "192.168.29.240"
	DefaultDevicePort = "80"
)

// LoadDotenv loads a .env file from the working directory if one exists.
// A missing file is not an error; any other failure is returned so the
// caller can log it.
func LoadDotenv() error {
	if _, err := os.Stat(".env"); os.IsNotExist(err) {
		return nil
	}
	return godotenv.Load()
}

// APIKeyRequired returns the OpenAI API key from OPENAI_API_KEY.
// Exits with a usage message if not set.
func APIKeyRequired() string {
	key := os.Getenv("OPENAI_API_KEY")
	if key == "" {
		fmt.Fprintln(os.Stderr, "Error: OPENAI_API_KEY environment variable is required")
		fmt.Fprintln(os.Stderr, "Set it in a .env file or the environment")
		os.Exit(1)
	}
	return key
}

// DeviceIP returns the display device IP from ESP32_IP or the default.
func DeviceIP() string {
	if ip := os.Getenv("ESP32_IP"); ip != "" {
		return ip
	}
	return DefaultDeviceIP
}

// DevicePort returns the display device port from ESP32_PORT or the default.
func DevicePort() string {
	if port := os.Getenv("ESP32_PORT"); port != "" {
		return port
	}
	return DefaultDevicePort
}

// DeviceAddr returns the display device base address as host:port.
func DeviceAddr() string {
	return fmt.Sprintf("%s:%s", DeviceIP(), DevicePort())
}

// LogLevel returns the log level from LOG_LEVEL or "info".
func LogLevel() string {
	if lvl := os.Getenv("LOG_LEVEL"); lvl != "" {
		return lvl
	}
	return "info"
}
