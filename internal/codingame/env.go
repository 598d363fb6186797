package codingame

import (
	"os"
	"strconv"
)

// Getenv returns the value of key or def when it is unset or empty.
func Getenv(key, def string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return def
}

// GetenvInt is Getenv for integers. Values that do not parse fall back to def.
func GetenvInt(key string, def int) int {
	n, err := strconv.Atoi(Getenv(key, strconv.Itoa(def)))
	if err != nil {
		return def
	}
	return n
}
