//go:build windows

package main

import (
	"os"
	"strconv"
)

// detectTerminalWidth returns the column count for capping watchlist
// table cell width; on Windows only the COLUMNS override is consulted.
func detectTerminalWidth() int {
	if cols, ok := os.LookupEnv("COLUMNS"); ok {
		if n, err := strconv.Atoi(cols); err == nil && n > 0 {
			return n
		}
	}
	return 0
}
