//go:build debug

// Package debug provides a centralized, categorized debug logging system.
// Build with -tags debug to enable logging.
package debug

import (
	"fmt"
	"log"
	"os"
	"strings"
	"sync"
)

// Enabled indicates whether debug logging is active
const Enabled = true

// Category represents a debug logging category
type Category string

const (
	// Core categories
	APP    Category = "APP"    // Controller, request workers, console
	FS     Category = "FS"     // Metadata provider (roots, enumeration)
	TREE   Category = "TREE"   // Tree store mutations
	STORE  Category = "STORE"  // Settings database
	CONFIG Category = "CONFIG" // Config loading

	// Detailed subcategories (use sparingly - can be verbose)
	FS_ENTRY Category = "FS_ENTRY" // Individual entry classification (very verbose)
)

var (
	// enabledCategories controls which categories are active
	enabledCategories = map[Category]bool{
		APP:    true,
		FS:     true,
		TREE:   true,
		STORE:  true,
		CONFIG: true,
		// Verbose categories disabled by default
		FS_ENTRY: false,
	}
	categoryMu sync.RWMutex

	logger = log.New(os.Stderr, "", log.Ltime|log.Lmicroseconds)
)

func init() {
	// Format: FSTREE_DEBUG=APP,FS or FSTREE_DEBUG=all or FSTREE_DEBUG=none
	if env := os.Getenv("FSTREE_DEBUG"); env != "" {
		categoryMu.Lock()
		defer categoryMu.Unlock()
		applySpecLocked(env)
	}
}

func applySpecLocked(spec string) {
	spec = strings.ToUpper(strings.TrimSpace(spec))
	switch spec {
	case "ALL":
		for cat := range enabledCategories {
			enabledCategories[cat] = true
		}
	case "NONE":
		for cat := range enabledCategories {
			enabledCategories[cat] = false
		}
	default:
		for cat := range enabledCategories {
			enabledCategories[cat] = false
		}
		for _, cat := range strings.Split(spec, ",") {
			cat = strings.TrimSpace(cat)
			if cat != "" {
				enabledCategories[Category(cat)] = true
			}
		}
	}
}

// Log logs a debug message for the specified category
func Log(cat Category, format string, args ...interface{}) {
	categoryMu.RLock()
	enabled := enabledCategories[cat]
	categoryMu.RUnlock()

	if !enabled {
		return
	}

	msg := fmt.Sprintf(format, args...)
	logger.Printf("[%s] %s", cat, msg)
}

// Configure applies a category spec in the FSTREE_DEBUG format.
func Configure(spec string) {
	if spec == "" {
		return
	}
	categoryMu.Lock()
	applySpecLocked(spec)
	categoryMu.Unlock()
}

// Enable enables a debug category
func Enable(cat Category) {
	categoryMu.Lock()
	enabledCategories[cat] = true
	categoryMu.Unlock()
}

// Disable disables a debug category
func Disable(cat Category) {
	categoryMu.Lock()
	enabledCategories[cat] = false
	categoryMu.Unlock()
}

// IsEnabled returns whether a category is enabled
func IsEnabled(cat Category) bool {
	categoryMu.RLock()
	defer categoryMu.RUnlock()
	return enabledCategories[cat]
}

// EnableAll enables all debug categories including verbose ones
func EnableAll() {
	categoryMu.Lock()
	for cat := range enabledCategories {
		enabledCategories[cat] = true
	}
	categoryMu.Unlock()
}
