// Package banks registers the built-in bank presets with the core registry.
// Import this package to ensure all presets are registered.
package banks

// This file exists to provide a single import point.
// Each region file uses init() to register its presets.
//
// Priorities are spaced by ten so a new bank can be slotted between two
// existing ones. A preset with generic columns (Date, Description, Amount)
// needs IdentifyingColumns so it cannot capture files from banks tried later.
