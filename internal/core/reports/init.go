// Package reports registers the dashboard's report modes with the core registry.
// Import this package to ensure all modes are registered.
package reports

// Each mode file uses init() to register itself.
