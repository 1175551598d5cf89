// Package config loads, normalizes, and validates captioner configuration.
//
// It supplies defaults for every segmenter threshold, expands user paths
// (including tilde shortcuts), reads TOML files, and honours environment
// fallbacks such as HF_TOKEN. Commands obtain settings through this package so
// thresholds reach the segmenters already checked and paths arrive absolute.
package config
