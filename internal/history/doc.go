// Package history records completed generation runs in a small SQLite
// database so repeated runs over identical input can be skipped and past runs
// can be listed or pruned from the CLI.
package history
