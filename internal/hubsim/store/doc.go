// Package store keeps the commands the hub simulator accepted, for a
// bounded retention period, so they can be inspected through /commands.
package store
