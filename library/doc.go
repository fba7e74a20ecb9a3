// Package library looks up the movies already present in a Radarr instance so
// catalog listings can mark them. It only reads from Radarr.
package library
