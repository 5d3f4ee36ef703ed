// Package services defines the shared error taxonomy used across the
// scanning core and its collaborators.
package services
