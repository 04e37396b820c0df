// Package types defines the Satchel domain aggregates (User, Label, Memo,
// Contact and the Contact child records), the collaborator contracts consumed
// by the storage and service layers, and the standard error values shared
// across the system.
package types
