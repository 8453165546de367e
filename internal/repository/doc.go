// Package repository defines the archive of computed reports.
//
// Every calculation run can be stored with its per-element results so
// that earlier runs can be listed and shown again. The implementation is
// in the sqlite subpackage, which migrates its schema on open and keeps
// octave band spectra as JSON text.
package repository
