// SPDX-License-Identifier: MIT

// Package store persists relaxation results keyed by their parameter tuple
// (dim, dv, perc, seed).
//
// The key is also a file name:
//
//	dim=<dim>_dv=<dv>_perc=<perc>_<seed><ext>
//
// ParseValues reads the tuple back from such a name with the same grammar that
// produced the historical result directories, so analysis can scan directories
// written by either backend's exporter.
//
// Backends:
//
//   - FileStore   one JSON file per key in a directory.
//   - SQLiteStore one row per key in a modernc.org/sqlite database.
//
// Both satisfy Store and behave identically: Save overwrites, Load of a missing
// key returns ErrNotFound, List returns keys in ascending (dim, dv, perc, seed)
// order.
package store
