// symbols/symbol_table.go - Symbol entry entry point
//
// The package is split into focused files:
// - symbol_table_core.go: Entry, its constructors and accessors
// - symbol_table_operations.go: Narrowing and the Entries list
//
// Storing entries by name and scope lifetimes belong to the caller; this
// package only describes what a single binding holds.

package symbols
