// Package zen decodes the container-side records of cooked Zen packages:
// the package summary, export bundle entries, and dependency bundles that
// surround unversioned property data.
//
// A Zen package stores no property schemas of its own. Packages cooked
// with PKG_UnversionedProperties can only be interpreted against a
// mappings file, which is why these records live next to the usmap
// decoder: MappedName values render through the same instance-number
// convention the mappings name table uses.
//
// The summary layout changed in UE 5.3: the graph-data offset was
// replaced by dependency-bundle and imported-package-name offsets.
// Callers state the revision explicitly; nothing here guesses engine
// versions from bytes.
package zen
