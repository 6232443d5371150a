package mappings

import (
	"fmt"

	"github.com/google/uuid"
)

// Version identifies a revision of the official mapping file format.
// The unofficial dumper variant reuses version byte zero on the wire and
// is tracked separately on MappingFile.
type Version uint8

const (
	VersionInitial           Version = 0 // first official revision
	VersionPackageVersioning Version = 1 // optional engine-versioning block
	VersionLongFName         Version = 2 // two-byte name lengths
	VersionLargeEnums        Version = 3 // two-byte enum member counts

	// VersionLatestPlusOne is the sentinel one past the newest revision
	// this decoder understands.
	VersionLatestPlusOne Version = 4
)

// String returns the revision name.
func (v Version) String() string {
	switch v {
	case VersionInitial:
		return "Initial"
	case VersionPackageVersioning:
		return "PackageVersioning"
	case VersionLongFName:
		return "LongFName"
	case VersionLargeEnums:
		return "LargeEnums"
	default:
		return fmt.Sprintf("Version(%d)", uint8(v))
	}
}

// ObjectVersion is the UE4 object version stream recorded by files that
// carry package versioning. Zero means the file did not state one.
type ObjectVersion int32

// ObjectVersionUE5 is the UE5 object version stream.
type ObjectVersionUE5 int32

const ObjectVersionUnknown ObjectVersion = 0

const (
	ObjectVersionUE5Unknown ObjectVersionUE5 = 0

	// ObjectVersionUE5InitialVersion is the first value of the UE5 stream.
	ObjectVersionUE5InitialVersion ObjectVersionUE5 = 1000

	// ObjectVersionUE5LargeWorldCoordinates moved core math types to doubles.
	ObjectVersionUE5LargeWorldCoordinates ObjectVersionUE5 = 1004
)

// CustomVersion records one engine subsystem's version: its identifying
// GUID and the version value the dumping build was at.
type CustomVersion struct {
	GUID    uuid.UUID
	Version int32
}
