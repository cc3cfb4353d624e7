// Package gamesystem enumerates the tabletop rulesets a sheet or metadata catalog can belong to.
package gamesystem

// ID identifies a game system. The string value doubles as the discriminator written into
// sheet documents and as the stem of the metadata file name.
type ID string

// Known game systems.
const (
	None       ID = ""
	Changeling ID = "CoD.Changeling"
	Mortal     ID = "CoD.Mortal"
	Fifth      ID = "DnD.Fifth"
)

// metadataFileExtension is the extension appended to an ID to name its metadata document.
const metadataFileExtension = ".ocmd"

// known is the fixed check order used when matching a discriminator.
var known = []ID{Changeling, Mortal, Fifth}

// Known returns every game system in the fixed check order.
//
// Postcondition: Returns a fresh slice; callers may modify it.
func Known() []ID {
	out := make([]ID, len(known))
	copy(out, known)
	return out
}

// Parse matches s exactly against the known game systems.
//
// Postcondition: Returns (id, true) on an exact match, or (None, false) otherwise.
func Parse(s string) (ID, bool) {
	for _, id := range known {
		if string(id) == s {
			return id, true
		}
	}
	return None, false
}

// Valid reports whether id is one of the known game systems.
func (id ID) Valid() bool {
	_, ok := Parse(string(id))
	return ok
}

func (id ID) String() string {
	if id == None {
		return "none"
	}
	return string(id)
}

// MetadataFileName returns the document name holding id's metadata catalog, e.g. "DnD.Fifth.ocmd".
//
// Precondition: id should be Valid; None yields ".ocmd".
func MetadataFileName(id ID) string {
	return string(id) + metadataFileExtension
}
