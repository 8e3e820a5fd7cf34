package metadata

type descriptionKind int

const (
	descriptionNone descriptionKind = iota
	descriptionText
	descriptionLocation
)

// Description holds the description of a software package: either embedded
// text, or the location of a file the text should be read from. The zero
// value means no description.
type Description struct {
	kind      descriptionKind
	text      string
	path      string
	skipStart uint16
	skipEnd   uint16
}

// DescriptionText creates a description with embedded text.
func DescriptionText(text string) Description {
	return Description{kind: descriptionText, text: text}
}

// DescriptionLocation creates a description deferring to an external file.
// skipStart lines are skipped from the start of the file and skipEnd lines
// are ignored at the end; the loader reading the file is responsible for
// applying them.
func DescriptionLocation(path string, skipStart, skipEnd uint16) Description {
	return Description{kind: descriptionLocation, path: path, skipStart: skipStart, skipEnd: skipEnd}
}

// IsNone reports whether no description is set.
func (d Description) IsNone() bool {
	return d.kind == descriptionNone
}

// Text returns the embedded description text, and whether the description is
// the text variant.
func (d Description) Text() (string, bool) {
	return d.text, d.kind == descriptionText
}

// Location returns the file path and skip counts, and whether the description
// is the location variant.
func (d Description) Location() (path string, skipStart, skipEnd uint16, ok bool) {
	return d.path, d.skipStart, d.skipEnd, d.kind == descriptionLocation
}
