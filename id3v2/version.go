package id3v2

import "fmt"

// Version identifies an ID3 tag version. Major is the ID3v2 major version
// (2, 3 or 4); the special value V11 stands in for an ID3v1.1 trailer when a
// file carries no v2 tag at all.
type Version struct {
	Major    uint8
	Revision uint8
}

var (
	V11 = Version{Major: 1, Revision: 1}
	V22 = Version{Major: 2}
	V23 = Version{Major: 3}
	V24 = Version{Major: 4}
)

// AtLeast reports whether v is the same major version as o or newer.
func (v Version) AtLeast(o Version) bool { return v.Major >= o.Major }

// Less reports whether v is an older major version than o.
func (v Version) Less(o Version) bool { return v.Major < o.Major }

func (v Version) String() string {
	if v.Major < 2 {
		return "ID3v1.1"
	}
	return fmt.Sprintf("ID3v2.%d.%d", v.Major, v.Revision)
}
