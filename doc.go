// Package id3kit reads and writes ID3 tags.
//
// id3kit handles ID3v2.2, v2.3 and v2.4 tags plus the legacy ID3v1
// trailer, with an API that makes simple things simple and the odd
// corners of the format reachable.
//
// # Quick Start
//
// Reading tags:
//
//	file, err := id3kit.Open("song.mp3")
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer file.Close()
//
//	fmt.Printf("%s - %s\n", file.Artist(), file.Title())
//
// Editing and saving in place:
//
//	file.SetTitle("New Title")
//	if err := file.Save(); err != nil {
//		log.Fatal(err)
//	}
//
// # Philosophy
//
// Tag data in the wild is messy: truncated frames, wrong size encodings,
// doubled byte order marks, unsynchronization flags on data that was
// never unsynchronized. id3kit reads what can be read, drops what
// cannot, and reports oddities in File.Warnings instead of failing.
// WithStrictParsing turns structural oddities into errors for callers
// that want validation.
//
// # Architecture
//
// The library is layered:
//
//	[File]            - Entry point with Open(), Save(), Delete()
//	  ├─ [id3v2.Tags] - The parsed frames, ordered and keyed
//	  ├─ [Artwork]    - Attached pictures (APIC)
//	  └─ [Chapter]    - Chapter frames (CHAP/CTOC)
//
// The id3v2 subpackage is usable on its own for callers that need frame
// level control: custom registries, raw frame construction, version
// conversion. The id3v1 subpackage handles the 128-byte trailer.
//
// # Versions
//
// Frames load into their ID3v2.4 form by default, regardless of the tag
// version on disk; v2.2 IDs are upgraded and deprecated frames like TYER
// are converted (WithoutTranslation disables this). Saving targets v2.4
// or, with WithV2Version(id3v2.V23), v2.3.
//
// # Error Handling
//
// Fatal errors (file not found, malformed header) are returned from
// Open; non-fatal issues are collected:
//
//	if len(file.Warnings) > 0 {
//		for _, w := range file.Warnings {
//			log.Printf("warning: %s", w.Message)
//		}
//	}
package id3kit
