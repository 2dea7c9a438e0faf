package main

import (
	"fmt"
	"os"

	"github.com/simonhull/id3kit"
)

// Dumps every frame of a file, useful to confirm what a tagger actually
// wrote.
func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: id3dump <file.mp3>")
		os.Exit(1)
	}

	for _, path := range os.Args[1:] {
		file, err := id3kit.Open(path, id3kit.WithoutTranslation())
		if err != nil {
			fmt.Printf("%s: %v\n", path, err)
			continue
		}

		fmt.Printf("== %s (%s, %d bytes", path, file.Version, file.Size)
		if file.Header != nil {
			fmt.Printf(", %d bytes padding", file.Padding)
		}
		fmt.Println(")")

		for _, frame := range file.Tags.Frames() {
			fmt.Printf("  %s\n", frame)
		}
		for _, raw := range file.Tags.UnknownFrames() {
			if len(raw) >= 4 {
				fmt.Printf("  %s=<%d bytes, unparsed>\n", raw[:4], len(raw))
			}
		}
		for _, w := range file.Warnings {
			fmt.Printf("  warning (%s): %s\n", w.Stage, w.Message)
		}

		file.Close()
	}
}
