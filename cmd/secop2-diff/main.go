package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kingpin"
	godiffpatch "github.com/sourcegraph/go-diff-patch"
)

// secop2-diff compares two CSV exports of the same query, typically snapshots
// taken on different days, and prints a unified diff of the record set.
func main() {
	oldFile := kingpin.Arg("old", "Earlier CSV export").Required().ExistingFile()
	newFile := kingpin.Arg("new", "Later CSV export").Required().ExistingFile()
	kingpin.Parse()

	oldBytes, err := os.ReadFile(*oldFile)
	if err != nil {
		kingpin.Fatalf("%v", err)
	}
	newBytes, err := os.ReadFile(*newFile)
	if err != nil {
		kingpin.Fatalf("%v", err)
	}

	patch := godiffpatch.GeneratePatch(*newFile, string(oldBytes), string(newBytes))
	if patch == "" {
		fmt.Println("No changes.")
		return
	}
	fmt.Print(patch)
}
