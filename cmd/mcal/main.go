package main

import (
	"os"

	"github.com/janeyeyey/mcal/internal/app"
)

// Overridden at release time with -ldflags.
var (
	version = ""
	commit  = ""
	date    = ""
)

func main() {
	app.SetBuildInfo(version, commit, date)
	os.Exit(app.Execute())
}
