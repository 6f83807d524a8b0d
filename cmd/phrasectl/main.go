package main

import "github.com/bartekmp/osmosmjerka-sub000/internal/cli"

// Set by -ldflags "-X main.version=... -X main.commit=... -X main.date=...".
var (
	version = "dev"
	commit  = ""
	date    = ""
)

func main() {
	cli.SetVersionInfo(version, commit, date)
	cli.Execute()
}
