package main

import "github.com/clydenvis-afk/nutriaitracker/cmd/nutri"

func main() {
	nutri.Execute()
}
