package main

import "github.com/JakeMartin-ICL/steam-storage-optimiser/cmd"

func main() {
	cmd.Execute()
}
