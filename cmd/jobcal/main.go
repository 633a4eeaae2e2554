package main

import "github.com/pfrederiksen/jobcal/internal/cli"

func main() {
	cli.Execute()
}
