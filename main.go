package main

import (
	"log"

	"github.com/planwise/planwise/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
