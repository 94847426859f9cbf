package main

import (
	"log"

	"github.com/advisor-kit/agent-advisor/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
