package main

import (
	"log"
	"os"

	"callcenter/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		log.Printf("callcenter: %v", err)
		os.Exit(1)
	}
}
