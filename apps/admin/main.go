package main

import (
	"log"
	"os"

	"github.com/spaceacademy/backoffice/core"
)

var logger *log.Logger

func main() {
	defer os.Exit(0)

	logger = log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	rootDir, err := os.Getwd()
	if err != nil {
		logger.Fatal(err)
	}
	conf := core.NewConfig(rootDir)

	// start CLI
	cli := commandLine{conf: conf}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}
