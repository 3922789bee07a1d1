package main

import (
	"errors"
	"flag"
	"fmt"
	"syscall"

	"golang.org/x/term"

	"github.com/spaceacademy/backoffice/core"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	conf *core.Config
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  hashpassword - hash the admin password for ADMIN_PASSWORD_HASH. The password will be prompted next.")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	hashPasswordCmd := flag.NewFlagSet("hashpassword", flag.ExitOnError)

	switch args[1] {
	case "hashpassword":
		if err := hashPasswordCmd.Parse(args[2:]); err != nil {
			return err
		}
		fmt.Print("Enter password:")
		pwd, err := readPasswordFunc(syscall.Stdin)
		fmt.Println()
		if err != nil {
			return err
		}
		if len(pwd) == 0 {
			cli.printUsage()
			return errHelp
		}
		return cli.hashPassword(string(pwd))
	default:
		cli.printUsage()
		return errHelp
	}
}
