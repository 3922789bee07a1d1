package main

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/spaceacademy/backoffice/core/auth"
)

// hashPassword checks the prompted password against the password policy and
// prints a bcrypt hash suitable for the ADMIN_PASSWORD_HASH variable.
func (cli *commandLine) hashPassword(pwd string) error {
	if err := auth.CheckPasswordStrength(pwd, cli.conf.Admin.Email); err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	fmt.Println(string(hash))
	return nil
}
