//go:build ignore

// Prints the SQL that provisions the admin credential.
//
//	go run scripts/provision-admin.go [-username admin] [-password secret]
//
// Without -password the row gets a placeholder hash and the first visitor of
// the admin panel sets the password through init-password.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

const placeholderHashPrefix = "$placeholder$"

func main() {
	username := flag.String("username", "admin", "admin username (case-sensitive)")
	password := flag.String("password", "", "initial password; leave empty to require init-password")
	flag.Parse()

	hash := placeholderHashPrefix + "provisioned"
	if *password != "" {
		if len(*password) < 6 {
			fmt.Fprintln(os.Stderr, "Error: password must be at least 6 characters")
			os.Exit(1)
		}
		h, err := bcrypt.GenerateFromPassword([]byte(*password), 12)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		hash = string(h)
	}

	fmt.Printf(
		"INSERT INTO admin_credentials (username, password_hash) VALUES ('%s', '%s')\n"+
			"ON CONFLICT (username) DO UPDATE SET password_hash = EXCLUDED.password_hash, updated_at = NOW();\n",
		quote(*username), quote(hash),
	)
}

func quote(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
