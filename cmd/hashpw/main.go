// Command hashpw prompts for a password and prints its bcrypt hash, suitable
// for LIBRARYLITE_ADMIN_PASSWORD_HASH.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/dmitrijs2005/librarylite/internal/server/auth"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/term"
)

// readPassword is a test seam for term.ReadPassword.
var readPassword = term.ReadPassword

func main() {
	cost := flag.Int("k", bcrypt.DefaultCost, "bcrypt cost")
	flag.Parse()

	if err := run(os.Stderr, os.Stdout, int(os.Stdin.Fd()), *cost); err != nil {
		log.Fatalf("%v", err)
	}
}

func run(prompt, out io.Writer, fd, cost int) error {
	hasher, err := auth.NewPasswordHasher(cost)
	if err != nil {
		return err
	}

	first, err := ask(prompt, fd, "Enter password: ")
	if err != nil {
		return err
	}
	second, err := ask(prompt, fd, "Repeat password: ")
	if err != nil {
		return err
	}
	if string(first) != string(second) {
		return errors.New("passwords do not match")
	}

	hash, err := hasher.Hash(string(first))
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, hash)
	return err
}

func ask(w io.Writer, fd int, prompt string) ([]byte, error) {
	if _, err := fmt.Fprint(w, prompt); err != nil {
		return nil, err
	}
	pw, err := readPassword(fd)
	fmt.Fprintln(w)
	if err != nil {
		return nil, err
	}
	return pw, nil
}
