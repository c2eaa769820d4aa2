// Command hashpw prints a bcrypt hash for OBSERVER_PASSWORD_HASH. The
// password is taken from the first argument, or from the first line of
// stdin when no argument is given.
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/ukydev/ring-traffic/internal/auth"
)

func readPassword(args []string, in io.Reader) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func hashPassword(password string) (string, error) {
	if err := auth.ValidatePassword(password); err != nil {
		return "", err
	}
	return auth.HashPassword(password)
}

func main() {
	password, err := readPassword(os.Args[1:], os.Stdin)
	if err != nil {
		log.WithError(err).Fatal("No password")
	}
	hash, err := hashPassword(password)
	if err != nil {
		log.WithError(err).Fatal("Cannot hash password")
	}
	fmt.Println(hash)
}
