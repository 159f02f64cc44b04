// Command hashpw prints the Argon2id hash expected in ADMIN_PASSWORD_HASH.
//
//	hashpw 'my password'
//	echo 'my password' | hashpw
package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"support-chat/auth"
)

const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

func main() {
	code, err := run(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "hashpw: %v\n", err)
	}
	os.Exit(code)
}

func run(args []string) (int, error) {
	password, err := readPassword(args)
	if err != nil {
		return exitConfig, err
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return exitRuntime, err
	}
	fmt.Println(hash)
	return exitOK, nil
}

func readPassword(args []string) (string, error) {
	if len(args) > 1 {
		return "", fmt.Errorf("expected one password argument, got %d", len(args))
	}
	if len(args) == 1 {
		return requireNonEmpty(args[0])
	}
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("no password on stdin: %w", err)
	}
	return requireNonEmpty(strings.TrimRight(line, "\r\n"))
}

func requireNonEmpty(password string) (string, error) {
	if password == "" {
		return "", fmt.Errorf("password is empty")
	}
	return password, nil
}
