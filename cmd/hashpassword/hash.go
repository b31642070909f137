package main

import (
	"bufio"
	"errors"
	"io"
	"strings"

	"github.com/MinhMaxx/personal-website-backend/internal/service"
)

// minPasswordLength matches the login validation rule.
const minPasswordLength = 8

var errPasswordTooShort = errors.New("password must be at least 8 characters")

// hashPassword hashes the first line of r.
func hashPassword(r io.Reader, hasher service.PasswordHasher) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	password := strings.TrimRight(line, "\r\n")
	if len(password) < minPasswordLength {
		return "", errPasswordTooShort
	}
	return hasher.Hash(password)
}
