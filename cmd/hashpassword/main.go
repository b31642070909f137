// Command hashpassword reads the admin password from stdin and prints the
// bcrypt hash expected in ADMIN_PASSWORD_HASH.
package main

import (
	"fmt"
	"os"

	"github.com/MinhMaxx/personal-website-backend/internal/service"

	"github.com/sirupsen/logrus"
)

func main() {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)

	hash, err := hashPassword(os.Stdin, service.BcryptPasswordHasher{})
	if err != nil {
		logger.WithError(err).Fatal("hashing password")
	}
	fmt.Println(hash)
}
