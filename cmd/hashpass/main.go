package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"seatq/shared/logger"
	"seatq/shared/password"

	"github.com/rs/zerolog/log"
)

// Reads the admin password from stdin and prints the value for ADMIN_PASSWORD_HASH.
func main() {
	logger.InitLogger()

	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && line == "" {
		log.Fatal().Err(err).Msg("Failed to read password from stdin")
	}

	hash, err := password.Hash(strings.TrimRight(line, "\r\n"))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to hash password")
	}

	fmt.Println(hash)
}
