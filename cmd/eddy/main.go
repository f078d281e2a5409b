// Command eddy is a CLI front-end over the eddy library: key generation,
// signing, verification and X25519 shared-secret derivation, each over a
// configurable byte encoding.
package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
)

var logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
