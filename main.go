package main

import (
	"os"

	"github.com/rs/zerolog/log"
)

func main() {
	err := newRootCmd().Execute()
	if err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}
