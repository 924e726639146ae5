package main

import (
	"os"

	"github.com/klabast/wb-services/afval-ical/internal/commands"
)

func main() {
	os.Exit(commands.Execute())
}
