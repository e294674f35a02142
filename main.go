package main

import (
	"os"

	"github.com/authgate/authgate/app"
)

func main() {
	err := app.Execute()
	if err != nil {
		os.Exit(1)
	}
}
