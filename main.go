package main

import (
	"github.com/joho/godotenv"

	"github.com/apilens/apilens/cmd"
)

func main() {
	_ = godotenv.Load()
	cmd.Execute()
}
