package main

import (
	"log"
	"os"
)

func run() error {
	return nil
}

func helper() {
	os.Exit(3) // want `call to os.Exit terminates the process outside main.main`
}

type app struct{}

func (app) main() {
	log.Fatalln("method named main") // want `call to log.Fatalln terminates the process outside main.main`
}

func main() {
	if err := run(); err != nil {
		log.Fatalf("failed: %v", err)
	}
	helper()
	app{}.main()
	os.Exit(0)
}
