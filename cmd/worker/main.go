package main

import (
	"consultation-booking/cmd/bootstrap"

	"github.com/sirupsen/logrus"
)

func main() {
	app, err := bootstrap.NewWorker()
	if err != nil {
		logrus.Fatalf("Failed to initialize worker: %v", err)
	}

	app.RunWorker()
}
