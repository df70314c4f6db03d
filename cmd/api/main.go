package main

import (
	"commodityforecast/cmd"
	"commodityforecast/internal/logger"
	"os"
)

func main() {
	log := logger.New()
	log.Infow("starting api", "commitHash", os.Getenv("commit_hash"))

	apiHandler, err := cmd.InitializeDependencies("")
	if err != nil {
		log.Fatal(err)
	}
	defer cmd.CloseDependencies(apiHandler)

	port, err := cmd.Port("")
	if err != nil {
		log.Fatal(err)
	}
	err = apiHandler.StartApi(port)
	if err != nil {
		log.Fatal(err)
	}
}
