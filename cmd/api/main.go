package main

import (
	"growthprojection/cmd"
	"growthprojection/internal/util"
	"log"
	"os"
)

func main() {
	cfg, err := util.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}
	apiHandler, err := cmd.InitializeDependenciesFromConfig(*cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer cmd.CloseDependencies(apiHandler)

	apiHandler.Logger.Infow("starting api", "port", cfg.Server.Port, "commitHash", os.Getenv("commit_hash"))
	err = apiHandler.StartApi(cfg.Server.Port)
	if err != nil {
		apiHandler.Logger.Errorw("api stopped", "error", err)
	}
}
