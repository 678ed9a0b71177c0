package main

import (
	"context"
	"flag"
	"fmt"
	"sort"

	"github.com/joho/godotenv"

	"github.com/wearly/supportbot/config"
	"github.com/wearly/supportbot/internal/logger"
	mongorepo "github.com/wearly/supportbot/internal/repositories/mongo"
	"github.com/wearly/supportbot/internal/services"
)

func main() {
	_ = godotenv.Load()
	log := logger.New()

	artifact := flag.String("out", "models/intent_model.json", "path of the model artifact to write")
	flag.Parse()

	// Mongo is optional: without it the run report is just printed.
	var runs mongorepo.TrainingRunRepo
	if client, err := config.NewMongo(); err != nil {
		log.WithError(err).Warn("mongo unavailable, training run will not be recorded")
	} else {
		runs, err = mongorepo.NewTrainingRunRepo(client, config.MongoDBName())
		if err != nil {
			log.WithError(err).Warn("training run store init failed")
		}
	}

	svc := services.NewTrainingService(*artifact, runs, log)
	_, report, err := svc.Run(context.Background())
	if err != nil {
		log.WithError(err).Fatal("training failed")
	}

	fmt.Printf("accuracy: %.3f  (train=%d test=%d vocabulary=%d)\n",
		report.Accuracy, report.TrainSize, report.TestSize, report.VocabularySize)

	classes := make([]string, 0, len(report.PerClass))
	for c := range report.PerClass {
		classes = append(classes, c)
	}
	sort.Strings(classes)
	for _, c := range classes {
		m := report.PerClass[c]
		fmt.Printf("%-16s precision=%.3f recall=%.3f f1=%.3f support=%d\n",
			c, m.Precision, m.Recall, m.F1, m.Support)
	}
	fmt.Printf("artifact written to %s\n", *artifact)
}
