package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/wearly/supportbot/internal/intent"
	mongorepo "github.com/wearly/supportbot/internal/repositories/mongo"
	"github.com/wearly/supportbot/internal/utils"
)

type TrainingService interface {
	// Run trains a fresh model from the built-in corpus, writes the artifact
	// to disk and records the evaluation report.
	Run(ctx context.Context) (*intent.Model, *intent.Report, error)
	RecentRuns(ctx context.Context, limit int) ([]mongorepo.TrainingRun, error)
}

type trainingService struct {
	trainer      *intent.Trainer
	artifactPath string
	runs         mongorepo.TrainingRunRepo // nil when mongo is not configured
	log          *logrus.Logger
}

func NewTrainingService(artifactPath string, runs mongorepo.TrainingRunRepo, log *logrus.Logger) TrainingService {
	if log == nil {
		log = logrus.New()
	}
	return &trainingService{
		trainer:      intent.NewTrainer(),
		artifactPath: artifactPath,
		runs:         runs,
		log:          log,
	}
}

func (s *trainingService) Run(ctx context.Context) (*intent.Model, *intent.Report, error) {
	const op = "TrainingService.Run"

	started := time.Now()
	model, report, err := s.trainer.Train()
	if err != nil {
		return nil, nil, utils.E(utils.CodeInternal, op, "training failed", err)
	}

	if err := model.Save(s.artifactPath); err != nil {
		return nil, nil, utils.E(utils.CodeInternal, op, "failed to save model artifact", err)
	}

	s.log.WithFields(logrus.Fields{
		"accuracy":   report.Accuracy,
		"train_size": report.TrainSize,
		"test_size":  report.TestSize,
		"vocabulary": report.VocabularySize,
		"took":       time.Since(started).String(),
		"artifact":   s.artifactPath,
	}).Info("training run complete")

	if s.runs != nil {
		run := &mongorepo.TrainingRun{
			RunID:          uuid.NewString(),
			Accuracy:       report.Accuracy,
			PerClass:       report.PerClass,
			TrainSize:      report.TrainSize,
			TestSize:       report.TestSize,
			VocabularySize: report.VocabularySize,
			ArtifactPath:   s.artifactPath,
			CreatedAt:      time.Now().UTC(),
		}
		if err := s.runs.Insert(ctx, run); err != nil {
			// report persistence is best effort; the artifact is already saved
			s.log.WithError(err).Warn("failed to record training run")
		}
	}
	return model, report, nil
}

func (s *trainingService) RecentRuns(ctx context.Context, limit int) ([]mongorepo.TrainingRun, error) {
	const op = "TrainingService.RecentRuns"

	if s.runs == nil {
		return nil, utils.E(utils.CodeUnavailable, op, "training run store is not configured", nil)
	}
	rows, err := s.runs.ListRecent(ctx, limit)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list training runs", err)
	}
	return rows, nil
}
