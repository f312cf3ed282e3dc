//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/yanqian/leetlens/internal/bootstrap"
	"github.com/yanqian/leetlens/internal/domain/analysis"
	"github.com/yanqian/leetlens/internal/domain/profile"
	"github.com/yanqian/leetlens/internal/domain/visitlog"
	"github.com/yanqian/leetlens/internal/infra/config"
	"github.com/yanqian/leetlens/internal/infra/leetcode"
	"github.com/yanqian/leetlens/internal/infra/llm/tokenizer"
	httpiface "github.com/yanqian/leetlens/internal/interface/http"
	"github.com/yanqian/leetlens/pkg/logger"
	"github.com/yanqian/leetlens/pkg/metrics"
)

func initializeApp() (*bootstrap.App, error) {
	wire.Build(
		config.Load,
		logger.New,
		metrics.NewRecorder,
		provideProfileConfig,
		provideAnalysisConfig,
		provideLeetCodeClient,
		provideChatClients,
		provideProfileStore,
		provideLogStore,
		provideAttemptLogger,
		provideVisitRepository,
		tokenizer.New,
		profile.NewService,
		analysis.NewService,
		visitlog.NewService,
		wire.Bind(new(profile.Fetcher), new(*leetcode.Client)),
		wire.Bind(new(analysis.TokenCounter), new(*tokenizer.Estimator)),
		httpiface.NewHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil
}
