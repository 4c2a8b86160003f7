package main

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/dealership-sales-api/infrastructure/database"
	"github.com/vfg2006/dealership-sales-api/infrastructure/repository"
	"github.com/vfg2006/dealership-sales-api/internal/api"
	"github.com/vfg2006/dealership-sales-api/internal/config"
	"github.com/vfg2006/dealership-sales-api/internal/scheduler"
	"github.com/vfg2006/dealership-sales-api/internal/usecases/authenticating"
	"github.com/vfg2006/dealership-sales-api/internal/usecases/selling"
	"github.com/vfg2006/dealership-sales-api/pkg/log"
)

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	logLevel := log.Setup(cfg.App.LogLevel)
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	conn := dbconn(ctx, cfg.Database)

	saleRepo := repository.NewSaleRepository(conn)
	statsRepo := repository.NewSalespersonStatsRepository(conn)

	saleService := selling.NewService(saleRepo)
	authenticator := authenticating.NewService(cfg.Auth)

	statsReconciliationService := scheduler.NewStatsReconciliationService(statsRepo, cfg)

	if err := statsReconciliationService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de conferência de estatísticas")
	} else {
		logrus.Info("Agendador de conferência de estatísticas iniciado com sucesso")
	}

	server, err := api.New(
		cfg,
		saleService,
		authenticator,
		statsReconciliationService,
	)
	if err != nil {
		_ = conn.Close()
		logrus.Fatal(err)
	}
	server.OnShutdown("database", conn.Close)

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// dbconn cria a conexão com o banco configurado em DATABASE_DRIVER
func dbconn(ctx context.Context, dbConfig config.Database) *database.Connection {
	conn, err := database.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).WithField("driver", dbConfig.Driver).Fatal("Erro ao conectar ao banco de dados")
	}

	logrus.WithField("driver", dbConfig.Driver).Info("Conexão com o banco de dados estabelecida com sucesso")
	return conn
}
