package app

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pmi-competition/portal-api/internal/api"
	"github.com/pmi-competition/portal-api/internal/config"
	"github.com/pmi-competition/portal-api/internal/db"
	"github.com/pmi-competition/portal-api/internal/logger"
	"github.com/pmi-competition/portal-api/internal/payment"
	"github.com/pmi-competition/portal-api/internal/service"
	"github.com/pmi-competition/portal-api/internal/sheets"
)

func Start() error {
	conf, err := config.Load("./cmd/app/config.yml")
	if err != nil {
		return fmt.Errorf("failed to initialize config -> %w", err)
	}

	if err = logger.Init(conf.API.Environment); err != nil {
		return fmt.Errorf("failed to initialize logger -> %w", err)
	}

	dbURL := os.Getenv("DATABASE_URL")
	var postgresDB *gorm.DB
	if dbURL != "" {
		postgresDB, err = db.OpenPostgresWithURL(dbURL)
	} else {
		postgresDB, err = db.OpenPostgres(conf.Postgres)
	}
	if err != nil {
		return fmt.Errorf("failed to initialize database -> %w", err)
	}

	gateway, err := payment.NewGateway(conf.Payment, conf.API.PublicURL)
	if err != nil {
		return fmt.Errorf("failed to initialize payment gateway -> %w", err)
	}
	zap.L().Info("payment gateway ready", zap.String("provider", gateway.Name()))

	var exporter service.Exporter
	if conf.Sheets != nil && conf.Sheets.Enabled {
		client, err := sheets.New(context.Background(), conf.Sheets.CredentialsFile, conf.Sheets.SpreadsheetID)
		if err != nil {
			return fmt.Errorf("failed to initialize sheets client -> %w", err)
		}
		exporter = client
	}

	s := api.NewServer(conf, postgresDB, gateway, exporter)

	addr := ":" + s.Config.API.Port
	zap.L().Info(fmt.Sprintf("starting server at %v", addr))
	if err = s.Router.Run(addr); err != nil {
		return fmt.Errorf("failed to start the server -> %w", err)
	}

	return nil
}
