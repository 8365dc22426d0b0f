package main

import (
	"context"
	"net/http"
	"truevibe-backend/lib/configutil"
	configlibsql "truevibe-backend/lib/configutil/libsql"
	"truevibe-backend/lib/restyutil"
	"truevibe-backend/lib/scrapers/creatoriq"
	"truevibe-backend/lib/scrapers/creatoriqdom"
	"truevibe-backend/lib/telemetry"
	"truevibe-backend/lib/util/serviceutil"
	"truevibe-backend/services/ingestion"
	"truevibe-backend/services/kolstore"
	kolstoredb "truevibe-backend/services/kolstore/db"
	"truevibe-backend/services/linker"
)

type Config struct {
	Database configlibsql.Struct `json:"database"`
	Port     int                 `json:"port"`
	// bearer token required on every request; empty disables auth
	AccessToken string `json:"access_token"`
	// debug-logs every request and dumps scraper http exchanges to
	// .dev/resty
	Debug bool `json:"debug"`
}

func main() {
	ctx := serviceutil.SignalContext()

	config, err := configutil.ReadConfig[Config]("config.json5")
	if err != nil {
		serviceutil.Fatal("failed to read config", err)
	}
	if config.Port == 0 {
		config.Port = 8470
	}

	database, err := config.Database.OpenDB(kolstoredb.Schema)
	if err != nil {
		serviceutil.Fatal("failed to open database", err)
	}

	telemetry.InitSlog(config.Debug)
	if config.Debug {
		creatoriq.SetRestyInstrumentOutput(restyutil.NewFilesystemOutput(".dev/resty/creatoriq"))
	}

	t, err := telemetry.SetupFromEnv(ctx, "kold")
	if err != nil {
		serviceutil.Fatal("failed to setup telemetry", err)
	}
	defer t.Shutdown(context.Background())
	telemetry.InstrumentPerfStats(ctx)

	store := kolstore.NewService(database)
	api := API{
		store: store,
		ingestion: ingestion.NewService(store, ingestion.Options{
			Scraper: creatoriqdom.NewScraper(creatoriqdom.NewStaticFetcher()),
		}),
		linker: linker.NewService(store),
	}

	mux := http.NewServeMux()
	api.Register(mux)

	authed := http.NewServeMux()
	authed.Handle("/", serviceutil.VerifyAccessToken(config.AccessToken, mux))
	go serviceutil.StartHttpServer(config.Port, authed)

	<-ctx.Done()
}
