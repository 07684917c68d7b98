package main

import (
	"fmt"
	"log/slog"
	"os"

	"fulfillment/cmd"
	httpin "fulfillment/internal/adapters/in/http"

	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()

	gormDB, err := gorm.Open(postgres.Open(postgresDSN(configs)), &gorm.Config{})
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}

	app, err := cmd.NewCompositionRoot(configs, gormDB)
	if err != nil {
		log.Fatalf("Error building composition root: %v", err)
	}

	if err := app.MigrateDatabase(); err != nil {
		log.Fatalf("Error migrating database: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	jobManager := app.CreateJobManager(configs.CarrierPollSchedule, logger)
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Error starting jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(app.CreateHTTPServer(), configs.HTTPPort)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:              goDotEnvVariable("HTTP_PORT"),
		DBHost:                goDotEnvVariable("DB_HOST"),
		DBPort:                goDotEnvVariable("DB_PORT"),
		DBUser:                goDotEnvVariable("DB_USER"),
		DBPassword:            goDotEnvVariable("DB_PASSWORD"),
		DBName:                goDotEnvVariable("DB_NAME"),
		DBSslMode:             goDotEnvVariable("DB_SSLMODE"),
		DashBaseURL:           goDotEnvVariable("DASH_BASE_URL"),
		DashAPIKey:            goDotEnvVariable("DASH_API_KEY"),
		YDMBaseURL:            goDotEnvVariable("YDM_BASE_URL"),
		YDMUsername:           goDotEnvVariable("YDM_USERNAME"),
		YDMPassword:           goDotEnvVariable("YDM_PASSWORD"),
		PickNDropBaseURL:      goDotEnvVariable("PICKNDROP_BASE_URL"),
		PickNDropClientID:     goDotEnvVariable("PICKNDROP_CLIENT_ID"),
		PickNDropClientSecret: goDotEnvVariable("PICKNDROP_CLIENT_SECRET"),
		CarrierPollSchedule:   goDotEnvVariable("CARRIER_POLL_SCHEDULE"),
		SystemActorID:         goDotEnvVariable("SYSTEM_ACTOR_ID"),
	}
	return config
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func postgresDSN(config cmd.Config) string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		config.DBHost,
		config.DBPort,
		config.DBUser,
		config.DBPassword,
		config.DBName,
		config.DBSslMode,
	)
}

func startWebServer(server *httpin.Server, port string) {
	e := httpin.NewEcho(server)
	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
