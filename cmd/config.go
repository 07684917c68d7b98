package cmd

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	DashBaseURL string
	DashAPIKey  string

	YDMBaseURL  string
	YDMUsername string
	YDMPassword string

	PickNDropBaseURL      string
	PickNDropClientID     string
	PickNDropClientSecret string

	// CarrierPollSchedule is a six-field cron expression for the status poller.
	CarrierPollSchedule string

	// SystemActorID is the UUID attributed to status changes made by webhooks
	// and the poller, which carry no authenticated operator.
	SystemActorID string
}
