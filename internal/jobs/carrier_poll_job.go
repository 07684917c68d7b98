package jobs

import (
	"context"
	"errors"
	"log/slog"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"github.com/robfig/cron/v3"
)

// CarrierPollJob periodically asks every carrier for the current status of
// each in-flight shipment. Webhooks remain the primary channel; the poll
// covers carriers without webhooks and fills gaps after webhook outages.
// A poll that reports the status the order already has is a no-op, so the
// two channels never conflict.
type CarrierPollJob struct {
	inFlight   queries.GetInFlightOrdersQueryHandler
	applyEvent commands.ApplyCarrierEventCommandHandler
	carriers   ports.CarrierResolver
	actorID    kernel.UUID
	schedule   string
	cron       *cron.Cron
	logger     *slog.Logger
}

// NewCarrierPollJob creates the carrier status polling job. Status changes it
// applies are attributed to actorID, the reserved system actor. The schedule
// is a six-field cron expression.
func NewCarrierPollJob(
	inFlight queries.GetInFlightOrdersQueryHandler,
	applyEvent commands.ApplyCarrierEventCommandHandler,
	carriers ports.CarrierResolver,
	actorID kernel.UUID,
	schedule string,
	logger *slog.Logger,
) *CarrierPollJob {
	return &CarrierPollJob{
		inFlight:   inFlight,
		applyEvent: applyEvent,
		carriers:   carriers,
		actorID:    actorID,
		schedule:   schedule,
		cron:       cron.New(cron.WithSeconds()),
		logger:     logger.With("component", "carrier_poll_job"),
	}
}

// Start schedules the polling job.
func (j *CarrierPollJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()

		if err := j.poll(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Carrier poll failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Carrier poll job started", "schedule", j.schedule)
	return nil
}

// Stop stops the polling job.
func (j *CarrierPollJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Carrier poll job stopped")
}

// poll runs one polling pass. A failure on one shipment never blocks the
// rest of the batch; carrier outages are logged as warnings because the next
// pass retries them anyway.
func (j *CarrierPollJob) poll(ctx context.Context) error {
	query, err := queries.NewGetInFlightOrdersQuery()
	if err != nil {
		return err
	}

	shipments, err := j.inFlight.Handle(ctx, query)
	if err != nil {
		return err
	}

	for _, shipment := range shipments {
		if err := j.pollShipment(ctx, shipment); err != nil {
			if errors.Is(err, errs.ErrCarrierUnavailable) {
				j.logger.WarnContext(ctx, "Carrier unreachable, will retry next pass",
					"carrier", shipment.Carrier,
					"trackingCode", shipment.TrackingCode,
					"error", err)
				continue
			}

			j.logger.ErrorContext(ctx, "Shipment poll failed",
				"carrier", shipment.Carrier,
				"trackingCode", shipment.TrackingCode,
				"error", err)
		}
	}

	return nil
}

func (j *CarrierPollJob) pollShipment(
	ctx context.Context, shipment queries.GetInFlightOrdersQueryResponse,
) error {
	client, err := j.carriers.Resolve(shipment.Carrier)
	if err != nil {
		return err
	}

	rawStatus, err := client.Track(ctx, shipment.TrackingCode)
	if err != nil {
		return err
	}

	cmd, err := commands.NewApplyCarrierEventCommand(
		shipment.Carrier, shipment.TrackingCode, rawStatus, "", j.actorID,
	)
	if err != nil {
		return err
	}

	_, err = j.applyEvent.Handle(ctx, cmd)
	return err
}
