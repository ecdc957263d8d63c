package service

import (
	"context"
	"encoding/json"
	"io"
	"time"

	"github.com/labstack/gommon/random"
	"github.com/moneybook/moneybook.go/db/models"
	"github.com/moneybook/moneybook.go/lib/filestore"
	"github.com/moneybook/moneybook.go/rabbitmq"
	"github.com/uptrace/bun"
	"github.com/ziflex/lecho/v3"
)

const alphaNumBytes = random.Alphanumeric

// MoneybookService carries the shared dependencies of every request
// handler: config, database, logger, blob store and the optional event
// publisher.
type MoneybookService struct {
	Config         *Config
	DB             *bun.DB
	Logger         *lecho.Logger
	FileStore      filestore.Store
	RabbitMQClient rabbitmq.Client

	// TransactionEvents feeds the rabbitmq publisher. Nil when no broker
	// is configured.
	TransactionEvents chan rabbitmq.TransactionEvent
}

// TimeLocation resolves the configured time zone. Dates and month
// boundaries are interpreted in this zone everywhere, so a transaction
// never lands in a different dashboard cell than the one its filter
// range selects. An empty or unknown zone means UTC.
func (svc *MoneybookService) TimeLocation() *time.Location {
	loc, err := time.LoadLocation(svc.Config.TimeZone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// SubscribeToTransactionEvents hands the publisher its event source.
func (svc *MoneybookService) SubscribeToTransactionEvents() (chan rabbitmq.TransactionEvent, error) {
	return svc.TransactionEvents, nil
}

// EncodeTransactionEvent writes the wire payload for one event.
func (svc *MoneybookService) EncodeTransactionEvent(ctx context.Context, w io.Writer, event rabbitmq.TransactionEvent) error {
	return json.NewEncoder(w).Encode(event)
}

// publishTransactionEvent schedules an event for the rabbitmq publisher
// without ever blocking the request path. Events are dropped when the
// buffer is full or no broker is configured.
func (svc *MoneybookService) publishTransactionEvent(event string, transaction *models.Transaction) {
	if svc.TransactionEvents == nil {
		return
	}
	select {
	case svc.TransactionEvents <- rabbitmq.TransactionEvent{Event: event, Transaction: transaction}:
	default:
		svc.Logger.Warnf("Event buffer full, dropping %s for transaction %d", event, transaction.ID)
	}
}
