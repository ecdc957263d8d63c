package rabbitmq

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/getsentry/sentry-go"
	"github.com/labstack/gommon/log"
	"github.com/moneybook/moneybook.go/db/models"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/ziflex/lecho/v3"
)

// bufPool is a classic buffer pool pattern that allows more clever reuse of heap memory.
// Instead of allocating new memory everytime we need to encode an event we
// reuse buffers from this buffer pool. If we consume events sequentially there will
// only be one buffer in this pool at all times, but when scaling to multiple go
// routines this memory pool will scale with it.
var bufPool = sync.Pool{
	New: func() interface{} { return new(bytes.Buffer) },
}

const (
	contentTypeJSON = "application/json"
)

// TransactionEvent is the payload published whenever a transaction is
// created, updated or deleted.
type TransactionEvent struct {
	Event       string              `json:"event"`
	Transaction *models.Transaction `json:"transaction"`
}

type (
	SubscribeToTransactionsFunc = func() (chan TransactionEvent, error)
	EncodeTransactionEventFunc  = func(ctx context.Context, w io.Writer, event TransactionEvent) error
)

type Client interface {
	StartPublishTransactions(context.Context, SubscribeToTransactionsFunc, EncodeTransactionEventFunc) error
	// Close will close all connections to rabbitmq
	Close() error
}

type DefaultClient struct {
	conn *amqp.Connection

	publishChannel *amqp.Channel

	logger *lecho.Logger

	txExchange string
}

type ClientOption = func(client *DefaultClient)

func WithTxExchange(exchange string) ClientOption {
	return func(client *DefaultClient) {
		client.txExchange = exchange
	}
}

func WithLogger(logger *lecho.Logger) ClientOption {
	return func(client *DefaultClient) {
		client.logger = logger
	}
}

// Dial sets up a connection to rabbitmq with a channel that is ready to publish
func Dial(uri string, options ...ClientOption) (Client, error) {
	conn, err := amqp.Dial(uri)
	if err != nil {
		return nil, err
	}

	publishChannel, err := conn.Channel()
	if err != nil {
		return nil, err
	}

	client := &DefaultClient{
		conn: conn,

		publishChannel: publishChannel,

		logger: lecho.New(
			os.Stdout,
			lecho.WithLevel(log.DEBUG),
			lecho.WithTimestamp(),
		),

		txExchange: "moneybook_transactions",
	}

	for _, opt := range options {
		opt(client)
	}

	return client, nil
}

func (client *DefaultClient) Close() error { return client.conn.Close() }

func (client *DefaultClient) StartPublishTransactions(ctx context.Context, subscribeFunc SubscribeToTransactionsFunc, payloadFunc EncodeTransactionEventFunc) error {
	err := client.publishChannel.ExchangeDeclare(
		client.txExchange,
		// topic is a type of exchange that allows routing messages to different queue's bases on a routing key
		"topic",
		// Durable and Non-Auto-Deleted exchanges will survive server restarts and remain
		// declared when there are no remaining bindings.
		true,
		false,
		// Non-Internal exchange's accept direct publishing
		false,
		// Nowait: We set this to false as we want to wait for a server response
		// to check whether the exchange was created succesfully
		false,
		nil,
	)
	if err != nil {
		return err
	}

	client.logger.Info("Starting rabbitmq publisher")

	events, err := subscribeFunc()
	if err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return context.Canceled
		case event := <-events:
			err = client.publishToTxExchange(ctx, event, payloadFunc)

			if err != nil {
				captureErr(client.logger, err)
			}
		}
	}
}

func (client *DefaultClient) publishToTxExchange(ctx context.Context, event TransactionEvent, payloadFunc EncodeTransactionEventFunc) error {
	payload := bufPool.Get().(*bytes.Buffer)
	payload.Reset()
	defer bufPool.Put(payload)

	err := payloadFunc(ctx, payload, event)
	if err != nil {
		return err
	}

	key := fmt.Sprintf("%s.%s", event.Event, event.Transaction.Type)

	err = client.publishChannel.PublishWithContext(ctx,
		client.txExchange,
		key,
		false,
		false,
		amqp.Publishing{
			ContentType: contentTypeJSON,
			Body:        payload.Bytes(),
		},
	)
	if err != nil {
		captureErr(client.logger, err)
		return err
	}

	client.logger.Debugf("Successfully published transaction %d to rabbitmq", event.Transaction.ID)

	return nil
}

func captureErr(logger *lecho.Logger, err error) {
	logger.Error(err)
	sentry.CaptureException(err)
}
