package main

import (
	"context"
	"encoding/json"
	"log"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/joho/godotenv"
	"github.com/perkwise/token-ledger/pkg/notify"
)

var sender *notify.WebhookSender

func init() {
	// Load environment variables from .env file (useful for local testing).
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	webhookURL := os.Getenv("NOTIFY_WEBHOOK_URL")
	if webhookURL == "" {
		log.Fatal("NOTIFY_WEBHOOK_URL environment variable not set")
	}
	sender = notify.NewWebhookSender(webhookURL)
}

// HandleRequest delivers transfer-completed events to the mail gateway.
// Delivery is decoupled from the ledger: a failure here is retried by SQS and
// never touches the committed transfer.
func HandleRequest(ctx context.Context, sqsEvent events.SQSEvent) error {
	for _, message := range sqsEvent.Records {
		log.Printf("Processing message %s", message.MessageId)

		var event notify.TransferEvent
		if err := json.Unmarshal([]byte(message.Body), &event); err != nil {
			log.Printf("ERROR: failed to unmarshal transfer event from SQS message %s: %v", message.MessageId, err)
			// Returning an error will cause SQS to retry the message.
			return err
		}

		if err := sender.Send(ctx, &event); err != nil {
			log.Printf("ERROR: failed to deliver notification for transaction %s: %v", event.TransactionId, err)
			// Persistent failures end up in the DLQ, not in the ledger.
			return err
		}

		log.Printf("Delivered notification for transaction %s", event.TransactionId)
	}

	return nil
}

func main() {
	lambda.Start(HandleRequest)
}
