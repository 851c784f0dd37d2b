package utils

import (
	"encoding/json"
	"log"
	"time"

	"github.com/streadway/amqp"

	"shopcore/initializers"
)

// Routing keys for lifecycle events published to the topic exchange.
const (
	EventOrderCreated        = "order.created"
	EventShipmentTransition  = "shipment.transitioned"
	EventCancellationDecided = "cancellation.decided"
	EventTransactionPosted   = "ledger.transaction.posted"
)

// PublishEvent sends a lifecycle event to the broker. Event delivery is
// best-effort and must never fail the originating request, so errors are
// logged and swallowed.
func PublishEvent(routingKey string, payload interface{}) {
	if initializers.BrokerChannel == nil {
		return
	}

	body, err := json.Marshal(payload)
	if err != nil {
		log.Println("Failed to encode event payload: ", err)
		return
	}

	err = initializers.BrokerChannel.Publish(initializers.EventExchange, routingKey, false, false, amqp.Publishing{
		ContentType: "application/json",
		Timestamp:   time.Now().UTC(),
		Body:        body,
	})
	if err != nil {
		log.Println("Failed to publish event: ", err)
	}
}
