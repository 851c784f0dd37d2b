package initializers

import (
	"log"

	"github.com/streadway/amqp"
)

const EventExchange = "shopcore.events"

var (
	BrokerConn    *amqp.Connection
	BrokerChannel *amqp.Channel
)

// ConnectBroker opens the AMQP connection and declares the topic exchange
// order/shipment lifecycle events are published to.
func ConnectBroker(config *Config) {
	var err error
	BrokerConn, err = amqp.Dial(config.AmqpUri)
	if err != nil {
		log.Fatal("Failed to connect to the message broker: ", err)
	}

	BrokerChannel, err = BrokerConn.Channel()
	if err != nil {
		log.Fatal("Failed to open a broker channel: ", err)
	}

	err = BrokerChannel.ExchangeDeclare(EventExchange, "topic", true, false, false, false, nil)
	if err != nil {
		log.Fatal("Failed to declare the event exchange: ", err)
	}

	log.Println("Connected to the message broker")
}
