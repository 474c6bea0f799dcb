// SPDX-License-Identifier: GPL-3.0-only

package notifications

import (
	"encoding/json"
	"fmt"
	"propman-server/commons"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const eventsExchange = "propman.events"

var (
	brokerMu      sync.Mutex
	brokerConn    *amqp.Connection
	brokerChannel *amqp.Channel
)

// mirrorToBroker publishes the event to the topic exchange with routing
// key notifications.<type>. A missing AMQP_URL disables the mirror.
func mirrorToBroker(event Event) error {
	url := commons.GetEnv("AMQP_URL")
	if url == "" {
		return nil
	}

	brokerMu.Lock()
	defer brokerMu.Unlock()

	if brokerChannel == nil || brokerConn == nil || brokerConn.IsClosed() {
		conn, err := amqp.Dial(url)
		if err != nil {
			return fmt.Errorf("failed to connect to broker: %w", err)
		}
		ch, err := conn.Channel()
		if err != nil {
			conn.Close()
			return fmt.Errorf("failed to open channel: %w", err)
		}
		if err := ch.ExchangeDeclare(eventsExchange, "topic", true, false, false, false, nil); err != nil {
			ch.Close()
			conn.Close()
			return fmt.Errorf("failed to declare exchange: %w", err)
		}
		brokerConn = conn
		brokerChannel = ch
		commons.Logger.Debugf("Connected to message broker, exchange %s", eventsExchange)
	}

	body, err := json.Marshal(map[string]any{
		"type":                event.Type,
		"priority":            event.Priority,
		"title":               event.Title,
		"message":             event.Message,
		"related_object_type": event.RelatedObjectType,
		"related_object_id":   event.RelatedObjectID,
		"published_at":        time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}

	routingKey := "notifications." + string(event.Type)
	if err := brokerChannel.Publish(eventsExchange, routingKey, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now(),
		Body:         body,
	}); err != nil {
		// Drop the channel so the next publish redials.
		brokerChannel.Close()
		brokerConn.Close()
		brokerChannel = nil
		brokerConn = nil
		return fmt.Errorf("failed to publish event: %w", err)
	}

	return nil
}
