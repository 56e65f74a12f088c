package queue

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// StartTicketConsumer connects to RabbitMQ, declares the durable
// ticket.issued queue and consumes it forever, appending each event to
// logs/ticket.log in a single-line format. It runs a reconnect loop with
// exponential backoff; processing errors reject the offending message
// without requeueing so the server keeps operating.
func StartTicketConsumer() error {
	url := brokerURL()

	backoff := time.Second
	for {
		conn, err := amqp.Dial(url)
		if err != nil {
			log.Printf("ticket-consumer: failed to dial broker: %v; retrying in %s", err, backoff)
			time.Sleep(backoff)
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second // reset after successful connect

		if err := consumeLoop(conn); err != nil {
			log.Printf("ticket-consumer: consume loop ended: %v; reconnecting", err)
			time.Sleep(2 * time.Second)
		}
	}
}

func consumeLoop(conn *amqp.Connection) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(50, 0, false); err != nil {
		log.Printf("ticket-consumer: set QoS failed: %v", err)
	}

	if _, err := ch.QueueDeclare(ticketQueueName, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}

	msgs, err := ch.Consume(ticketQueueName, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}

	for d := range msgs {
		if err := handleMessage(d.Body); err != nil {
			log.Printf("ticket-consumer: handle message failed: %v", err)
			_ = d.Nack(false, false) // reject, do not requeue to avoid tight loops
			continue
		}
		_ = d.Ack(false)
	}
	return errors.New("deliveries channel closed")
}

func handleMessage(body []byte) error {
	var ev TicketIssuedEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}
	if err := os.MkdirAll("logs", 0o755); err != nil {
		return fmt.Errorf("mkdir logs: %w", err)
	}
	fpath := filepath.Join("logs", "ticket.log")
	f, err := os.OpenFile(fpath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()

	seats := "[]"
	if len(ev.SeatLabels) > 0 {
		seats = fmt.Sprintf("[%s]", strings.Join(ev.SeatLabels, ","))
	}

	line := fmt.Sprintf("[%s] Ticket issued | ticket_id=%d | reference=%s | user_id=%d | session_id=%d | movie_id=%d | room_id=%d | method=%s | total=%d cents | seats=%s\n",
		ev.IssuedAt, ev.TicketID, ev.Reference, ev.UserID, ev.SessionID, ev.MovieID, ev.RoomID, ev.PaymentMethod, ev.TotalCents, seats)

	if _, err := f.WriteString(line); err != nil {
		return fmt.Errorf("write log: %w", err)
	}
	return nil
}
