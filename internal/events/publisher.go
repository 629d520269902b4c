// Package events публикует доменные события приложения в RabbitMQ.
//
// Публикация выполняется по принципу best-effort: неудача публикации
// логируется вызывающей стороной и не откатывает уже сохранённую мутацию.
package events

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/streadway/amqp"
)

// Типы публикуемых событий.
const (
	PaymentRegistered = "payment.registered"
	PaymentRemoved    = "payment.removed"
	PersonAdded       = "roster.added"
	PersonRemoved     = "roster.removed"
	HistoryReset      = "history.reset"
	SettingsChanged   = "settings.changed"
)

const exchangeName = "rodizio.events"

// Event доменное событие, сериализуемое в JSON.
type Event struct {
	Type       string    `json:"type"`
	Person     string    `json:"person,omitempty"`
	Date       string    `json:"date,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}

// Publisher публикует события в exchange RabbitMQ.
type Publisher struct {
	conn *amqp.Connection
	ch   *amqp.Channel
}

// Connect подключается к RabbitMQ с повторными попытками и объявляет exchange.
func Connect(connection string, retries int, delay time.Duration) (*Publisher, error) {
	const op = "events.Connect"

	var conn *amqp.Connection
	var err error
	for range retries {
		conn, err = amqp.Dial(connection)
		if err == nil {
			break
		}
		time.Sleep(delay)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := ch.ExchangeDeclare(
		exchangeName,
		"topic",
		true,
		false,
		false,
		false,
		nil,
	); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Publisher{conn: conn, ch: ch}, nil
}

// Publish публикует событие; тип события используется как routing key.
func (p *Publisher) Publish(event Event) error {
	const op = "events.Publish"
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	err = p.ch.Publish(
		exchangeName,
		event.Type,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Close закрывает канал и соединение.
func (p *Publisher) Close() error {
	if err := p.ch.Close(); err != nil {
		return err
	}
	return p.conn.Close()
}
