package mq

import (
	"fmt"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

// Exchanges.
const (
	ExchangeTasks = "kannon.tasks"
	ExchangeDLQ   = "kannon.dlq"
)

// Постоянные очереди.
const (
	QueueDLQTasks      = "kannon.dlq.tasks"
	RoutingKeyDLQTasks = "tasks"
)

// RunQueueName возвращает имя очереди run'а.
func RunQueueName(runID uuid.UUID) string {
	return ExchangeTasks + "." + runID.String()
}

// RoutingKey возвращает ключ маршрутизации run'а.
func RoutingKey(runID uuid.UUID) string {
	return runID.String()
}

// SetupTopology объявляет exchanges и DLQ.
func SetupTopology(conn *Connection) error {
	return conn.WithChannel(func(ch *amqp.Channel) error {
		for _, name := range []string{ExchangeTasks, ExchangeDLQ} {
			err := ch.ExchangeDeclare(
				name,     // name
				"direct", // type
				true,     // durable
				false,    // auto-deleted
				false,    // internal
				false,    // no-wait
				nil,      // arguments
			)
			if err != nil {
				return fmt.Errorf("declare exchange %s: %w", name, err)
			}
		}

		if _, err := ch.QueueDeclare(QueueDLQTasks, true, false, false, false, nil); err != nil {
			return fmt.Errorf("declare queue %s: %w", QueueDLQTasks, err)
		}
		if err := ch.QueueBind(QueueDLQTasks, RoutingKeyDLQTasks, ExchangeDLQ, false, nil); err != nil {
			return fmt.Errorf("bind queue %s: %w", QueueDLQTasks, err)
		}

		return nil
	})
}

// DeclareRunQueue объявляет очередь run'а и привязывает её к ExchangeTasks.
// Некорректные сообщения уходят в DLQ.
func DeclareRunQueue(conn *Connection, runID uuid.UUID) (string, error) {
	name := RunQueueName(runID)

	err := conn.WithChannel(func(ch *amqp.Channel) error {
		args := amqp.Table{
			"x-dead-letter-exchange":    ExchangeDLQ,
			"x-dead-letter-routing-key": RoutingKeyDLQTasks,
		}

		if _, err := ch.QueueDeclare(name, true, false, false, false, args); err != nil {
			return fmt.Errorf("declare queue %s: %w", name, err)
		}
		if err := ch.QueueBind(name, RoutingKey(runID), ExchangeTasks, false, nil); err != nil {
			return fmt.Errorf("bind queue %s: %w", name, err)
		}
		return nil
	})

	return name, err
}

// DeleteRunQueue удаляет очередь run'а вместе с остатками сообщений.
func DeleteRunQueue(conn *Connection, runID uuid.UUID) error {
	return conn.WithChannel(func(ch *amqp.Channel) error {
		if _, err := ch.QueueDelete(RunQueueName(runID), false, false, false); err != nil {
			return fmt.Errorf("delete queue %s: %w", RunQueueName(runID), err)
		}
		return nil
	})
}
