package services

import "kirana/pkg/rabbitmq"

// EventPublisher publishes order lifecycle events. A nil publisher disables
// eventing; publish failures are logged and never fail the operation that
// triggered them.
type EventPublisher interface {
	PublishOrderEvent(event rabbitmq.OrderEvent) error
}
