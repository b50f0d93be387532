package common

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

type Exchange string

type Queue string

type BindingKey string

type MessageProducer interface {
	Publish(ctx context.Context, msg []byte, key BindingKey, exchange Exchange) error
}

type MessageConsumer interface {
	Consume(key BindingKey, exchange Exchange, queue Queue) (<-chan amqp.Delivery, error)
}

const (
	EngagementExchange Exchange = "engagement_exchange"

	CommentCreatedQueue Queue      = "comment_created_queue"
	CommentCreatedKey   BindingKey = "comment.created"

	UserFollowedQueue Queue      = "user_followed_queue"
	UserFollowedKey   BindingKey = "user.followed"
)

// CommentCreatedEvent is published after a comment is stored on someone's blog.
type CommentCreatedEvent struct {
	CommentID int    `json:"comment_id"`
	BlogID    int    `json:"blog_id"`
	AuthorID  int    `json:"author_id"`
	UserID    int    `json:"user_id"`
	Comment   string `json:"comment"`
}

// UserFollowedEvent is published when a follow edge is created.
type UserFollowedEvent struct {
	FollowerID  int `json:"follower_id"`
	FollowingID int `json:"following_id"`
}

type MessageBroker struct {
	conn *amqp.Connection
	ch   *amqp.Channel
}

func NewMessageBroker(URI string) (*MessageBroker, error) {
	conn, ch, err := connectAMQP(URI)
	if err != nil {
		return nil, err
	}

	return &MessageBroker{
		conn: conn,
		ch:   ch,
	}, nil
}

func connectAMQP(URI string) (*amqp.Connection, *amqp.Channel, error) {
	conn, err := amqp.Dial(URI)
	if err != nil {
		return nil, nil, fmt.Errorf("could not connect to AMQP: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, nil, fmt.Errorf("could not open channel: %w", err)
	}

	return conn, ch, nil
}

// Close closes the channel and then the connection.
func (mb *MessageBroker) Close() error {
	err := mb.ch.Close()
	if err != nil {
		return err
	}

	return mb.conn.Close()
}

// SetupEngagementExchange declares the engagement exchange and binds one durable queue per event.
func SetupEngagementExchange(mb *MessageBroker) error {
	err := mb.ch.ExchangeDeclare(string(EngagementExchange), "direct", true, false, false, false, nil)
	if err != nil {
		return err
	}

	bindings := []struct {
		queue Queue
		key   BindingKey
	}{
		{CommentCreatedQueue, CommentCreatedKey},
		{UserFollowedQueue, UserFollowedKey},
	}

	for _, b := range bindings {
		_, err = mb.ch.QueueDeclare(string(b.queue), true, false, false, false, nil)
		if err != nil {
			return err
		}

		err = mb.ch.QueueBind(string(b.queue), string(b.key), string(EngagementExchange), false, nil)
		if err != nil {
			return err
		}
	}

	return nil
}

func (mb *MessageBroker) Publish(ctx context.Context, msg []byte, key BindingKey, exchange Exchange) error {
	err := mb.ch.PublishWithContext(ctx, string(exchange), string(key), false, false, amqp.Publishing{
		ContentType: "application/json",
		Body:        msg,
	})
	if err != nil {
		return fmt.Errorf("could not publish message: %w", err)
	}

	return nil
}

func (mb *MessageBroker) Consume(key BindingKey, exchange Exchange, queue Queue) (<-chan amqp.Delivery, error) {
	msgs, err := mb.ch.Consume(string(queue), string(key), false, false, false, false, nil)
	if err != nil {
		return nil, fmt.Errorf("could not consume message: %w", err)
	}

	return msgs, nil
}

// PublishEvent marshals event as JSON and publishes it on the engagement exchange.
func PublishEvent(ctx context.Context, p MessageProducer, key BindingKey, event any) error {
	body, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return p.Publish(ctx, body, key, EngagementExchange)
}
