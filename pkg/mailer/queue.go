package mailer

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"usof/pkg/metrics"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// QueueSender 把邮件投递到 RabbitMQ 队列，由 Consumer 异步发送
type QueueSender struct {
	conn  *amqp.Connection
	ch    *amqp.Channel
	queue string
	mu    sync.Mutex
}

// NewQueueSender 连接 RabbitMQ 并声明持久化队列
func NewQueueSender(url, queue string) (*QueueSender, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq failed: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open rabbitmq channel failed: %w", err)
	}
	if _, err = ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare queue %s failed: %w", queue, err)
	}
	return &QueueSender{conn: conn, ch: ch, queue: queue}, nil
}

func (q *QueueSender) Send(ctx context.Context, msg Message) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal mail failed: %w", err)
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	err = q.ch.PublishWithContext(ctx, "", q.queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Body:         body,
	})
	if err != nil {
		metrics.MailSentTotal.WithLabelValues("queue", "error").Inc()
		return fmt.Errorf("publish mail failed: %w", err)
	}
	metrics.MailSentTotal.WithLabelValues("queue", "ok").Inc()
	return nil
}

// Consume 从队列取出邮件交给 delivery 发送，直到 ctx 结束或通道关闭
// 无法解析的消息直接丢弃，发送失败的消息重新入队一次
func (q *QueueSender) Consume(ctx context.Context, delivery Sender) error {
	msgs, err := q.ch.Consume(q.queue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("consume queue %s failed: %w", q.queue, err)
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-msgs:
			if !ok {
				return nil
			}
			handleDelivery(ctx, d, delivery)
		}
	}
}

func handleDelivery(ctx context.Context, d amqp.Delivery, delivery Sender) {
	var msg Message
	if err := json.Unmarshal(d.Body, &msg); err != nil {
		zap.L().Error("drop malformed mail message", zap.Error(err))
		_ = d.Nack(false, false)
		return
	}
	if err := delivery.Send(ctx, msg); err != nil {
		zap.L().Error("deliver queued mail failed",
			zap.String("to", msg.To),
			zap.Bool("redelivered", d.Redelivered),
			zap.Error(err))
		_ = d.Nack(false, !d.Redelivered)
		return
	}
	_ = d.Ack(false)
}

func (q *QueueSender) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	_ = q.ch.Close()
	_ = q.conn.Close()
}
