// Package audit 负责累计值增量的留痕：
// 每次任务/班次变更产生的增量先投递到消息队列，
// 由 audit worker 异步落库，形成可追溯的变更台账
package audit

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/minfang-dev/station-manager/backend/internal/config"
	"github.com/minfang-dev/station-manager/backend/internal/domain"
)

const QueueName = "accumulator_delta_queue"

// DeclareQueue 声明增量队列，生产者和消费者都要在启动时调用，
// 保证无论哪边先启动队列都存在
func DeclareQueue(ch *amqp.Channel) error {
	_, err := ch.QueueDeclare(
		QueueName, // 队列名称
		true,      // 是否持久化
		false,     // 是否自动删除
		false,     // 是否独占
		false,     // 是否不等待
		nil,       // 额外参数
	)
	return err
}

type Publisher struct {
	cfg *config.Config
	ch  *amqp.Channel
}

func NewPublisher(cfg *config.Config, ch *amqp.Channel) *Publisher {
	return &Publisher{cfg: cfg, ch: ch}
}

// Publish 把一批增量逐条投递到队列，投递时补上发生时间
func (p *Publisher) Publish(deltas []domain.AccumulatorDelta) error {
	now := time.Now()

	for _, delta := range deltas {
		delta.OccurredAt = now

		body, err := json.Marshal(delta)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(context.Background(), time.Duration(p.cfg.RabbitMQ.PublishTimeout)*time.Second)
		err = p.ch.PublishWithContext(
			ctx,
			"",
			QueueName,
			true,
			false,
			amqp.Publishing{
				ContentType: "application/json",
				Body:        body,
			},
		)
		cancel()
		if err != nil {
			return err
		}
	}

	return nil
}
