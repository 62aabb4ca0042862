// Package mq 通过 Kafka 投递通知事件，供邮件/推送等下游系统消费
package mq

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	myconfig "cat_adoption_server/internal/config"
	"cat_adoption_server/internal/infrastructure/notify"
)

// messageWriter kafka.Writer 的最小子集
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaNotifier 将通知事件写入 Kafka 主题
// 以申请 ID 作为 key，保证同一申请的事件落在同一分区内有序
type KafkaNotifier struct {
	writer messageWriter
}

// NewKafkaNotifier 按配置创建 Writer
func NewKafkaNotifier(kafkaConfig myconfig.KafkaConfig) *KafkaNotifier {
	return &KafkaNotifier{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(kafkaConfig.HostPort),
			Topic:                  kafkaConfig.NotifyTopic,
			Balancer:               &kafka.Hash{},
			WriteTimeout:           kafkaConfig.Timeout * time.Second,
			RequiredAcks:           kafka.RequireOne,
			AllowAutoTopicCreation: false,
		},
	}
}

func (k *KafkaNotifier) Name() string { return "kafka" }

// Notify 序列化事件并写入
func (k *KafkaNotifier) Notify(ctx context.Context, event notify.Event) error {
	value, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return k.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.ApplicationId),
		Value: value,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.Type)},
		},
	})
}

// Close 关闭 Writer
func (k *KafkaNotifier) Close() {
	if err := k.writer.Close(); err != nil {
		zap.L().Error(err.Error())
	}
}

// EnsureTopic 创建通知主题，已存在时 Kafka 返回错误，只记录日志
func EnsureTopic(kafkaConfig myconfig.KafkaConfig) {
	conn, err := kafka.Dial("tcp", kafkaConfig.HostPort)
	if err != nil {
		zap.L().Error("连接 Kafka 失败", zap.Error(err))
		return
	}
	defer conn.Close()

	partitions := kafkaConfig.Partition
	if partitions <= 0 {
		partitions = 1
	}
	if err = conn.CreateTopics(kafka.TopicConfig{
		Topic:             kafkaConfig.NotifyTopic,
		NumPartitions:     partitions,
		ReplicationFactor: 1,
	}); err != nil {
		zap.L().Warn("创建 Kafka 主题失败", zap.String("topic", kafkaConfig.NotifyTopic), zap.Error(err))
	}
}

var _ notify.Notifier = (*KafkaNotifier)(nil)
