package pkg

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"
)

// KafkaConfig 审核事件通道的写入参数，均来自 config
type KafkaConfig struct {
	Brokers      []string
	Topic        string
	Async        bool          // 异步写提高吞吐，代价是丢失单条写入的错误返回
	BatchTimeout time.Duration // 攒批上限，超时即发
}

// KafkaProducer 单 topic 生产者，按 key 哈希选分区
type KafkaProducer struct {
	writer *kafka.Writer
}

func NewKafkaProducer(cfg KafkaConfig) (*KafkaProducer, error) {
	if len(cfg.Brokers) == 0 {
		return nil, errors.New("kafka: no brokers configured")
	}
	bt := cfg.BatchTimeout
	if bt <= 0 {
		bt = 100 * time.Millisecond
	}
	w := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		Async:        cfg.Async,
		BatchTimeout: bt,
	}
	return &KafkaProducer{writer: w}, nil
}

func (p *KafkaProducer) Close() error {
	if p == nil || p.writer == nil {
		return nil
	}
	return p.writer.Close()
}

func (p *KafkaProducer) Send(ctx context.Context, key string, value []byte) error {
	msg := kafka.Message{
		Key:   []byte(key),
		Value: value,
	}
	return p.writer.WriteMessages(ctx, msg)
}

// PartitionKey 事件按社区分区，同一社区内先写先达
func PartitionKey(communityID uint64) string {
	return strconv.FormatUint(communityID, 10)
}
