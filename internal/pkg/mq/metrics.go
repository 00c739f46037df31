package mq

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	messagesProduced = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mq_messages_produced_total",
		Help: "Number of messages successfully written to Kafka, by topic.",
	}, []string{"topic"})

	// MessagesConsumed 由各消费者适配器在处理完一条消息后递增。
	MessagesConsumed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mq_messages_consumed_total",
		Help: "Number of messages fetched and processed from Kafka, by topic and result.",
	}, []string{"topic", "result"})
)
