// Package ingest consumes analytics events from Kafka and persists them as
// product analytics rows. This is the ingestion path that feeds the
// aggregator; it is optional and only started when brokers are configured.
package ingest

import (
	"context"
	"encoding/json"
	"time"

	"github.com/IBM/sarama"
	"github.com/sirupsen/logrus"

	"amazon-analytics/internal/models"
	"amazon-analytics/internal/store"
)

// Event is one analytics observation for an ASIN as published on the topic.
type Event struct {
	ASIN               string    `json:"asin"`
	Views              int       `json:"views"`
	Conversions        int       `json:"conversions"`
	Revenue            float64   `json:"revenue"`
	BounceRate         float64   `json:"bounce_rate"`
	AvgSessionDuration float64   `json:"avg_session_duration"`
	Date               time.Time `json:"date"`
}

// Start begins consuming analytics events from the given topic and inserting
// them through the analytics store. It returns after the consumer goroutine
// is running.
func Start(brokers []string, topic string, analyticsStore store.AnalyticsStore) {
	config := sarama.NewConfig()
	config.Consumer.Return.Errors = true

	consumer, err := sarama.NewConsumer(brokers, config)
	if err != nil {
		logrus.WithError(err).Fatal("Error creating consumer")
	}

	partitionConsumer, err := consumer.ConsumePartition(topic, 0, sarama.OffsetNewest)
	if err != nil {
		logrus.WithError(err).Fatal("Error creating partition consumer")
	}

	logrus.WithField("topic", topic).Info("Started consuming analytics events")
	go func() {
		for {
			select {
			case msg := <-partitionConsumer.Messages():
				handleEvent(analyticsStore, msg.Value)
			case err := <-partitionConsumer.Errors():
				logrus.WithError(err).WithField("topic", topic).Error("Error consuming")
			}
		}
	}()
}

// handleEvent decodes and persists one event. A malformed event is dropped,
// not fatal.
func handleEvent(analyticsStore store.AnalyticsStore, data []byte) {
	var event Event
	if err := json.Unmarshal(data, &event); err != nil {
		logrus.WithError(err).Error("Error unmarshaling analytics event")
		return
	}
	if event.ASIN == "" {
		logrus.Warn("Dropping analytics event without ASIN")
		return
	}
	if event.Date.IsZero() {
		event.Date = time.Now()
	}

	row := models.ProductAnalytics{
		ASIN:               event.ASIN,
		Views:              event.Views,
		Conversions:        event.Conversions,
		Revenue:            event.Revenue,
		BounceRate:         event.BounceRate,
		AvgSessionDuration: event.AvgSessionDuration,
		Date:               event.Date,
	}
	if err := analyticsStore.InsertEvent(context.Background(), &row); err != nil {
		logrus.WithError(err).WithField("asin", event.ASIN).Error("Failed to insert analytics event")
		return
	}
	logrus.WithField("asin", event.ASIN).Info("Analytics event ingested")
}
