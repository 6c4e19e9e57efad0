package config

import (
	"log"

	"github.com/Luasgl/P2AULA2/events"
)

// InitPublisher returns a Kafka publisher when brokers are configured, a no-op otherwise.
func InitPublisher(cfg *Config) events.Publisher {
	brokers := cfg.Brokers()
	if len(brokers) == 0 {
		log.Printf("[kafka] no brokers configured, events disabled")
		return events.Nop{}
	}
	p, err := events.NewKafkaPublisher(brokers, cfg.KafkaTopic, nil)
	if err != nil {
		log.Fatalf("[kafka] %v", err)
	}
	log.Printf("[kafka] publishing to %s via %v", cfg.KafkaTopic, brokers)
	return p
}
