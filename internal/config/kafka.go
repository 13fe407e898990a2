package config

type KafkaConfig struct {
	BrokerList []string `yaml:"brokers"`
	Consumer   string   `yaml:"consumer-group"`
	TxTopic    string   `yaml:"transactions-topic"`
}

func (s *KafkaConfig) Brokers() []string {
	return s.BrokerList
}

func (s *KafkaConfig) Enabled() bool {
	return len(s.BrokerList) > 0
}

func (s *KafkaConfig) ConsumerGroup() string {
	if s.Consumer == "" {
		return "gofinances-dashboarder"
	}
	return s.Consumer
}

func (s *KafkaConfig) TransactionsTopic() string {
	if s.TxTopic == "" {
		return "gofinances.transactions"
	}
	return s.TxTopic
}
