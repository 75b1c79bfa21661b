package types

import (
	"github.com/datazip-inc/maxwell-launcher/utils"
)

const (
	DefaultTopic     = "maxwell"
	DefaultMySQLPort = 3306
)

// MySQLConfig holds the credentials of the bound MySQL instance
type MySQLConfig struct {
	User     string `json:"username"`
	Password string `json:"password"`
	Host     string `json:"hostname"`
	Database string `json:"name"`
	// Port is only used to probe the server; Maxwell receives the host alone
	Port int `json:"port" validate:"min=1,max=65535"`
}

// KafkaConfig holds the settings of the bound Kafka instance.
// Present values are passed to Maxwell as given, empty ones included.
type KafkaConfig struct {
	BootstrapServers string `json:"hostname"`
	Topic            string `json:"topicName"`
}

// LaunchConfig is everything Maxwell needs, resolved from the service catalog
type LaunchConfig struct {
	MySQL        *MySQLConfig `json:"mysql"`
	Kafka        *KafkaConfig `json:"kafka"`
	MySQLService string       `json:"-"`
	KafkaService string       `json:"-"`
}

// Validate reports a missing MySQL binding before a missing Kafka binding
func (c *LaunchConfig) Validate() error {
	if c.MySQL == nil {
		return &ConfigError{Err: ErrNoMySQL}
	}
	if c.Kafka == nil {
		return &ConfigError{Err: ErrNoKafka}
	}

	if err := utils.Validate(c); err != nil {
		return &ConfigError{Err: err}
	}

	return nil
}
