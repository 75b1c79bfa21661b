package kafka

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/IBM/sarama"

	"github.com/datazip-inc/maxwell-launcher/drivers/base"
	"github.com/datazip-inc/maxwell-launcher/logger"
	"github.com/datazip-inc/maxwell-launcher/types"
	"github.com/datazip-inc/maxwell-launcher/utils"
)

const (
	defaultPort = "9092"
	dialTimeout = 10 * time.Second
)

// Kafka probes the bound Kafka cluster
type Kafka struct {
	*base.Driver
	config   *types.KafkaConfig
	clientID string
}

func New(driver *base.Driver, config *types.KafkaConfig) *Kafka {
	return &Kafka{
		Driver:   driver,
		config:   config,
		clientID: "maxwell-launcher-" + utils.ULID(),
	}
}

func (k *Kafka) Type() string {
	return "kafka"
}

// Brokers splits the bootstrap servers, adding the default port where none is given
func (k *Kafka) Brokers() []string {
	brokers := []string{}
	for _, server := range utils.SplitAndTrim(k.config.BootstrapServers) {
		if _, _, err := net.SplitHostPort(server); err != nil {
			server = net.JoinHostPort(server, defaultPort)
		}
		brokers = append(brokers, server)
	}

	return brokers
}

// saramaConfig caps the network timeouts at whatever is left of ctx's deadline
func (k *Kafka) saramaConfig(ctx context.Context) *sarama.Config {
	timeout := dialTimeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = min(timeout, max(time.Until(deadline), time.Millisecond))
	}

	conf := sarama.NewConfig()
	conf.ClientID = k.clientID
	conf.Net.DialTimeout = timeout
	conf.Net.ReadTimeout = timeout
	conf.Metadata.Retry.Max = 0
	conf.Metadata.Full = true

	return conf
}

// Check connects to the cluster and warns when the topic does not exist yet
func (k *Kafka) Check(ctx context.Context) error {
	brokers := k.Brokers()
	if len(brokers) == 0 {
		return fmt.Errorf("no kafka brokers in %q", k.config.BootstrapServers)
	}

	var client sarama.Client
	err := k.Retry(ctx, func() error {
		var err error
		client, err = k.connect(ctx, brokers)
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to connect to kafka at %v: %s", brokers, err)
	}
	defer client.Close()

	topics, err := client.Topics()
	if err != nil {
		return fmt.Errorf("failed to list kafka topics: %s", err)
	}

	if !utils.ExistInArray(topics, k.config.Topic) {
		logger.Warnf("kafka topic %q does not exist yet, Maxwell relies on the broker creating it", k.config.Topic)
	}

	logger.Infof("kafka reachable through %d brokers, %d topics", len(client.Brokers()), len(topics))
	return nil
}

// connect returns once the client is ready or ctx is done, whichever comes first
func (k *Kafka) connect(ctx context.Context, brokers []string) (sarama.Client, error) {
	type result struct {
		client sarama.Client
		err    error
	}

	done := make(chan result, 1)
	go func() {
		client, err := sarama.NewClient(brokers, k.saramaConfig(ctx))
		done <- result{client: client, err: err}
	}()

	select {
	case res := <-done:
		return res.client, res.err
	case <-ctx.Done():
		// the client may still come up; close it once it does
		go func() {
			if res := <-done; res.client != nil {
				res.client.Close()
			}
		}()
		return nil, ctx.Err()
	}
}
