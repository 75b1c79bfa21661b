package kafka

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datazip-inc/maxwell-launcher/drivers/base"
	"github.com/datazip-inc/maxwell-launcher/types"
)

func TestBrokers(t *testing.T) {
	testCases := []struct {
		name     string
		servers  string
		expected []string
	}{
		{name: "single host", servers: "kh", expected: []string{"kh:9092"}},
		{name: "host and port", servers: "kh:9093", expected: []string{"kh:9093"}},
		{name: "list", servers: "k1:9092, k2 ,", expected: []string{"k1:9092", "k2:9092"}},
		{name: "ipv6", servers: "[::1]:9094", expected: []string{"[::1]:9094"}},
		{name: "empty", servers: "", expected: []string{}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			k := New(base.NewBase(1), &types.KafkaConfig{BootstrapServers: tc.servers, Topic: types.DefaultTopic})
			assert.Equal(t, tc.expected, k.Brokers())
		})
	}
}

func TestSaramaConfig(t *testing.T) {
	k := New(base.NewBase(1), &types.KafkaConfig{BootstrapServers: "kh", Topic: types.DefaultTopic})
	conf := k.saramaConfig(context.Background())

	require.NoError(t, conf.Validate())
	assert.Regexp(t, `^maxwell-launcher-[0-9A-Z]{26}$`, conf.ClientID)
	assert.Equal(t, dialTimeout, conf.Net.DialTimeout)
	assert.Equal(t, "kafka", k.Type())

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	conf = k.saramaConfig(ctx)
	require.NoError(t, conf.Validate())
	assert.LessOrEqual(t, conf.Net.DialTimeout, 2*time.Second)
	assert.LessOrEqual(t, conf.Net.ReadTimeout, 2*time.Second)

	expired, cancelExpired := context.WithTimeout(context.Background(), -time.Second)
	defer cancelExpired()
	conf = k.saramaConfig(expired)
	require.NoError(t, conf.Validate())
	assert.Equal(t, time.Millisecond, conf.Net.DialTimeout)
}

func TestCheck_NoBrokers(t *testing.T) {
	k := New(base.NewBase(1), &types.KafkaConfig{BootstrapServers: " , ", Topic: types.DefaultTopic})

	err := k.Check(context.Background())
	assert.ErrorContains(t, err, "no kafka brokers")
}

func TestCheck_Unreachable(t *testing.T) {
	driver := base.NewBase(1)
	driver.RetrySleep = time.Millisecond
	// nothing listens on the discard port
	k := New(driver, &types.KafkaConfig{BootstrapServers: "127.0.0.1:9", Topic: types.DefaultTopic})

	err := k.Check(context.Background())
	assert.ErrorContains(t, err, "failed to connect to kafka")
}

func TestCheck_StopsAtDeadline(t *testing.T) {
	driver := base.NewBase(3)
	// a non-routable address keeps the dial pending until it times out
	k := New(driver, &types.KafkaConfig{BootstrapServers: "10.255.255.1:9092", Topic: types.DefaultTopic})

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	start := time.Now()
	err := k.Check(ctx)

	assert.Error(t, err)
	assert.Less(t, time.Since(start), 5*time.Second)
}
