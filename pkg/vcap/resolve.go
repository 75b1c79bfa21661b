package vcap

import (
	"fmt"
	"strconv"

	"github.com/datazip-inc/maxwell-launcher/logger"
	"github.com/datazip-inc/maxwell-launcher/types"
	"github.com/datazip-inc/maxwell-launcher/utils"
)

// Resolve scans the first instance of every service key, in sorted key order.
// When several services carry the same tag the last one scanned wins.
// The result is not validated; a missing binding leaves its block nil.
func Resolve(catalog types.ServiceCatalog, defaultTopic string) (*types.LaunchConfig, error) {
	if defaultTopic == "" {
		defaultTopic = types.DefaultTopic
	}

	config := &types.LaunchConfig{}
	for _, key := range utils.SortedKeys(catalog) {
		instances := catalog[key]
		if len(instances) == 0 {
			logger.Warnf("service %q has no bound instances, skipping", key)
			continue
		}
		instance := instances[0]

		switch {
		case instance.HasTag(types.MySQLTag):
			mysql, err := resolveMySQL(key, instance.Credentials)
			if err != nil {
				return nil, err
			}
			if config.MySQL != nil {
				logger.Warnf("services %q and %q are both tagged %s, using %q", config.MySQLService, key, types.MySQLTag, key)
			}
			config.MySQL, config.MySQLService = mysql, key
		case instance.HasTag(types.KafkaTag):
			kafka, err := resolveKafka(key, instance.Credentials, defaultTopic)
			if err != nil {
				return nil, err
			}
			if config.Kafka != nil {
				logger.Warnf("services %q and %q are both tagged %s, using %q", config.KafkaService, key, types.KafkaTag, key)
			}
			config.Kafka, config.KafkaService = kafka, key
		default:
			logger.Debugf("ignoring service %q with tags %s", key, instance.Tags)
		}
	}

	return config, nil
}

func resolveMySQL(service string, creds types.Credentials) (*types.MySQLConfig, error) {
	values := map[string]string{}
	for _, key := range []string{"username", "password", "hostname", "name"} {
		value, found := creds.Lookup(key)
		if !found {
			return nil, &types.ConfigError{Service: service, Err: fmt.Errorf("%w %q", types.ErrMissingCredential, key)}
		}
		values[key] = value
	}

	port := types.DefaultMySQLPort
	if raw, found := creds.Lookup("port"); found {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			logger.Warnf("service %q has invalid port %q, assuming %d", service, raw, types.DefaultMySQLPort)
		} else {
			port = parsed
		}
	}

	return &types.MySQLConfig{
		User:     values["username"],
		Password: values["password"],
		Host:     values["hostname"],
		Database: values["name"],
		Port:     port,
	}, nil
}

func resolveKafka(service string, creds types.Credentials, defaultTopic string) (*types.KafkaConfig, error) {
	servers, found := creds.Lookup("hostname")
	if !found {
		return nil, &types.ConfigError{Service: service, Err: fmt.Errorf("%w %q", types.ErrMissingCredential, "hostname")}
	}

	topic := defaultTopic
	if name, found := creds.Lookup("topicName"); found {
		topic = name
	}

	return &types.KafkaConfig{
		BootstrapServers: servers,
		Topic:            topic,
	}, nil
}
