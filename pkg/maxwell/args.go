package maxwell

import (
	"strings"

	"github.com/datazip-inc/maxwell-launcher/types"
)

const (
	FlagOutputDDL        = "--output_ddl"
	FlagUser             = "--user"
	FlagPassword         = "--password"
	FlagHost             = "--host"
	FlagSchemaDatabase   = "--schema_database"
	FlagProducer         = "--producer"
	FlagBootstrapServers = "--kafka.bootstrap.servers"
	FlagKafkaTopic       = "--kafka_topic"

	redacted = "******"
)

func flagValue(name, value string) string {
	return name + "=" + value
}

// BuildArgs returns Maxwell's arguments in their fixed order, followed by extra.
// config must have passed Validate.
func BuildArgs(config *types.LaunchConfig, extra ...string) []string {
	args := []string{
		flagValue(FlagOutputDDL, "true"),
		flagValue(FlagUser, config.MySQL.User),
		flagValue(FlagPassword, config.MySQL.Password),
		flagValue(FlagHost, config.MySQL.Host),
		flagValue(FlagSchemaDatabase, config.MySQL.Database),
		flagValue(FlagProducer, "kafka"),
		flagValue(FlagBootstrapServers, config.Kafka.BootstrapServers),
		flagValue(FlagKafkaTopic, config.Kafka.Topic),
	}

	return append(args, extra...)
}

// Redact masks password values so args can be logged
func Redact(args []string) []string {
	masked := make([]string, len(args))
	for idx, arg := range args {
		if strings.HasPrefix(arg, FlagPassword+"=") {
			arg = flagValue(FlagPassword, redacted)
		}
		masked[idx] = arg
	}

	return masked
}
