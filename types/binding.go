package types

import (
	"github.com/datazip-inc/maxwell-launcher/utils"
)

const (
	MySQLTag = "mysql"
	KafkaTag = "kafka"
)

// ServiceCatalog is the decoded VCAP_SERVICES document: service key to bound instances
type ServiceCatalog map[string][]ServiceInstance

// ServiceInstance is one bound service instance
type ServiceInstance struct {
	Name        string       `json:"name,omitempty"`
	Label       string       `json:"label,omitempty"`
	Plan        string       `json:"plan,omitempty"`
	Tags        *Set[string] `json:"tags"`
	Credentials Credentials  `json:"credentials"`
}

// HasTag reports whether the instance carries tag; matching is case sensitive
func (s *ServiceInstance) HasTag(tag string) bool {
	return s.Tags.Exists(tag)
}

// Credentials is the free-form credentials block of a binding
type Credentials map[string]any

// Lookup returns the credential rendered as a string; null values count as absent
func (c Credentials) Lookup(key string) (string, bool) {
	value, found := c[key]
	if !found || value == nil {
		return "", false
	}

	return utils.ConvertToString(value), true
}
