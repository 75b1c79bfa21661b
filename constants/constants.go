package constants

const (
	DefaultBindingsEnv = "VCAP_SERVICES"
	// location of the JRE installed by the Cloud Foundry Java buildpack
	DefaultJavaHome = "/home/vcap/app/.java-buildpack/open_jdk_jre"
	DefaultBinary   = "./bin/maxwell"
	DefaultLogLevel = "info"
)
