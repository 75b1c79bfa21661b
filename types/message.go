package types

type MessageType string

const (
	ConnectionStatusMessage MessageType = "CONNECTION_STATUS"
	LaunchArgsMessage       MessageType = "LAUNCH_ARGS"
)

type ConnectionStatus string

const (
	ConnectionSucceed ConnectionStatus = "SUCCEEDED"
	ConnectionFailed  ConnectionStatus = "FAILED"
)

// Message is a structured result printed by the check and args commands
type Message struct {
	Type             MessageType `json:"type"`
	ConnectionStatus *StatusRow  `json:"connectionStatus,omitempty"`
	LaunchArgs       []string    `json:"launchArgs,omitempty"`
}

type StatusRow struct {
	Status  ConnectionStatus `json:"status"`
	Message string           `json:"message,omitempty"`
}
