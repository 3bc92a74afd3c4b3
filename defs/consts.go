package defs

// Common labels for logging
const (
	LabelComponent = "component"
	LabelName      = "name"
	LabelPart      = "part"

	LabelAddress   = "address"
	LabelRemote    = "remote"
	LabelTransport = "transport"

	LabelKind = "kind"
)

// EnvPrefix is the prefix of all environment variables read by the relay
const EnvPrefix = "ANSIBLE_SYSLOG_"

// MetricPrefix is the prefix of all Prometheus metrics exported by the relay
const MetricPrefix = "slog_relay_"
