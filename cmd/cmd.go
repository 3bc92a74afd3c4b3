// Package cmd provides list of commands to relay host events and inspect syslog output
package cmd

import (
	"github.com/relex/gotils/config"
)

func init() {
	config.AddParentCmdWithArgs("", "slog-relay relays Ansible events to syslog as RFC 3164 or RFC 5424 messages", &rootCmd, rootCmd.preRun, rootCmd.postRun)
	config.AddCmdWithArgs("run ...", "Relay host events read from stdin", &runCmd, runCmd.run)
	config.AddCmdWithArgs("send <kind> <text> ...", "Relay a single event", &sendCmd, sendCmd.run)
	config.AddCmdWithArgs("config ...", "Print the resolved configuration", &configCmd, configCmd.run)
	config.AddCmdWithArgs("listen ...", "Print syslog messages received on the given address", &listenCmd, listenCmd.run)
}

// Execute parses the command line and runs the specified command
func Execute() {
	// trigger init

	config.Execute()
}
