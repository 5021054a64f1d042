package common

import (
	"fmt"
	"strings"
	"time"
)

// --------------------------------------------------------------------------
// Client configuration struct
// --------------------------------------------------------------------------

// TCPConf holds the socket options applied to TCP connections
type TCPConf struct {
	TCPNoDelay      bool
	TCPKeepAliveSec int
}

// ClientConfig holds everything the client needs besides the command line arguments
type ClientConfig struct {
	// RegistryPath is the instance registry file
	RegistryPath string

	// TimeoutSecond bounds dial, read and write. 0 waits forever.
	TimeoutSecond int

	// LogLevel is one of debug, info, warn, error
	LogLevel string

	// MetricsFile receives the invocation metrics in Prometheus text format, if set
	MetricsFile string

	TCPConf TCPConf
}

// Timeout returns TimeoutSecond as duration
func (c *ClientConfig) Timeout() time.Duration {
	if c.TimeoutSecond <= 0 {
		return 0
	}
	return time.Duration(c.TimeoutSecond) * time.Second
}

// String returns a formatted string representation of the client configuration
func (c *ClientConfig) String() string {
	var sb strings.Builder

	// Create helper functions for consistent formatting
	addSection := func(title string) {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("%s\n", strings.ToUpper(title)))
	}

	addField := func(name, value string) {
		sb.WriteString(fmt.Sprintf("  %-22s: %s\n", name, value))
	}

	addSection("Client Configuration")
	addField("Registry", c.RegistryPath)
	if c.TimeoutSecond > 0 {
		addField("Timeout", fmt.Sprintf("%d sec", c.TimeoutSecond))
	} else {
		addField("Timeout", "none")
	}
	addField("Log Level", c.LogLevel)
	if c.MetricsFile != "" {
		addField("Metrics File", c.MetricsFile)
	}

	addSection("TCP")
	addField("No Delay", fmt.Sprintf("%t", c.TCPConf.TCPNoDelay))
	addField("Keep Alive", fmt.Sprintf("%d sec", c.TCPConf.TCPKeepAliveSec))

	return sb.String()
}
