package util

import (
	"strings"

	"github.com/ValentinKolb/mrcli/rpc/common"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	// Wrap is the number of characters to Wrap the help text at
	Wrap int = 50

	// DefaultRegistryPath is used when neither --registry nor MRCLI_REGISTRY is set
	DefaultRegistryPath = "/etc/mrcli/registry.yaml"
)

// WrapString wraps a string at Wrap characters
func WrapString(text string) string {
	var wrappedLines []string
	var currentLine strings.Builder
	lineWidth := 0

	for _, word := range strings.Fields(text) {
		wordWidth := len(word)

		// Check if we need to wrap
		if lineWidth > 0 && lineWidth+1+wordWidth > Wrap {
			wrappedLines = append(wrappedLines, currentLine.String())
			currentLine.Reset()
			lineWidth = 0
		}

		if lineWidth > 0 {
			currentLine.WriteString(" ")
			lineWidth++
		}

		currentLine.WriteString(word)
		lineWidth += wordWidth
	}

	if currentLine.Len() > 0 {
		wrappedLines = append(wrappedLines, currentLine.String())
	}

	return strings.Join(wrappedLines, "\n")
}

// SetupClientFlags adds the configuration flags shared by all invocations
func SetupClientFlags(cmd *cobra.Command) {
	key := "registry"
	cmd.PersistentFlags().String(key, DefaultRegistryPath, WrapString("The instance registry file (yaml, json or toml)"))

	key = "metrics-file"
	cmd.PersistentFlags().String(key, "", WrapString("Write the metrics of this invocation to the file in Prometheus text format"))
}

// InitClientConfig initializes configuration from environment variables.
// Settings without a flag are only read from the environment:
// MRCLI_TIMEOUT, MRCLI_LOG_LEVEL, MRCLI_TCP_NODELAY and MRCLI_TCP_KEEPALIVE.
func InitClientConfig() {
	// load env files
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	viper.SetDefault("timeout", 0)
	viper.SetDefault("log-level", "error")
	viper.SetDefault("tcp-nodelay", true)
	viper.SetDefault("tcp-keepalive", 0)

	// initialize viper
	viper.SetEnvPrefix("mrcli")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // read in environment variables that match
}

// GetClientConfig reads client configuration from viper
func GetClientConfig() *common.ClientConfig {
	return &common.ClientConfig{
		RegistryPath:  viper.GetString("registry"),
		TimeoutSecond: viper.GetInt("timeout"),
		LogLevel:      viper.GetString("log-level"),
		MetricsFile:   viper.GetString("metrics-file"),
		TCPConf: common.TCPConf{
			TCPNoDelay:      viper.GetBool("tcp-nodelay"),
			TCPKeepAliveSec: viper.GetInt("tcp-keepalive"),
		},
	}
}

// BindCommandFlags binds a command's flags to viper
func BindCommandFlags(cmd *cobra.Command) error {
	return viper.BindPFlags(cmd.Flags())
}
