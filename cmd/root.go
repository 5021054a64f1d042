package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/ValentinKolb/mrcli/cmd/util"
	"github.com/ValentinKolb/mrcli/lib/dispatch"
	"github.com/ValentinKolb/mrcli/lib/registry"
	"github.com/ValentinKolb/mrcli/rpc/client"
	"github.com/ValentinKolb/mrcli/rpc/common"
	"github.com/VictoriaMetrics/metrics"
	"github.com/lni/dragonboat/v4/logger"
	"github.com/spf13/cobra"
)

const (
	Version = "1.0.0"
)

var (
	Logger = logger.GetLogger("cmd")

	// RootCmd represents the only command of mrcli
	RootCmd = newRootCmd()

	// newConnectionFactory creates the connection factory of an invocation
	newConnectionFactory = func(config common.ClientConfig) connectionFactory {
		return client.NewRedisConnectionFactory(config)
	}
)

// connectionFactory is a dispatch.IConnectionFactory that has to be closed
type connectionFactory interface {
	dispatch.IConnectionFactory
	Close() error
}

// UsageError is returned for invalid command lines
type UsageError struct {
	Msg string
}

func (e *UsageError) Error() string { return e.Msg }

func (e *UsageError) Kind() string { return "UsageError" }

func init() {
	// Initialize viper
	cobra.OnInitialize(util.InitClientConfig)
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mrcli [-s] [-n NAMESPACE] (DBNAME CMD [ARGS...] | PING | SAVE | FLUSHALL)",
		Short: "send commands to multi-instance store deployments",
		Long: fmt.Sprintf(`mrcli (v%s)

With a database name and a command, the command is sent verbatim to the
instance that hosts the database and the reply is printed.

With a single argument (PING, SAVE or FLUSHALL), the operation is sent to
every instance of the namespace in parallel. The success token is printed if
all instances succeed, otherwise one line per failed instance.`, Version),
		Version:           Version,
		Args:              validateArgs,
		SilenceErrors:     true,
		SilenceUsage:      true,
		PersistentPreRunE: setupClient,
		RunE:              runCommand,
	}

	// stop at the first positional so the store command may contain flag-like tokens
	cmd.Flags().SetInterspersed(false)
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &UsageError{Msg: err.Error()}
	})

	cmd.Flags().BoolP("unixsocket", "s", false, util.WrapString("Connect through the unix socket of the instances instead of TCP"))
	cmd.Flags().StringP("namespace", "n", "", util.WrapString("Use the instances of the network namespace (implies --unixsocket)"))
	util.SetupClientFlags(cmd)

	return cmd
}

func validateArgs(_ *cobra.Command, args []string) error {
	if len(args) == 0 {
		return &UsageError{Msg: "expected DBNAME CMD [ARGS...] or one of PING, SAVE, FLUSHALL"}
	}
	return nil
}

// setupClient binds the flags and installs the loggers
func setupClient(cmd *cobra.Command, _ []string) error {
	if err := util.BindCommandFlags(cmd); err != nil {
		return err
	}

	config := util.GetClientConfig()
	if err := common.InitLoggers(*config, cmd.ErrOrStderr()); err != nil {
		return &registry.ConfigurationError{Msg: err.Error()}
	}

	Logger.Debugf("client configuration:%s", config.String())
	return nil
}

// runCommand routes the invocation to a broadcast or a single target command
func runCommand(cmd *cobra.Command, args []string) error {
	config := util.GetClientConfig()

	reg, err := registry.Load(config.RegistryPath)
	if err != nil {
		return err
	}

	unixSocket, _ := cmd.Flags().GetBool("unixsocket")
	namespace, _ := cmd.Flags().GetString("namespace")

	factory := newConnectionFactory(*config)
	defer func() {
		if err := factory.Close(); err != nil {
			Logger.Warningf("failed to close connections: %v", err)
		}
	}()

	set := metrics.NewSet()
	dispatcher := dispatch.NewDispatcher(reg, factory, cmd.OutOrStdout(), dispatch.WithMetrics(set))

	if len(args) == 1 {
		err = dispatcher.ExecuteAll(cmd.Context(), namespace, args[0], unixSocket)
	} else {
		err = dispatcher.ExecuteOne(cmd.Context(), args[0], args[1:], namespace, unixSocket)
	}

	if config.MetricsFile != "" {
		if werr := writeMetrics(config.MetricsFile, set); werr != nil {
			Logger.Warningf("failed to write metrics to %s: %v", config.MetricsFile, werr)
		}
	}

	return err
}

// writeMetrics replaces path atomically with the Prometheus text of set
func writeMetrics(path string, set *metrics.Set) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".mrcli-metrics-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	set.WritePrometheus(tmp)
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// --------------------------------------------------------------------------
// Top-level error handling
// --------------------------------------------------------------------------

// report writes the error line of err to w and returns the exit code
func report(err error, w io.Writer) int {
	if err == nil {
		return 0
	}

	// the failed instances have already been printed
	if errors.Is(err, dispatch.ErrInstancesFailed) {
		return 1
	}

	var invalidDB *registry.InvalidDatabaseError
	if errors.As(err, &invalidDB) {
		fmt.Fprintln(w, invalidDB.Error())
		return 1
	}

	fmt.Fprintln(w, dispatch.Describe(err))
	return 1
}

// Execute runs the root command and exits with 0 on success and 1 on any error.
// This is called by main.main().
func Execute() {
	os.Exit(report(RootCmd.Execute(), os.Stderr))
}
