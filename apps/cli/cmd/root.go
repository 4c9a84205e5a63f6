package cmd

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

// Global flags
var (
	dirFlag      string
	configFlag   string
	envFileFlag  string
	timeoutFlag  string
	insecureFlag bool
	proxyFlag    string
	noColorFlag  bool
	debugFlag    bool
)

// Request flags, shared by the method commands, the collection command and
// the root -c shortcut.
var (
	collectionFlag string
	formFlag       bool
	verboseFlag    bool
	dryRunFlag     bool
)

var rootCmd = &cobra.Command{
	Use:   "wave",
	Short: "A small HTTP client for the terminal.",
	Long: `wave sends HTTP requests from the command line, either ad hoc or from
YAML collections stored in the .wave directory.

Examples:
  wave get https://api.example.com/users
  wave post https://api.example.com/users name=alice X-Trace:42
  wave -c users get-user-info`,
	Args:          cobra.ArbitraryArgs,
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE:          rootCommand,
}

func Execute(v, bt string) {
	version = v
	buildTime = bt
	if err := run(os.Args[1:]); err != nil {
		newErrorFormatter().FormatError(err, suggestionFor(err))
		os.Exit(exitCodeFor(err))
	}
}

func run(args []string) error {
	rootCmd.SetArgs(collectionShortcut(args))
	return rootCmd.Execute()
}

// valueFlags are the root flags that take a separate value argument.
var valueFlags = map[string]bool{
	"--dir": true, "--config": true, "--env-file": true, "--timeout": true, "--proxy": true,
}

// collectionShortcut rewrites "wave [global flags] -c <collection> ..." into
// "wave [global flags] collection <collection> ...", so a request named like
// a subcommand (get, list) is still run as a request.
func collectionShortcut(args []string) []string {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--":
			return args
		case arg == "-c" || arg == "--collection":
			if i+1 >= len(args) {
				return args
			}
			return rewriteCollection(args, i, args[i+1], i+2)
		case strings.HasPrefix(arg, "--collection="):
			return rewriteCollection(args, i, strings.TrimPrefix(arg, "--collection="), i+1)
		case strings.HasPrefix(arg, "-c") && !strings.HasPrefix(arg, "--"):
			return rewriteCollection(args, i, strings.TrimPrefix(strings.TrimPrefix(arg, "-c"), "="), i+1)
		case valueFlags[arg]:
			i++
		case !strings.HasPrefix(arg, "-"):
			return args
		}
	}
	return args
}

func rewriteCollection(args []string, at int, name string, rest int) []string {
	out := make([]string, 0, len(args)+1)
	out = append(out, args[:at]...)
	out = append(out, "collection", name)
	return append(out, args[rest:]...)
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dirFlag, "dir", getEnvString("WAVE_DIR", ""), "Collection directory (default .wave) (env: WAVE_DIR)")
	pf.StringVar(&configFlag, "config", getEnvString("WAVE_CONFIG", ""), "Path to config file (env: WAVE_CONFIG)")
	pf.StringVar(&envFileFlag, "env-file", getEnvString("WAVE_ENV_FILE", ""), "Path to .env file for ${env:NAME} placeholders (env: WAVE_ENV_FILE)")
	pf.StringVar(&timeoutFlag, "timeout", "", "Request timeout (e.g., 30s, 1m)")
	pf.BoolVarP(&insecureFlag, "insecure", "k", false, "Disable SSL certificate validation")
	pf.StringVar(&proxyFlag, "proxy", "", "Proxy URL for HTTP requests")
	pf.BoolVar(&noColorFlag, "no-color", getEnvBool("NO_COLOR", false), "Disable colored output (env: NO_COLOR)")
	pf.BoolVar(&debugFlag, "debug", getEnvBool("WAVE_DEBUG", false), "Log debug events to stderr (env: WAVE_DEBUG)")

	rootCmd.Flags().StringVarP(&collectionFlag, "collection", "c", "", "Run <request> from this collection")
	_ = rootCmd.RegisterFlagCompletionFunc("collection", completeCollectionNames)
	addRequestFlags(rootCmd)

	rootCmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		return &usageError{err: err}
	})

	rootCmd.AddCommand(collectionCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(initCmd)
	for _, c := range newMethodCommands() {
		rootCmd.AddCommand(c)
	}
}

func addRequestFlags(c *cobra.Command) {
	c.Flags().BoolVar(&formFlag, "form", false, "Send body fields as application/x-www-form-urlencoded")
	c.Flags().BoolVarP(&verboseFlag, "verbose", "v", getEnvBool("WAVE_VERBOSE", false), "Show all response headers (env: WAVE_VERBOSE)")
	c.Flags().BoolVar(&dryRunFlag, "dry-run", false, "Print the request instead of sending it")
}

func rootCommand(cmd *cobra.Command, args []string) error {
	if collectionFlag == "" {
		if len(args) > 0 {
			return &usageError{err: fmt.Errorf("unknown command %q", args[0])}
		}
		return cmd.Help()
	}
	if len(args) < 1 {
		return &usageError{err: errors.New("-c needs a request name: wave -c <collection> <request> [tokens...]")}
	}
	return runFromCommand(cmd, requestOptions{
		collection: collectionFlag,
		request:    args[0],
		tokens:     args[1:],
	})
}

// usageArgs makes cobra's argument validators report usage errors.
func usageArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := validate(cmd, args); err != nil {
			return &usageError{err: err}
		}
		return nil
	}
}

// Environment variable helpers
func getEnvString(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		b, err := strconv.ParseBool(val)
		if err != nil {
			return val == "yes"
		}
		return b
	}
	return defaultVal
}
