package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/deploymenttheory/go-jamfpro-mdm-client/apierrors"
	"github.com/deploymenttheory/go-jamfpro-mdm-client/apiintegrations/jamfpro"
	"github.com/deploymenttheory/go-jamfpro-mdm-client/credentials"
	"github.com/deploymenttheory/go-jamfpro-mdm-client/httpclient"
	"github.com/deploymenttheory/go-jamfpro-mdm-client/version"
	"github.com/maruel/subcommands"
	"go.uber.org/zap"
)

// Exit codes returned by every subcommand.
const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

var (
	errUsage           = errors.New("invalid arguments")
	errCommandRejected = errors.New("command was not accepted by the server")
)

// jamfctlApplication is a subcommands.DefaultApplication with replaceable output streams.
type jamfctlApplication struct {
	*subcommands.DefaultApplication
	out io.Writer
	err io.Writer
}

func (a *jamfctlApplication) GetOut() io.Writer { return a.out }
func (a *jamfctlApplication) GetErr() io.Writer { return a.err }

func newApplication(out, errOut io.Writer) *jamfctlApplication {
	return &jamfctlApplication{
		DefaultApplication: &subcommands.DefaultApplication{
			Name:  "jamfctl",
			Title: "Command line client for the Jamf Pro MDM API.",
			Commands: []*subcommands.Command{
				subcommands.CmdHelp,
				cmdComputers,
				cmdMobileDevices,
				cmdDevice,
				cmdDeviceRaw,
				cmdCommand,
				cmdVersion,
			},
			EnvVars: map[string]subcommands.EnvVarDefinition{
				"JAMF_URL":      {ShortDesc: "Jamf Pro server URL, used when -config is not set"},
				"JAMF_USERNAME": {ShortDesc: "Jamf Pro user name"},
				"JAMF_PASSWORD": {ShortDesc: "Jamf Pro password"},
				"LOG_LEVEL":     {ShortDesc: "client log level", Default: httpclient.DefaultLogLevelString},
			},
		},
		out: out,
		err: errOut,
	}
}

func main() {
	os.Exit(subcommands.Run(newApplication(os.Stdout, os.Stderr), nil))
}

var cmdComputers = &subcommands.Command{
	UsageLine: "computers [options]",
	ShortDesc: "list computers sorted by name",
	CommandRun: func() subcommands.CommandRun {
		return newClientRun(0, func(client *httpclient.Client, _ []string) (any, error) {
			return client.ListComputers()
		})
	},
}

var cmdMobileDevices = &subcommands.Command{
	UsageLine: "mobiledevices [options]",
	ShortDesc: "list mobile devices sorted by name",
	CommandRun: func() subcommands.CommandRun {
		return newClientRun(0, func(client *httpclient.Client, _ []string) (any, error) {
			return client.ListMobileDevices()
		})
	},
}

var cmdDevice = &subcommands.Command{
	UsageLine: "device [options] <id>",
	ShortDesc: "show one mobile device",
	CommandRun: func() subcommands.CommandRun {
		return newClientRun(1, func(client *httpclient.Client, args []string) (any, error) {
			return client.GetMobileDeviceDetail(args[0])
		})
	},
}

var cmdDeviceRaw = &subcommands.Command{
	UsageLine: "device-raw [options] <id>",
	ShortDesc: "show one mobile device as returned by the server",
	CommandRun: func() subcommands.CommandRun {
		return newClientRun(1, func(client *httpclient.Client, args []string) (any, error) {
			return client.GetMobileDeviceDetailRaw(args[0])
		})
	},
}

var cmdCommand = &subcommands.Command{
	UsageLine: "command [options] <id> <name>",
	ShortDesc: "send a management command to a mobile device",
	LongDesc:  "Send a management command to a mobile device. Known commands: " + strings.Join(jamfpro.WellKnownCommands, ", ") + ".",
	CommandRun: func() subcommands.CommandRun {
		return newClientRun(2, func(client *httpclient.Client, args []string) (any, error) {
			result := client.SendCommand(args[0], args[1])
			if !result.Success {
				return result, errCommandRejected
			}
			return result, nil
		})
	},
}

var cmdVersion = &subcommands.Command{
	UsageLine: "version",
	ShortDesc: "print the client version",
	CommandRun: func() subcommands.CommandRun {
		return &versionRun{}
	},
}

type versionRun struct {
	subcommands.CommandRunBase
}

// Run prints the User-Agent the client sends.
func (c *versionRun) Run(a subcommands.Application, args []string, env subcommands.Env) int {
	fmt.Fprintln(a.GetOut(), version.GetUserAgentHeader())
	return exitOK
}

// operation runs against an authenticated client. Its value is printed as JSON unless it fails;
// a rejected command is printed and still fails.
type operation func(client *httpclient.Client, args []string) (any, error)

// clientRun is the shared implementation of every subcommand that talks to the server.
type clientRun struct {
	subcommands.CommandRunBase

	configPath string
	logLevel   string

	arity int
	op    operation
}

func newClientRun(arity int, op operation) *clientRun {
	c := &clientRun{arity: arity, op: op}
	c.Flags.StringVar(&c.configPath, "config", "", "path to a JSON client configuration; environment variables are used when empty")
	c.Flags.StringVar(&c.logLevel, "log-level", "", "override the configured log level, e.g. LogLevelDebug")
	return c
}

// Run runs the operation and maps its outcome to an exit code.
func (c *clientRun) Run(a subcommands.Application, args []string, env subcommands.Env) int {
	if err := c.innerRun(a, args); err != nil {
		printError(a, err)
		if errors.Is(err, errUsage) {
			return exitUsage
		}
		return exitError
	}
	return exitOK
}

func (c *clientRun) innerRun(a subcommands.Application, args []string) error {
	if len(args) != c.arity {
		return fmt.Errorf("%w: expected %d argument(s), got %d", errUsage, c.arity, len(args))
	}

	client, err := c.connect()
	if err != nil {
		return err
	}
	defer func() {
		if err := client.Logout(); err != nil {
			client.Logger.Warn("Logout failed", zap.Error(err))
		}
	}()

	result, err := c.op(client, args)
	if err != nil && !errors.Is(err, errCommandRejected) {
		return err
	}
	if writeErr := writeJSON(a.GetOut(), result); writeErr != nil {
		return writeErr
	}
	return err
}

// connect builds a client from the configuration and authenticates it.
func (c *clientRun) connect() (*httpclient.Client, error) {
	config, err := loadConfig(c.configPath)
	if err != nil {
		return nil, err
	}
	if c.logLevel != "" {
		config.ClientOptions.Logging.LogLevel = c.logLevel
	}

	client, err := httpclient.BuildClient(*config, true)
	if err != nil {
		return nil, err
	}

	if config.Auth.Username == "" || config.Environment.BaseURL == "" {
		if err := client.ConfigureFromStore(credentials.EnvStore{}); err != nil {
			return nil, err
		}
	}

	if _, err := client.Authenticate(); err != nil {
		return nil, err
	}
	return client, nil
}

func loadConfig(path string) (*httpclient.ClientConfig, error) {
	if path == "" {
		return httpclient.LoadConfigFromEnv()
	}
	return httpclient.LoadConfigFromFile(path)
}

func printError(a subcommands.Application, err error) {
	fmt.Fprintf(a.GetErr(), "%s: %s\n", a.GetName(), apierrors.UserMessage(err))
}

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
