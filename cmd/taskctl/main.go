// taskctl drives the task and user API from the command line. Every
// mutation is followed by a fresh listing of the affected collection.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/fastygo/boilerplate/pkg/apiclient"
)

const usage = `usage: taskctl [--base-url URL] [-o json|yaml] <command> [args]

commands:
  health
  tasks list [--completed true|false] [--priority low|medium|high]
  tasks get ID
  tasks create --title TITLE [--description TEXT] [--priority P]
  tasks update ID [--title T] [--description TEXT | --clear-description] [--completed B] [--priority P]
  tasks delete ID
  users list
  users get ID
  users create --name NAME --email EMAIL
  users update ID [--name NAME] [--email EMAIL]
  users delete ID
`

var errUsage = errors.New("invalid usage")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", describe(err))
		os.Exit(exitCode(err))
	}
}

// describe appends the service's short error text to the client message.
func describe(err error) string {
	if detail := apiclient.DetailOf(err); detail != "" {
		return err.Error() + ": " + detail
	}
	return err.Error()
}

// exitCode maps client error kinds to distinct process exit statuses.
func exitCode(err error) int {
	if errors.Is(err, errUsage) {
		return 64
	}
	switch apiclient.KindOf(err) {
	case apiclient.KindValidation:
		return 2
	case apiclient.KindNotFound:
		return 3
	case apiclient.KindNetwork:
		return 4
	default:
		return 1
	}
}

type cli struct {
	client *apiclient.Client
	out    io.Writer
	format string
}

func run(ctx context.Context, args []string, stdout io.Writer, opts ...apiclient.Option) error {
	var (
		baseURL string
		format  string
		timeout time.Duration
	)

	flagSet := pflag.NewFlagSet("taskctl", pflag.ContinueOnError)
	flagSet.SetOutput(io.Discard)
	flagSet.SetInterspersed(false)
	flagSet.StringVar(&baseURL, "base-url", envOr("TASKCTL_BASE_URL", "http://localhost:3001/api"), "API base URL")
	flagSet.StringVarP(&format, "output", "o", "json", "output format: json or yaml")
	flagSet.DurationVar(&timeout, "timeout", 10*time.Second, "per-command timeout, 0 disables")
	flagSet.BoolP("help", "h", false, "show help")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			fmt.Fprint(stdout, usage)
			return nil
		}
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	if help, _ := flagSet.GetBool("help"); help {
		fmt.Fprint(stdout, usage)
		return nil
	}
	if format != "json" && format != "yaml" {
		return fmt.Errorf("%w: unknown output format %q", errUsage, format)
	}

	rest := flagSet.Args()
	if len(rest) == 0 {
		fmt.Fprint(stdout, usage)
		return fmt.Errorf("%w: missing command", errUsage)
	}

	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	c := &cli{
		client: apiclient.New(baseURL, opts...),
		out:    stdout,
		format: format,
	}

	switch rest[0] {
	case "health":
		return c.health(ctx)
	case "tasks":
		return c.tasks(ctx, rest[1:])
	case "users":
		return c.users(ctx, rest[1:])
	default:
		return fmt.Errorf("%w: unknown command %q", errUsage, rest[0])
	}
}

type healthResult struct {
	BaseURL string `json:"baseUrl"`
	Healthy bool   `json:"healthy"`
}

func (c *cli) health(ctx context.Context) error {
	healthy := c.client.Health(ctx)
	if err := c.print(healthResult{BaseURL: c.client.BaseURL(), Healthy: healthy}); err != nil {
		return err
	}
	if !healthy {
		return &apiclient.Error{Kind: apiclient.KindNetwork, Message: "service is not healthy"}
	}
	return nil
}

// print renders v in the selected format. YAML output goes through the JSON
// encoding first so both formats share the API's field names.
func (c *cli) print(v interface{}) error {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	if c.format == "json" {
		_, err = fmt.Fprintln(c.out, string(raw))
		return err
	}

	var generic interface{}
	if err := json.Unmarshal(raw, &generic); err != nil {
		return err
	}
	enc := yaml.NewEncoder(c.out)
	enc.SetIndent(2)
	if err := enc.Encode(generic); err != nil {
		return err
	}
	return enc.Close()
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
