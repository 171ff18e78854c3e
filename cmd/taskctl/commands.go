package main

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/pflag"

	"github.com/fastygo/boilerplate/api/transport"
	"github.com/fastygo/boilerplate/domain"
	"github.com/fastygo/boilerplate/pkg/apiclient"
)

// listing is printed for list commands and after every mutation.
type listing struct {
	Record interface{} `json:"record,omitempty"`
	Data   interface{} `json:"data"`
	Total  int         `json:"total"`
}

func newFlagSet(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

// parseWithID parses args and requires exactly one positional id.
func parseWithID(name string, fs *pflag.FlagSet, args []string) (string, error) {
	if err := fs.Parse(args); err != nil {
		return "", fmt.Errorf("%w: %v", errUsage, err)
	}
	if fs.NArg() != 1 {
		return "", fmt.Errorf("%w: %s needs exactly one id", errUsage, name)
	}
	return fs.Arg(0), nil
}

func (c *cli) tasks(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: missing tasks subcommand", errUsage)
	}
	tasks := apiclient.NewTasks(c.client)

	switch args[0] {
	case "list":
		fs := newFlagSet("tasks list")
		completed := fs.String("completed", "", "filter by completion: true or false")
		priority := fs.String("priority", "", "filter by priority")
		if err := fs.Parse(args[1:]); err != nil {
			return fmt.Errorf("%w: %v", errUsage, err)
		}
		query := apiclient.TaskQuery{Priority: domain.Priority(*priority)}
		if fs.Changed("completed") {
			value, err := strconv.ParseBool(*completed)
			if err != nil {
				return fmt.Errorf("%w: --completed must be true or false", errUsage)
			}
			query.Completed = &value
		}
		return c.printTasks(ctx, tasks, query, nil)

	case "get":
		id, err := parseWithID("tasks get", newFlagSet("tasks get"), args[1:])
		if err != nil {
			return err
		}
		task, err := tasks.Get(ctx, id)
		if err != nil {
			return err
		}
		return c.print(task)

	case "create":
		fs := newFlagSet("tasks create")
		var req transport.TaskCreateRequest
		fs.StringVar(&req.Title, "title", "", "task title")
		fs.StringVar(&req.Description, "description", "", "task description")
		fs.StringVar(&req.Priority, "priority", "", "low, medium or high")
		if err := fs.Parse(args[1:]); err != nil {
			return fmt.Errorf("%w: %v", errUsage, err)
		}
		created, err := tasks.Create(ctx, req)
		if err != nil {
			return err
		}
		return c.printTasks(ctx, tasks, apiclient.TaskQuery{}, created)

	case "update":
		fs := newFlagSet("tasks update")
		title := fs.String("title", "", "new title")
		description := fs.String("description", "", "new description")
		clearDescription := fs.Bool("clear-description", false, "remove the description")
		completed := fs.Bool("completed", false, "completion state")
		priority := fs.String("priority", "", "low, medium or high")
		id, err := parseWithID("tasks update", fs, args[1:])
		if err != nil {
			return err
		}

		var req transport.TaskUpdateRequest
		if fs.Changed("title") {
			req.Title = domain.Some(*title)
		}
		if fs.Changed("description") {
			req.Description = domain.Some(*description)
		}
		if *clearDescription {
			req.Description = domain.Null[string]()
		}
		if fs.Changed("completed") {
			req.Completed = domain.Some(*completed)
		}
		if fs.Changed("priority") {
			req.Priority = domain.Some(*priority)
		}
		updated, err := tasks.Update(ctx, id, req)
		if err != nil {
			return err
		}
		return c.printTasks(ctx, tasks, apiclient.TaskQuery{}, updated)

	case "delete":
		id, err := parseWithID("tasks delete", newFlagSet("tasks delete"), args[1:])
		if err != nil {
			return err
		}
		if err := tasks.Delete(ctx, id); err != nil {
			return err
		}
		return c.printTasks(ctx, tasks, apiclient.TaskQuery{}, nil)

	default:
		return fmt.Errorf("%w: unknown tasks subcommand %q", errUsage, args[0])
	}
}

func (c *cli) printTasks(ctx context.Context, tasks *apiclient.Tasks, query apiclient.TaskQuery, record *domain.Task) error {
	items, total, err := tasks.List(ctx, query)
	if err != nil {
		return err
	}
	out := listing{Data: items, Total: total}
	if record != nil {
		out.Record = record
	}
	return c.print(out)
}

func (c *cli) users(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: missing users subcommand", errUsage)
	}
	users := apiclient.NewUsers(c.client)

	switch args[0] {
	case "list":
		if err := newFlagSet("users list").Parse(args[1:]); err != nil {
			return fmt.Errorf("%w: %v", errUsage, err)
		}
		return c.printUsers(ctx, users, nil)

	case "get":
		id, err := parseWithID("users get", newFlagSet("users get"), args[1:])
		if err != nil {
			return err
		}
		user, err := users.Get(ctx, id)
		if err != nil {
			return err
		}
		return c.print(user)

	case "create":
		fs := newFlagSet("users create")
		var req transport.UserCreateRequest
		fs.StringVar(&req.Name, "name", "", "user name")
		fs.StringVar(&req.Email, "email", "", "user email")
		if err := fs.Parse(args[1:]); err != nil {
			return fmt.Errorf("%w: %v", errUsage, err)
		}
		created, err := users.Create(ctx, req)
		if err != nil {
			return err
		}
		return c.printUsers(ctx, users, created)

	case "update":
		fs := newFlagSet("users update")
		name := fs.String("name", "", "new name")
		email := fs.String("email", "", "new email")
		id, err := parseWithID("users update", fs, args[1:])
		if err != nil {
			return err
		}
		var req transport.UserUpdateRequest
		if fs.Changed("name") {
			req.Name = domain.Some(*name)
		}
		if fs.Changed("email") {
			req.Email = domain.Some(*email)
		}
		updated, err := users.Update(ctx, id, req)
		if err != nil {
			return err
		}
		return c.printUsers(ctx, users, updated)

	case "delete":
		id, err := parseWithID("users delete", newFlagSet("users delete"), args[1:])
		if err != nil {
			return err
		}
		if err := users.Delete(ctx, id); err != nil {
			return err
		}
		return c.printUsers(ctx, users, nil)

	default:
		return fmt.Errorf("%w: unknown users subcommand %q", errUsage, args[0])
	}
}

func (c *cli) printUsers(ctx context.Context, users *apiclient.Users, record *domain.User) error {
	items, total, err := users.List(ctx)
	if err != nil {
		return err
	}
	out := listing{Data: items, Total: total}
	if record != nil {
		out.Record = record
	}
	return c.print(out)
}
