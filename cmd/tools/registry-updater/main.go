// cmd/tools/registry-updater/main.go
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"recruitment-workers/internal/common/validation"
	"recruitment-workers/pkg/registry"
)

const defaultPath = "pkg/registry/activities.json"

func main() {
	if len(os.Args) < 2 {
		help()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "validate":
		err = runValidate(os.Args[2:])
	case "list":
		err = runList(os.Args[2:])
	case "check":
		err = runCheck(os.Args[2:])
	case "update":
		err = runUpdate(os.Args[2:])
	default:
		help()
		return
	}
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

// load reads the catalogue at path, or the embedded one when path is empty.
func load(path string) (*registry.ActivityRegistry, error) {
	if path == "" {
		return registry.Default()
	}
	return registry.LoadRegistry(path)
}

func runValidate(args []string) error {
	cmd := flag.NewFlagSet("validate", flag.ExitOnError)
	path := cmd.String("path", "", "Path to catalogue file (embedded catalogue when empty)")
	cmd.Parse(args)

	reg, err := load(*path)
	if err != nil {
		return fmt.Errorf("failed to load registry: %w", err)
	}
	if err := reg.Check(); err != nil {
		return err
	}
	if _, err := validation.NewValidator(reg); err != nil {
		return err
	}

	fmt.Printf("Registry validation passed. Found %d activities.\n", len(reg.Activities))
	return nil
}

func runList(args []string) error {
	cmd := flag.NewFlagSet("list", flag.ExitOnError)
	path := cmd.String("path", "", "Path to catalogue file (embedded catalogue when empty)")
	cmd.Parse(args)

	reg, err := load(*path)
	if err != nil {
		return fmt.Errorf("failed to load registry: %w", err)
	}
	for _, a := range reg.Activities {
		fmt.Printf("%-26s %-12s timeout=%-4s retries=%d required=%v\n",
			a.TaskType, a.Category, a.Timeout, a.Retries, a.RequiredInputs())
	}
	return nil
}

// runCheck validates a variables document against a task type's input schema, the same way
// the job runner does before calling a handler.
func runCheck(args []string) error {
	cmd := flag.NewFlagSet("check", flag.ExitOnError)
	path := cmd.String("path", "", "Path to catalogue file (embedded catalogue when empty)")
	taskType := cmd.String("task", "", "Task type (e.g., apply-to-job)")
	varsFile := cmd.String("vars", "", "Path to a JSON variables document")
	cmd.Parse(args)

	if *taskType == "" || *varsFile == "" {
		cmd.Usage()
		return fmt.Errorf("task and vars are required for check")
	}

	reg, err := load(*path)
	if err != nil {
		return fmt.Errorf("failed to load registry: %w", err)
	}
	if _, ok := reg.Find(*taskType); !ok {
		return fmt.Errorf("unknown task type %s", *taskType)
	}
	validator, err := validation.NewValidator(reg)
	if err != nil {
		return err
	}
	document, err := os.ReadFile(*varsFile)
	if err != nil {
		return fmt.Errorf("failed to read variables: %w", err)
	}

	result := validator.ValidateJSON(*taskType, string(document))
	if !result.Valid {
		for _, e := range result.Errors {
			fmt.Printf("  %s: %s\n", e.Field, e.Message)
		}
		return fmt.Errorf("variables do not match %s input schema", *taskType)
	}
	fmt.Printf("Variables are valid for %s.\n", *taskType)
	return nil
}

func runUpdate(args []string) error {
	cmd := flag.NewFlagSet("update", flag.ExitOnError)
	path := cmd.String("path", defaultPath, "Path to catalogue file")
	id := cmd.String("id", "", "Activity ID to update")
	field := cmd.String("field", "", "Field to update (status, version, timeout, retries, description)")
	value := cmd.String("value", "", "New value for the field")
	cmd.Parse(args)

	if *id == "" || *field == "" || *value == "" {
		cmd.Usage()
		return fmt.Errorf("id, field, and value are required for update")
	}

	reg, err := registry.LoadRegistry(*path)
	if err != nil {
		return fmt.Errorf("failed to load registry: %w", err)
	}

	var activity *registry.Activity
	for i := range reg.Activities {
		if reg.Activities[i].ID == *id {
			activity = &reg.Activities[i]
			break
		}
	}
	if activity == nil {
		return fmt.Errorf("activity with ID %s not found", *id)
	}

	switch *field {
	case "status":
		activity.ImplementationStatus = *value
	case "version":
		activity.Version = *value
	case "description":
		activity.Description = *value
	case "timeout":
		activity.Timeout = *value
	case "retries":
		retries, err := strconv.Atoi(*value)
		if err != nil {
			return fmt.Errorf("invalid retries value: %w", err)
		}
		activity.Retries = retries
	default:
		return fmt.Errorf("unknown field: %s", *field)
	}

	if err := reg.Check(); err != nil {
		return fmt.Errorf("update rejected: %w", err)
	}
	reg.LastUpdated = time.Now().Format("2006-01-02")

	data, err := json.MarshalIndent(reg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal registry: %w", err)
	}
	if err := os.WriteFile(*path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write registry file: %w", err)
	}
	fmt.Printf("Updated activity %s, field %s to %s\n", *id, *field, *value)
	return nil
}

func help() {
	fmt.Print(`
Usage: registry-updater <command> [flags]

Commands:
  validate  Check the catalogue and compile every input schema
  list      Print task types with timeouts and required inputs
  check     Validate a variables document against a task type's input schema
  update    Update an existing activity's field
  help      Show this help message

Examples:
  registry-updater validate
  registry-updater check -task apply-to-job -vars vars.json
  registry-updater update -id evaluate-application -field timeout -value 20s

Use 'registry-updater <command> -h' for more information about a command.

`)
}
