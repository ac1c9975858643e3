// cmd/tools/registry-updater/main.go
package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/janhavi-28/SEO-Agent/pkg/registry"
)

var (
	registryPath string
	force        bool
)

var rootCmd = &cobra.Command{
	Use:           "registry-updater",
	Short:         "Maintain the marketing activity registry file",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the built-in marketing activity registry to a file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := exportDefaults(force); err != nil {
			return err
		}
		fmt.Printf("Wrote built-in registry to %s\n", registryPath)
		return nil
	},
}

var updateCmd = &cobra.Command{
	Use:     "update <id> <field> <value>",
	Short:   "Update an existing activity's field",
	Example: "  registry-updater update content-calendar timeout 120s",
	Args:    cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := updateActivity(args[0], args[1], args[2]); err != nil {
			return err
		}
		fmt.Printf("Updated activity %s, field %s to %s\n", args[0], args[1], args[2])
		return nil
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the registry file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := registry.LoadRegistry(registryPath)
		if err != nil {
			return fmt.Errorf("registry validation failed: %w", err)
		}
		fmt.Printf("Registry validation passed. Found %d activities.\n", len(reg.Activities))
		return nil
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the activities in a registry file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return listActivities()
	},
}

func main() {
	rootCmd.PersistentFlags().StringVarP(&registryPath, "path", "p", "configs/activity-registry.json", "Path to registry file")
	exportCmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing registry file")

	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(listCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func exportDefaults(force bool) error {
	if _, err := os.Stat(registryPath); err == nil && !force {
		return fmt.Errorf("%s already exists, pass --force to overwrite", registryPath)
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return registry.Default().Save(registryPath)
}

func updateActivity(id, field, value string) error {
	reg, err := registry.LoadRegistry(registryPath)
	if err != nil {
		return fmt.Errorf("failed to load registry: %w", err)
	}

	idx := -1
	for i := range reg.Activities {
		if reg.Activities[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("activity with ID %s not found", id)
	}

	a := &reg.Activities[idx]
	switch field {
	case "status":
		a.ImplementationStatus = value
	case "version":
		a.Version = value
	case "displayName":
		a.DisplayName = value
	case "description":
		a.Description = value
	case "category":
		a.Category = value
	case "taskType":
		a.TaskType = value
	case "route":
		a.Route = value
	case "timeout":
		a.Timeout = value
	case "retries":
		retries, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid retries value: %w", err)
		}
		a.Retries = retries
	default:
		return fmt.Errorf("unknown field: %s", field)
	}

	if err := reg.Validate(); err != nil {
		return err
	}
	return reg.Save(registryPath)
}

func listActivities() error {
	reg, err := registry.Load(registryPath)
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTASK TYPE\tROUTE\tTIMEOUT\tSTATUS")
	for _, a := range reg.Activities {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", a.ID, a.TaskType, a.Route, a.Timeout, a.ImplementationStatus)
	}
	return w.Flush()
}
