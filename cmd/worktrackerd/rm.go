package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var rmCmd = &cobra.Command{
	Use:   "rm",
	Short: "Delete a record locally and remotely",
}

func parseIDArg(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", arg)
	}
	return id, nil
}

var rmLogCmd = &cobra.Command{
	Use:   "log <id>",
	Short: "Delete a work activity log and its component links",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseIDArg(args[0])
		if err != nil {
			return err
		}
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		handle, err := a.service().DeleteWorkActivityLog(cmd.Context(), id)
		if err != nil {
			return err
		}
		fmt.Printf("Deleted work activity log %d\n", id)
		awaitPush(handle)
		return nil
	},
}

var rmOperatorCmd = &cobra.Command{
	Use:   "operator <id>",
	Short: "Delete a machine operator",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseIDArg(args[0])
		if err != nil {
			return err
		}
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		handle, err := a.service().DeleteOperatorInfo(cmd.Context(), id)
		if err != nil {
			return err
		}
		fmt.Printf("Deleted operator %d\n", id)
		awaitPush(handle)
		return nil
	},
}

var rmCategoryCmd = &cobra.Command{
	Use:   "category <name>",
	Short: "Delete an activity category",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		name := args[0]
		id, err := resolveCategoryID(cmd, a, name)
		if err != nil {
			return err
		}

		handle, err := a.service().DeleteActivityCategory(cmd.Context(), id, name)
		if err != nil {
			return err
		}
		fmt.Printf("Deleted category %q\n", name)
		awaitPush(handle)
		return nil
	},
}

// resolveCategoryID looks up the local surrogate id for a category name.
func resolveCategoryID(cmd *cobra.Command, a *app, name string) (int64, error) {
	categories, err := a.store.ListActivityCategories(cmd.Context())
	if err != nil {
		return 0, err
	}
	for _, c := range categories {
		if c.Name == name {
			return c.ID, nil
		}
	}
	return 0, fmt.Errorf("no category named %q", name)
}

var rmWorkerCmd = &cobra.Command{
	Use:   "worker <id>",
	Short: "Delete a production worker",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseIDArg(args[0])
		if err != nil {
			return err
		}
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		handle, err := a.service().DeleteTheBoysInfo(cmd.Context(), id)
		if err != nil {
			return err
		}
		fmt.Printf("Deleted worker %d\n", id)
		awaitPush(handle)
		return nil
	},
}

var rmProductionCmd = &cobra.Command{
	Use:   "production <id>",
	Short: "Delete a production run",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseIDArg(args[0])
		if err != nil {
			return err
		}
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		handle, err := a.service().DeleteProductionActivity(cmd.Context(), id)
		if err != nil {
			return err
		}
		fmt.Printf("Deleted production activity %d\n", id)
		awaitPush(handle)
		return nil
	},
}

var rmComponentCmd = &cobra.Command{
	Use:   "component <name>",
	Short: "Delete a component",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		name := args[0]
		id, err := resolveComponentID(cmd, a, name)
		if err != nil {
			return err
		}

		handle, err := a.service().DeleteComponentInfo(cmd.Context(), id, name)
		if err != nil {
			return err
		}
		fmt.Printf("Deleted component %q\n", name)
		awaitPush(handle)
		return nil
	},
}

func resolveComponentID(cmd *cobra.Command, a *app, name string) (int64, error) {
	components, err := a.store.ListComponentInfo(cmd.Context())
	if err != nil {
		return 0, err
	}
	for _, c := range components {
		if c.Name == name {
			return c.ID, nil
		}
	}
	return 0, fmt.Errorf("no component named %q", name)
}

func init() {
	rmCmd.AddCommand(rmLogCmd, rmOperatorCmd, rmCategoryCmd, rmWorkerCmd, rmProductionCmd, rmComponentCmd)
	rootCmd.AddCommand(rmCmd)
}
