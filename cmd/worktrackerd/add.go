package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/PratikMahajan1993/worktracker/internal/model"
	syncengine "github.com/PratikMahajan1993/worktracker/internal/sync"
	"github.com/PratikMahajan1993/worktracker/internal/tracker"
)

// service wires the mutation service for one-shot commands.
func (a *app) service() *tracker.Service {
	pusher := syncengine.NewPusher(a.store, a.client, a.engine.Status(), a.logger)
	return tracker.NewService(a.store, pusher, a.tenants)
}

// awaitPush waits for a one-shot command's push so the process doesn't
// exit before the remote call finishes. Push failures are non-fatal:
// the record is already stored locally and the next full push retries.
func awaitPush(h *syncengine.Handle) {
	if err := h.Wait(); err != nil {
		fmt.Printf("Saved locally; push failed (will retry on next full push): %v\n", err)
		return
	}
}

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a record to the local database and push it",
}

var (
	addLogCategory   string
	addLogStart      int64
	addLogEnd        int64
	addLogDuration   int64
	addLogOperator   int64
	addLogExpenses   float64
	addLogDate       int64
	addLogSuccess    bool
	addLogAssignedBy string
	addLogComponents []int64
)

var addLogCmd = &cobra.Command{
	Use:   "log",
	Short: "Add a work activity log",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		start := addLogStart
		if start == 0 {
			start = model.Now()
		}
		logDate := addLogDate
		if logDate == 0 {
			logDate = start
		}

		w := &model.WorkActivityLog{
			CategoryName: addLogCategory,
			StartTime:    start,
			LogDate:      logDate,
		}
		flags := cmd.Flags()
		if flags.Changed("end") {
			w.EndTime = &addLogEnd
		}
		if flags.Changed("duration") {
			w.Duration = &addLogDuration
		}
		if flags.Changed("operator") {
			w.OperatorID = &addLogOperator
		}
		if flags.Changed("expenses") {
			w.Expenses = &addLogExpenses
		}
		if flags.Changed("success") {
			w.TaskSuccessful = &addLogSuccess
		}
		if flags.Changed("assigned-by") {
			w.AssignedBy = &addLogAssignedBy
		}
		if err := w.Validate(); err != nil {
			return err
		}

		handle, err := a.service().CreateWorkActivityLog(cmd.Context(), w, addLogComponents)
		if err != nil {
			return err
		}
		fmt.Printf("Added work activity log %d\n", w.ID)
		awaitPush(handle)
		return nil
	},
}

var (
	addOperatorSalary   float64
	addOperatorRole     string
	addOperatorPriority int64
	addOperatorNotes    string
)

var addOperatorCmd = &cobra.Command{
	Use:   "operator <name>",
	Short: "Add a machine operator",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		o := &model.OperatorInfo{
			Name:         args[0],
			HourlySalary: addOperatorSalary,
			Role:         addOperatorRole,
			Priority:     addOperatorPriority,
			Notes:        addOperatorNotes,
		}
		handle, err := a.service().CreateOperatorInfo(cmd.Context(), o)
		if err != nil {
			return err
		}
		fmt.Printf("Added operator %d (%s)\n", o.ID, o.Name)
		awaitPush(handle)
		return nil
	},
}

var addCategoryCmd = &cobra.Command{
	Use:   "category <name>",
	Short: "Add an activity category",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		c := &model.ActivityCategory{Name: args[0]}
		handle, err := a.service().CreateActivityCategory(cmd.Context(), c)
		if err != nil {
			return err
		}
		fmt.Printf("Added category %q\n", c.Name)
		awaitPush(handle)
		return nil
	},
}

var (
	addWorkerID   int64
	addWorkerRole string
)

var addWorkerCmd = &cobra.Command{
	Use:   "worker <name>",
	Short: "Add or update a production worker",
	Long:  "Worker ids are user-supplied, so adding an existing id overwrites it.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		b := &model.TheBoysInfo{ID: addWorkerID, Name: args[0], Role: addWorkerRole}
		handle, err := a.service().SaveTheBoysInfo(cmd.Context(), b)
		if err != nil {
			return err
		}
		fmt.Printf("Saved worker %d (%s)\n", b.ID, b.Name)
		awaitPush(handle)
		return nil
	},
}

var (
	addProductionBoy      int64
	addProductionMachine  int64
	addProductionQuantity int64
	addProductionRejected int64
	addProductionStart    int64
	addProductionEnd      int64
	addProductionDowntime int64
)

var addProductionCmd = &cobra.Command{
	Use:   "production <component-name>",
	Short: "Add a production run",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		start := addProductionStart
		if start == 0 {
			start = model.Now()
		}
		end := addProductionEnd
		if end == 0 {
			end = start
		}

		p := &model.ProductionActivity{
			ComponentName:      args[0],
			MachineNumber:      addProductionMachine,
			ProductionQuantity: addProductionQuantity,
			StartTime:          start,
			EndTime:            end,
			Duration:           end - start,
		}
		flags := cmd.Flags()
		if flags.Changed("boy") {
			p.BoyID = &addProductionBoy
		}
		if flags.Changed("rejected") {
			p.RejectionQuantity = &addProductionRejected
		}
		if flags.Changed("downtime") {
			p.DowntimeMinutes = &addProductionDowntime
		}

		handle, err := a.service().CreateProductionActivity(cmd.Context(), p)
		if err != nil {
			return err
		}
		fmt.Printf("Added production activity %d\n", p.ID)
		awaitPush(handle)
		return nil
	},
}

var (
	addComponentCustomer string
	addComponentPriority int64
	addComponentCycle    float64
)

var addComponentCmd = &cobra.Command{
	Use:   "component <name>",
	Short: "Add a component",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		c := &model.ComponentInfo{
			Name:             args[0],
			Customer:         addComponentCustomer,
			PriorityLevel:    addComponentPriority,
			CycleTimeMinutes: addComponentCycle,
		}
		handle, err := a.service().CreateComponentInfo(cmd.Context(), c)
		if err != nil {
			return err
		}
		fmt.Printf("Added component %q\n", c.Name)
		awaitPush(handle)
		return nil
	},
}

func init() {
	addLogCmd.Flags().StringVar(&addLogCategory, "category", "", "activity category name (required)")
	addLogCmd.Flags().Int64Var(&addLogStart, "start", 0, "start time, epoch millis (default: now)")
	addLogCmd.Flags().Int64Var(&addLogEnd, "end", 0, "end time, epoch millis")
	addLogCmd.Flags().Int64Var(&addLogDuration, "duration", 0, "duration in millis")
	addLogCmd.Flags().Int64Var(&addLogOperator, "operator", 0, "operator id")
	addLogCmd.Flags().Float64Var(&addLogExpenses, "expenses", 0, "expenses")
	addLogCmd.Flags().Int64Var(&addLogDate, "date", 0, "log date, epoch millis (default: start time)")
	addLogCmd.Flags().BoolVar(&addLogSuccess, "success", false, "whether the task succeeded")
	addLogCmd.Flags().StringVar(&addLogAssignedBy, "assigned-by", "", "who assigned the task")
	addLogCmd.Flags().Int64SliceVar(&addLogComponents, "components", nil, "component ids worked on")
	_ = addLogCmd.MarkFlagRequired("category")

	addOperatorCmd.Flags().Float64Var(&addOperatorSalary, "salary", 0, "hourly salary")
	addOperatorCmd.Flags().StringVar(&addOperatorRole, "role", "", "role")
	addOperatorCmd.Flags().Int64Var(&addOperatorPriority, "priority", 0, "priority")
	addOperatorCmd.Flags().StringVar(&addOperatorNotes, "notes", "", "notes")

	addWorkerCmd.Flags().Int64Var(&addWorkerID, "id", 0, "worker id (required, user-supplied)")
	addWorkerCmd.Flags().StringVar(&addWorkerRole, "role", "", "role")
	_ = addWorkerCmd.MarkFlagRequired("id")

	addProductionCmd.Flags().Int64Var(&addProductionBoy, "boy", 0, "worker id")
	addProductionCmd.Flags().Int64Var(&addProductionMachine, "machine", 0, "machine number")
	addProductionCmd.Flags().Int64Var(&addProductionQuantity, "quantity", 0, "units produced")
	addProductionCmd.Flags().Int64Var(&addProductionRejected, "rejected", 0, "units rejected")
	addProductionCmd.Flags().Int64Var(&addProductionStart, "start", 0, "start time, epoch millis (default: now)")
	addProductionCmd.Flags().Int64Var(&addProductionEnd, "end", 0, "end time, epoch millis")
	addProductionCmd.Flags().Int64Var(&addProductionDowntime, "downtime", 0, "downtime in minutes")

	addComponentCmd.Flags().StringVar(&addComponentCustomer, "customer", "", "customer name")
	addComponentCmd.Flags().Int64Var(&addComponentPriority, "priority", 0, "priority level")
	addComponentCmd.Flags().Float64Var(&addComponentCycle, "cycle-time", 0, "cycle time in minutes")

	addCmd.AddCommand(addLogCmd, addOperatorCmd, addCategoryCmd, addWorkerCmd, addProductionCmd, addComponentCmd)
	rootCmd.AddCommand(addCmd)
}
