package cli

import (
	"fmt"
	"time"

	"github.com/felixgeelhaar/pulse/pkg/domain/project"
	"github.com/spf13/cobra"
)

var timeOffHoursPerDay float64

var timeOffCmd = &cobra.Command{
	Use:   "timeoff",
	Short: "Record absences the capacity forecaster should discount",
}

var timeOffListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded absences",
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServicesForCurrentDir()
		if err != nil {
			return err
		}

		timeOff, err := services.Team.ListTimeOff()
		if err != nil {
			return fmt.Errorf("list time off: %w", err)
		}

		if len(timeOff) == 0 {
			fmt.Println("No absences recorded.")
			return nil
		}

		fmt.Printf("%-12s %-12s %-12s %s\n", "Member", "From", "To", "Hours/day")
		for _, entry := range timeOff {
			fmt.Printf("%-12s %-12s %-12s %.1f\n",
				entry.MemberID,
				entry.StartDate.Format("2006-01-02"),
				entry.EndDate.Format("2006-01-02"),
				entry.HoursPerDay)
		}
		return nil
	},
}

var timeOffAddCmd = &cobra.Command{
	Use:   "add <member-id> <start> <end>",
	Short: "Record an absence (dates as YYYY-MM-DD)",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServicesForCurrentDir()
		if err != nil {
			return err
		}

		start, err := time.Parse("2006-01-02", args[1])
		if err != nil {
			return fmt.Errorf("invalid start date %q: %w", args[1], err)
		}
		end, err := time.Parse("2006-01-02", args[2])
		if err != nil {
			return fmt.Errorf("invalid end date %q: %w", args[2], err)
		}

		entry := project.TimeOff{
			MemberID:    args[0],
			StartDate:   start,
			EndDate:     end,
			HoursPerDay: timeOffHoursPerDay,
		}
		if err := services.Team.AddTimeOff(entry); err != nil {
			return fmt.Errorf("add time off: %w", err)
		}

		fmt.Printf("Recorded absence for %s from %s to %s.\n", args[0], args[1], args[2])
		return nil
	},
}

var timeOffRemoveCmd = &cobra.Command{
	Use:   "remove <member-id> <start>",
	Short: "Remove absences starting on the given date",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServicesForCurrentDir()
		if err != nil {
			return err
		}

		start, err := time.Parse("2006-01-02", args[1])
		if err != nil {
			return fmt.Errorf("invalid start date %q: %w", args[1], err)
		}

		removed, err := services.Team.RemoveTimeOff(args[0], start)
		if err != nil {
			return fmt.Errorf("remove time off: %w", err)
		}

		if removed == 0 {
			fmt.Println("No matching absences found.")
			return nil
		}
		fmt.Printf("Removed %d absence(s).\n", removed)
		return nil
	},
}

func init() {
	timeOffAddCmd.Flags().Float64Var(&timeOffHoursPerDay, "hours", 8, "Absent hours per day")
	timeOffCmd.AddCommand(timeOffListCmd)
	timeOffCmd.AddCommand(timeOffAddCmd)
	timeOffCmd.AddCommand(timeOffRemoveCmd)
	RootCmd.AddCommand(timeOffCmd)
}
