package cli

import (
	"fmt"

	"github.com/felixgeelhaar/pulse/pkg/domain/project"
	"github.com/spf13/cobra"
)

var teamMemberRole string

var teamCmd = &cobra.Command{
	Use:   "team",
	Short: "Manage the roster used by the capacity forecaster",
}

var teamListCmd = &cobra.Command{
	Use:   "list",
	Short: "List roster members",
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServicesForCurrentDir()
		if err != nil {
			return err
		}

		roster, err := services.Team.ListMembers()
		if err != nil {
			return fmt.Errorf("list members: %w", err)
		}

		if len(roster.Members) == 0 {
			fmt.Println("Roster is empty. Add members with 'pulse team add <user-id> <name>'.")
			return nil
		}

		fmt.Printf("%-12s %-20s %s\n", "ID", "Name", "Role")
		for _, m := range roster.Members {
			role := m.Role
			if role == "" {
				role = "-"
			}
			fmt.Printf("%-12s %-20s %s\n", m.UserID, m.Name, role)
		}
		return nil
	},
}

var teamAddCmd = &cobra.Command{
	Use:   "add <user-id> <name>",
	Short: "Add or update a roster member",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServicesForCurrentDir()
		if err != nil {
			return err
		}

		member := project.Member{UserID: args[0], Name: args[1], Role: teamMemberRole}
		if err := services.Team.AddMember(member); err != nil {
			return fmt.Errorf("add member: %w", err)
		}

		fmt.Printf("Added %s (%s) to the roster.\n", member.Name, member.UserID)
		return nil
	},
}

var teamRemoveCmd = &cobra.Command{
	Use:   "remove <user-id>",
	Short: "Remove a roster member",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServicesForCurrentDir()
		if err != nil {
			return err
		}

		if err := services.Team.RemoveMember(args[0]); err != nil {
			return fmt.Errorf("remove member: %w", err)
		}

		fmt.Printf("Removed %s from the roster.\n", args[0])
		return nil
	},
}

func init() {
	teamAddCmd.Flags().StringVar(&teamMemberRole, "role", "", "Member role (e.g. engineer, designer)")
	teamCmd.AddCommand(teamListCmd)
	teamCmd.AddCommand(teamAddCmd)
	teamCmd.AddCommand(teamRemoveCmd)
	RootCmd.AddCommand(teamCmd)
}
