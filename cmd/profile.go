package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dayloop/dayloop/internal/ui"
)

var (
	profileName string
	profileDOB  string
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show or set the profile anchoring the life calendar",
	RunE: func(cmd *cobra.Command, args []string) error {
		plannerStore, err := GetStore()
		if err != nil {
			return err
		}
		defer func() { _ = plannerStore.Close() }()

		profile, err := plannerStore.Profile()
		if err != nil {
			return err
		}
		if profile.Name == "" && profile.DateOfBirth == "" {
			fmt.Println(ui.StyleSubtle.Render("No profile set. Use: dayloop profile set --dob YYYY-MM-DD"))
			return nil
		}
		fmt.Printf("Name: %s\nDate of birth: %s\n", profile.Name, profile.DateOfBirth)
		return nil
	},
}

var profileSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Set profile fields",
	RunE: func(cmd *cobra.Command, args []string) error {
		plannerStore, err := GetStore()
		if err != nil {
			return err
		}
		defer func() { _ = plannerStore.Close() }()

		profile, err := plannerStore.Profile()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("name") {
			profile.Name = profileName
		}
		if cmd.Flags().Changed("dob") {
			profile.DateOfBirth = profileDOB
		}
		if err := plannerStore.SetProfile(profile); err != nil {
			return err
		}
		_ = plannerStore.SetPreferences(plannerPrefs())
		fmt.Println(ui.StyleSuccess.Render("✓ Profile saved"))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(profileCmd)
	profileCmd.AddCommand(profileSetCmd)
	profileSetCmd.Flags().StringVar(&profileName, "name", "", "display name")
	profileSetCmd.Flags().StringVar(&profileDOB, "dob", "", "date of birth, YYYY-MM-DD")
}
