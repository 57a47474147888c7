package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dayloop/dayloop/internal/logger"
	"github.com/dayloop/dayloop/models"
	"github.com/dayloop/dayloop/store"
)

var (
	// cfgFile is the path to the configuration file.
	cfgFile string
	// verbose enables verbose output.
	verbose bool
	// ErrNoTasksFound is returned when an interactive selection is attempted
	// but no tasks match.
	ErrNoTasksFound = errors.New("no tasks found matching your criteria")
	// version is the application version.
	version = "0.3.0"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "dayloop",
	Short: "dayloop plans your day against a fixed time budget",
	Long: `dayloop is a personal day planner for the command line.

Tasks are allocated against a 24-hour daily budget without overlap, recurring
reminders fire from a foreground watch loop, and completed progressive tasks
roll up into per-day progress and week wins on a life calendar anchored at
your date of birth.`,
	Version: version,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			_ = cmd.Help()
			os.Exit(0)
		}
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	defer logger.HandlePanic()
	logger.SetVersion(version)
	logger.SetCommand("dayloop " + strings.Join(os.Args[1:], " "))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(InitConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is $HOME/.dayloop.yaml or ./.dayloop.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

// DataFilePath returns the full path to the state document.
func DataFilePath() string {
	config := GetConfig()
	return filepath.Join(config.Project.RootDir, config.Data.File)
}

// GetStore initializes and returns the planner store.
func GetStore() (store.PlannerStore, error) {
	s := store.NewFileStore()
	config := GetConfig()
	err := s.Initialize(map[string]string{
		"dataFile":            DataFilePath(),
		"dataFileFormat":      config.Data.Format,
		"reminderLeadMinutes": fmt.Sprintf("%d", config.Planner.ReminderLeadMinutes),
	})
	if err != nil {
		return nil, fmt.Errorf("initialize store at %s: %w", DataFilePath(), err)
	}
	return s, nil
}

// selectTaskInteractive presents a prompt to pick a task from a filtered
// list.
func selectTaskInteractive(plannerStore store.PlannerStore, filterFn func(models.Task) bool, label string) (models.Task, error) {
	tasks, err := plannerStore.ListTasks(filterFn, sortTasksForDisplay)
	if err != nil {
		return models.Task{}, fmt.Errorf("list tasks for selection: %w", err)
	}
	if len(tasks) == 0 {
		return models.Task{}, ErrNoTasksFound
	}

	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}?",
		Active:   `> {{ .Title | cyan }} ({{ .ScheduledFor }}, {{ .Status }})`,
		Inactive: `  {{ .Title | faint }} ({{ .ScheduledFor }}, {{ .Status }})`,
		Selected: `{{ "✔" | green }} {{ .Title | faint }}`,
	}
	prompt := promptui.Select{
		Label:     label,
		Items:     tasks,
		Templates: templates,
		Size:      10,
	}
	i, _, err := prompt.Run()
	if err != nil {
		return models.Task{}, fmt.Errorf("selection aborted: %w", err)
	}
	return tasks[i], nil
}
