package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	applicantcmd "github.com/Alijeyrad/uat_backend/cmd/applicant"
	eventscmd "github.com/Alijeyrad/uat_backend/cmd/events"
	questioncmd "github.com/Alijeyrad/uat_backend/cmd/question"
	systemcmd "github.com/Alijeyrad/uat_backend/cmd/system"
)

var (
	cfgFile string
)

var rootCmd = &cobra.Command{
	Use:   "uat",
	Short: "Question catalog and answer validation for benefit application forms.",
	Long: `uat manages the questions that make up benefit application forms.

Administrators create and edit questions in a draft version and publish it
when ready. Applicant answers are validated against the current questions.`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "config.yaml", "config file path")

	rootCmd.AddCommand(systemcmd.NewSystemCommand())
	rootCmd.AddCommand(questioncmd.NewQuestionCommand())
	rootCmd.AddCommand(applicantcmd.NewApplicantCommand())
	rootCmd.AddCommand(eventscmd.NewEventsCommand())
}
