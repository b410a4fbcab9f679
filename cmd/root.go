package cmd

import "github.com/spf13/cobra"

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "vxtuisong",
		Short:         "vxtuisong: push a daily weather and dates briefing over WeChat",
		Long:          "vxtuisong composes a daily briefing (weather, date, anniversaries, birthdays) and delivers it to the configured recipients as WeChat template messages.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	app, err := wireApp()
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newSendCmd(app),
		newPreviewCmd(app),
	)

	return rootCmd
}
