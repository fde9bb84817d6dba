package main

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/silverbridge/seniorfit-cli/internal/model"
)

var (
	rotateUser string
	rotateDate string
)

var rotateCmd = &cobra.Command{
	Use:   "rotate",
	Short: "Pick (or replay) today's exercise video for a user",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		env, err := initEnv(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		var entry *model.RotationEntry
		if rotateDate != "" {
			entry, err = env.Selector.ChooseForDate(ctx, rotateUser, rotateDate, env.Videos)
		} else {
			entry, err = env.Selector.ChooseForToday(ctx, rotateUser, env.Videos)
		}
		if err != nil {
			return err
		}

		if entry == nil {
			zap.L().Warn("no videos available, nothing to rotate")
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(entry)
	},
}

func init() {
	rotateCmd.Flags().StringVar(&rotateUser, "user", "", "user identifier (required)")
	rotateCmd.Flags().StringVar(&rotateDate, "date", "", "rotation date YYYY-MM-DD (default today)")
	_ = rotateCmd.MarkFlagRequired("user")
	rootCmd.AddCommand(rotateCmd)
}
