package main

import (
	"context"
	"encoding/json"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/silverbridge/seniorfit-cli/internal/risk"
)

var (
	notifyUser     string
	notifyChronic  bool
	notifyAirRisky bool
	notifyLat      float64
	notifyLon      float64
	notifyDaemon   bool
	notifyAt       string
)

var notifyCmd = &cobra.Command{
	Use:   "notify",
	Short: "Check outdoor safety and suggest a home video when risky",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		env, err := initEnv(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		if !notifyDaemon {
			return runNotify(ctx, env)
		}

		// Daily schedule; one check per day at the configured time.
		scheduler := gocron.NewScheduler(time.Local)
		_, err = scheduler.Every(1).Day().At(notifyAt).Do(func() {
			if err := runNotify(ctx, env); err != nil {
				zap.L().Error("scheduled notification failed", zap.Error(err))
			}
		})
		if err != nil {
			return eris.Wrap(err, "schedule notification job")
		}

		zap.L().Info("notification daemon started", zap.String("at", notifyAt))
		scheduler.StartAsync()
		<-ctx.Done()
		scheduler.Stop()
		return nil
	},
}

func runNotify(ctx context.Context, env *appEnv) error {
	loc := queryLocation(notifyLat, notifyLon)
	snapshot := env.Fetcher.Fetch(ctx, loc)

	out, err := env.Notifier.Notify(ctx, notifyUser, risk.Input{
		Snapshot:          snapshot,
		HasChronicDisease: notifyChronic,
		AirQualityRisky:   notifyAirRisky,
	}, env.Videos)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func init() {
	notifyCmd.Flags().StringVar(&notifyUser, "user", "", "user identifier (required)")
	notifyCmd.Flags().BoolVar(&notifyChronic, "chronic", false, "user has a chronic disease")
	notifyCmd.Flags().BoolVar(&notifyAirRisky, "air-risky", false, "external air-quality grade is risky")
	notifyCmd.Flags().Float64Var(&notifyLat, "lat", 0, "query latitude (default from config)")
	notifyCmd.Flags().Float64Var(&notifyLon, "lon", 0, "query longitude (default from config)")
	notifyCmd.Flags().BoolVar(&notifyDaemon, "daemon", false, "keep running and check once a day")
	notifyCmd.Flags().StringVar(&notifyAt, "at", "08:00", "daily check time, HH:MM (daemon mode)")
	_ = notifyCmd.MarkFlagRequired("user")
	rootCmd.AddCommand(notifyCmd)
}
