package main

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/silverbridge/seniorfit-cli/internal/dataset"
	"github.com/silverbridge/seniorfit-cli/internal/rotation"
)

var videosByRegion bool

var videosCmd = &cobra.Command{
	Use:   "videos",
	Short: "List the exercise-video catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		videos, err := dataset.LoadVideos(cfg.Datasets.Videos)
		if err != nil {
			return err
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")

		if !videosByRegion {
			return enc.Encode(videos)
		}

		groups, regions := rotation.GroupByRegion(videos)
		summary := make([]map[string]interface{}, 0, len(regions))
		for _, region := range regions {
			names := make([]string, 0, len(groups[region]))
			for _, v := range groups[region] {
				names = append(names, v.Name)
			}
			summary = append(summary, map[string]interface{}{
				"region": region,
				"count":  len(names),
				"videos": names,
			})
		}
		return enc.Encode(summary)
	},
}

func init() {
	videosCmd.Flags().BoolVar(&videosByRegion, "by-region", false, "group the catalog by body region")
	rootCmd.AddCommand(videosCmd)
}
