package cli

import (
	"net/url"

	"github.com/spf13/cobra"

	"github.com/mcoot/tilepath/internal/api/response"
)

func newAttemptCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "attempt",
		Short: "Record and list attempts at a game",
	}

	cmd.AddCommand(newAttemptRecordCmd())
	cmd.AddCommand(newAttemptListCmd())

	return cmd
}

func newAttemptRecordCmd() *cobra.Command {
	var player, pathSpec string
	var duration, mainTime float64
	var successful bool

	cmd := &cobra.Command{
		Use:     "record <game_id>",
		Short:   "Record an attempt at a game",
		Args:    cobra.ExactArgs(1),
		Example: `  tilepath attempt record 65a1b2c3d4e5f60718293a4b --player ace --path "0,0;0,1;1,1" --duration 12.5 --successful`,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := parsePath(pathSpec)
			if err != nil {
				return err
			}

			req := map[string]any{
				"player":     player,
				"path":       path,
				"duration":   duration,
				"successful": successful,
			}
			if cmd.Flags().Changed("main-time") {
				req["mainTime"] = mainTime
			}
			var result response.Message

			if err := client.Post("/games/"+url.PathEscape(args[0])+"/attempt", req, &result); err != nil {
				return err
			}

			output(cmd).Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&player, "player", "", "Player gamer key (required)")
	cmd.Flags().StringVar(&pathSpec, "path", "", "Visited cells as row,col pairs separated by ';'")
	cmd.Flags().Float64Var(&duration, "duration", 0, "Seconds taken")
	cmd.Flags().BoolVar(&successful, "successful", false, "Whether the path was completed")
	cmd.Flags().Float64Var(&mainTime, "main-time", 0, "Optional main phase time in seconds")
	_ = cmd.MarkFlagRequired("player")

	return cmd
}

func newAttemptListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list <game_id>",
		Short: "List attempts at a game, oldest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []response.Attempt

			if err := client.Get("/games/"+url.PathEscape(args[0])+"/attempts", &result); err != nil {
				return err
			}

			output(cmd).Print(result)
			return nil
		},
	}
}
