package cli

import (
	"net/url"

	"github.com/spf13/cobra"

	"github.com/mcoot/tilepath/internal/api/response"
)

func newGameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "game",
		Short: "Game board commands",
	}

	cmd.AddCommand(newGameCreateCmd())
	cmd.AddCommand(newGameGetCmd())

	return cmd
}

func newGameCreateCmd() *cobra.Command {
	var creator string
	var maxNumber int
	var tileSpecs []string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a game board",
		Example: `  tilepath game create --creator boss1 --max-number 3 \
    --tile 0,0=1 --tile 2,1=2 --tile 4,4=3`,
		RunE: func(cmd *cobra.Command, args []string) error {
			tiles, err := parseTiles(tileSpecs)
			if err != nil {
				return err
			}

			req := map[string]any{
				"creator":       creator,
				"maxNumber":     maxNumber,
				"numberedTiles": tiles,
			}
			var result response.GameCreated

			if err := client.Post("/games", req, &result); err != nil {
				return err
			}

			output(cmd).Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&creator, "creator", "", "Creator gamer key (required)")
	cmd.Flags().IntVar(&maxNumber, "max-number", 0, "Highest tile number")
	cmd.Flags().StringArrayVar(&tileSpecs, "tile", nil, "Numbered tile as row,col=number (repeatable)")
	_ = cmd.MarkFlagRequired("creator")

	return cmd
}

func newGameGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <game_id>",
		Short: "Show a game board",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.Game

			if err := client.Get("/games/"+url.PathEscape(args[0]), &result); err != nil {
				return err
			}

			output(cmd).Print(result)
			return nil
		},
	}
}
