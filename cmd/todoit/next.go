package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/todoit/todoit/internal/manager"
	"github.com/todoit/todoit/internal/types"
)

var nextSmart bool

var nextCmd = &cobra.Command{
	Use:   "next <list>",
	Short: "Show the next actionable item",
	Long:  "Finds the first pending, unblocked item in position order. With --smart, traverses the hierarchy and prioritizes any subtree already in progress.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withManager(func(ctx context.Context, m *manager.Manager) error {
			var (
				item *types.Item
				err  error
			)
			if nextSmart {
				item, err = m.GetNextPendingSmart(ctx, args[0])
			} else {
				item, err = m.GetNextPending(ctx, args[0])
			}
			if err != nil {
				return err
			}
			if item == nil {
				fmt.Println(mutedStyle.Render("nothing actionable"))
				return nil
			}
			fmt.Printf("%s  %s\n", accentStyle.Render(item.ItemKey), item.Content)
			return nil
		})
	},
}

func init() {
	nextCmd.Flags().BoolVar(&nextSmart, "smart", false, "use the hierarchy-aware walk")
}
