package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/todoit/todoit/internal/manager"
)

var propertyCmd = &cobra.Command{
	Use:   "property",
	Short: "Manage list and item properties",
}

var propertyItemParent string

var propertyListSetCmd = &cobra.Command{
	Use:   "list-set <list> <key> <value>",
	Short: "Set a list property",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withManager(func(ctx context.Context, m *manager.Manager) error {
			return m.SetListProperty(ctx, args[0], args[1], args[2])
		})
	},
}

var propertyListGetCmd = &cobra.Command{
	Use:   "list-get <list> <key>",
	Short: "Get a single list property",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withManager(func(ctx context.Context, m *manager.Manager) error {
			value, found, err := m.GetListProperty(ctx, args[0], args[1])
			if err != nil {
				return err
			}
			if !found {
				fmt.Println(mutedStyle.Render("(not set)"))
				return nil
			}
			fmt.Println(value)
			return nil
		})
	},
}

var propertyListAllCmd = &cobra.Command{
	Use:   "list-all <list>",
	Short: "Get every property on a list",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withManager(func(ctx context.Context, m *manager.Manager) error {
			props, err := m.GetListProperties(ctx, args[0])
			if err != nil {
				return err
			}
			for k, v := range props {
				fmt.Printf("%s=%s\n", k, v)
			}
			return nil
		})
	},
}

var propertyListDeleteCmd = &cobra.Command{
	Use:   "list-delete <list> <key>",
	Short: "Delete a list property",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withManager(func(ctx context.Context, m *manager.Manager) error {
			return m.DeleteListProperty(ctx, args[0], args[1])
		})
	},
}

var propertyItemSetCmd = &cobra.Command{
	Use:   "item-set <list> <item> <key> <value>",
	Short: "Set an item property",
	Args:  cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withManager(func(ctx context.Context, m *manager.Manager) error {
			return m.SetItemProperty(ctx, args[0], args[1], propertyItemParent, args[2], args[3])
		})
	},
}

var propertyItemGetCmd = &cobra.Command{
	Use:   "item-get <list> <item> <key>",
	Short: "Get a single item property",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withManager(func(ctx context.Context, m *manager.Manager) error {
			value, found, err := m.GetItemProperty(ctx, args[0], args[1], propertyItemParent, args[2])
			if err != nil {
				return err
			}
			if !found {
				fmt.Println(mutedStyle.Render("(not set)"))
				return nil
			}
			fmt.Println(value)
			return nil
		})
	},
}

var propertyItemAllCmd = &cobra.Command{
	Use:   "item-all <list> <item>",
	Short: "Get every property on an item",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withManager(func(ctx context.Context, m *manager.Manager) error {
			props, err := m.GetItemProperties(ctx, args[0], args[1], propertyItemParent)
			if err != nil {
				return err
			}
			for k, v := range props {
				fmt.Printf("%s=%s\n", k, v)
			}
			return nil
		})
	},
}

var propertyItemDeleteCmd = &cobra.Command{
	Use:   "item-delete <list> <item> <key>",
	Short: "Delete an item property",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withManager(func(ctx context.Context, m *manager.Manager) error {
			return m.DeleteItemProperty(ctx, args[0], args[1], propertyItemParent, args[2])
		})
	},
}

func init() {
	for _, c := range []*cobra.Command{propertyItemSetCmd, propertyItemGetCmd, propertyItemAllCmd, propertyItemDeleteCmd} {
		c.Flags().StringVar(&propertyItemParent, "parent", "", "parent item key")
	}
	propertyCmd.AddCommand(
		propertyListSetCmd, propertyListGetCmd, propertyListAllCmd, propertyListDeleteCmd,
		propertyItemSetCmd, propertyItemGetCmd, propertyItemAllCmd, propertyItemDeleteCmd,
	)
}
