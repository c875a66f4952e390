package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"finnadmin/cmd/finnadmin/ui"
	"finnadmin/internal/menu"
)

var menuRefresh bool

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Show the navigation menu",
	Long: `Fetches the navigation menu from the menu endpoint. Failures of any
kind fall back to the built-in menu, so this command always succeeds.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc := menu.NewService(cfg.MenuAPIURL, tokens())

		var m menu.Menu
		if menuRefresh {
			m = svc.Refresh(context.Background())
		} else {
			m = svc.Get(context.Background())
		}

		styles := ui.NewStyles(ui.ThemeNamed(cfg.Theme))
		printMenuItems(styles, m.Items, 0)
		return nil
	},
}

func printMenuItems(styles ui.Styles, items []menu.Item, depth int) {
	for _, item := range items {
		indent := ""
		for i := 0; i < depth; i++ {
			indent += "  "
		}
		line := indent + styles.Bold.Render(item.Label)
		if item.Route != "" {
			line += "  " + styles.Muted.Render(item.Route)
		}
		fmt.Println(line)
		printMenuItems(styles, item.Children, depth+1)
	}
}

func init() {
	menuCmd.Flags().BoolVar(&menuRefresh, "refresh", false, "Bypass the cache and refetch")
}
