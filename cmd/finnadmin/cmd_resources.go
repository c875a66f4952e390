package main

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"finnadmin/cmd/finnadmin/ui"
	"finnadmin/internal/gateway"
	"finnadmin/internal/types"
	"finnadmin/internal/wizard"
)

var agenceCmd = newResourceCmd(types.KindAgence, "agence",
	"Manage agencies and their users")

var tccCmd = newResourceCmd(types.KindTCC, "tcc",
	"Manage account custodians (Teneurs de Comptes Conservateurs)")

var clientCmd = newResourceCmd(types.KindClient, "client",
	"Manage clients")

var iobCmd = newResourceCmd(types.KindIOB, "iob",
	"Manage stock-exchange intermediaries (IOB)")

// newResourceCmd builds the list/show/form command group for one entity
// resource. All four actor resources share the same surface.
func newResourceCmd(kind types.EntityKind, use, short string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List " + kind.Title() + " entities",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(kind)
		},
	}

	showCmd := &cobra.Command{
		Use:   "show [id]",
		Short: "Show one " + kind.Title() + " entity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(kind, args[0])
		},
	}

	formCmd := &cobra.Command{
		Use:   "form [id]",
		Short: "Open the interactive " + kind.Title() + " wizard",
		Long: `Opens the multi-step provisioning wizard. Without an id (or with the
literal "new") the wizard creates a new entity; with an existing id it
loads the entity for editing.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := ""
			if len(args) == 1 {
				id = args[0]
			}
			return runForm(kind, id)
		},
	}

	cmd.AddCommand(listCmd)
	cmd.AddCommand(showCmd)
	cmd.AddCommand(formCmd)
	return cmd
}

func runList(kind types.EntityKind) error {
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout())
	defer cancel()

	entities, err := newClient().For(kind).FetchAll(ctx)
	if err != nil {
		return describeGatewayError(err)
	}

	styles := ui.NewStyles(ui.ThemeNamed(cfg.Theme))
	table := ui.Table{
		Title:   kind.Title(),
		Headers: []string{"ID", "CODE", "LABEL", "STATUS"},
	}
	for _, e := range entities {
		table.AddRow(e.ID, e.Code, e.Label, e.Status)
	}
	fmt.Print(table.View(styles))
	return nil
}

func runShow(kind types.EntityKind, id string) error {
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout())
	defer cancel()

	e, err := newClient().For(kind).FetchOne(ctx, id)
	if err != nil {
		return describeGatewayError(err)
	}

	styles := ui.NewStyles(ui.ThemeNamed(cfg.Theme))
	fmt.Println(styles.Title.Render(kind.Title() + " " + e.ID))

	rows := [][2]string{
		{"Code", e.Code},
		{"Label", e.Label},
		{"Address", e.Address},
		{"SWIFT", e.CodeSwift},
		{"Director", e.DirectorName},
		{"Email", e.DirectorEmail},
		{"Phone", e.DirectorPhone},
		{"Financial institution", e.FinancialInstitutionRef()},
		{"Status", e.Status},
	}
	for _, row := range rows {
		if row[1] == "" {
			continue
		}
		fmt.Println(styles.Muted.Render(fmt.Sprintf("%-24s", row[0])) + row[1])
	}

	if len(e.Users) > 0 {
		fmt.Println()
		fmt.Println(styles.Subtitle.Render("Users"))
		for _, raw := range e.Users {
			u, err := gateway.DecodeUser(raw)
			if err != nil {
				continue
			}
			fmt.Printf("  %s <%s> %s\n", u.FullName, u.Email,
				styles.Muted.Render(strings.Join(u.MergedRoles(), ", ")))
		}
	}
	return nil
}

func runForm(kind types.EntityKind, id string) error {
	styles := ui.NewStyles(ui.ThemeNamed(cfg.Theme))
	model := ui.NewWizard(kind, newClient().For(kind), id, styles)

	final, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
	if err != nil {
		return fmt.Errorf("wizard failed: %w", err)
	}
	if m, ok := final.(ui.WizardModel); ok && m.Done() {
		fmt.Println(styles.Success.Render("Saved."))
	}
	return nil
}

// describeGatewayError rewrites tagged gateway errors into actionable
// CLI messages; everything else passes through.
func describeGatewayError(err error) error {
	switch {
	case gateway.IsKind(err, gateway.KindAuth):
		return fmt.Errorf("authentication failed: run `finnadmin auth login` or check --token")
	case gateway.IsKind(err, gateway.KindNotFound):
		return fmt.Errorf("not found")
	case gateway.IsKind(err, gateway.KindTransient):
		return fmt.Errorf("the backend is unreachable or failing: %w", err)
	}
	return err
}

var _ wizard.Gateway = gateway.Resource{}
