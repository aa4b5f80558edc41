package main

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"invite.link/configs"
	"invite.link/models"
	"invite.link/services"

	"github.com/spf13/cobra"
)

// newRootCmd builds the CLI. newService is called once a command needs the
// database.
func newRootCmd(cfg *configs.AppConfig, newService func() services.IGroupService) *cobra.Command {
	root := &cobra.Command{
		Use:           "invitectl",
		Short:         "Manage wedding invitation groups",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	group := &cobra.Command{
		Use:   "group",
		Short: "Create and list invitation groups",
	}
	group.AddCommand(newGroupAddCmd(cfg, newService), newGroupListCmd(newService))
	root.AddCommand(group)
	return root
}

func newGroupAddCmd(cfg *configs.AppConfig, newService func() services.IGroupService) *cobra.Command {
	var nikkah, wedding, henna bool

	cmd := &cobra.Command{
		Use:   "add NAME MAX_GUESTS_WEDDING MAX_GUESTS_HENNA",
		Short: "Create a group and print its invitation URL",
		Long: `Create a group and print its invitation URL.

Max guests: 0 = no additional guests (RSVP yes/no only), -1 = unlimited,
N > 0 = at most N guests. Put "--" before the arguments when a cap is -1.`,
		Example: `  invitectl group add "The Smith Family" 3 2
  invitectl group add "John Doe" 0 0 --nikkah=false --henna=false
  invitectl group add "Friends" 10 0 --henna=false
  invitectl group add -- "Open House" -1 -1`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			maxWedding, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("max guests values must be integers: %q", args[1])
			}
			maxHenna, err := strconv.Atoi(args[2])
			if err != nil {
				return fmt.Errorf("max guests values must be integers: %q", args[2])
			}

			created, err := newService().CreateGroup(cmd.Context(), services.CreateGroupInput{
				Name:             args[0],
				MaxGuestsWedding: maxWedding,
				MaxGuestsHenna:   maxHenna,
				InvitedToNikkah:  nikkah,
				InvitedToWedding: wedding,
				InvitedToHenna:   henna,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Group created successfully!")
			fmt.Fprintf(out, "  Name:                 %s\n", created.Name)
			fmt.Fprintf(out, "  Invited to:           Nikkah=%t, Wedding=%t, Henna=%t\n",
				created.InvitedToNikkah, created.InvitedToWedding, created.InvitedToHenna)
			fmt.Fprintf(out, "  Max Guests (Wedding): %s\n", capLabel(created.MaxGuestsWedding))
			fmt.Fprintf(out, "  Max Guests (Henna):   %s\n", capLabel(created.MaxGuestsHenna))
			fmt.Fprintf(out, "  Token:                %s\n", created.Token)
			fmt.Fprintf(out, "\n  Invitation URL: %s\n", cfg.InvitationURL(created.Token))
			return nil
		},
	}

	cmd.Flags().BoolVar(&nikkah, "nikkah", true, "invite to the Nikkah ceremony")
	cmd.Flags().BoolVar(&wedding, "wedding", true, "invite to the Reception")
	cmd.Flags().BoolVar(&henna, "henna", true, "invite to the Henna night")
	return cmd
}

func newGroupListCmd(newService func() services.IGroupService) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every group with its RSVP state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			groups, err := newService().ListGroups(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(groups) == 0 {
				fmt.Fprintln(out, "No groups found.")
				return nil
			}

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tNIKKAH\tWEDDING\tHENNA\tMAX W\tMAX H\tRSVP W\tRSVP H\tTOKEN")
			for _, g := range groups {
				view := g.ToGroup()
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
					g.ID, g.Name,
					yesNo(g.InvitedToNikkah), yesNo(g.InvitedToWedding), yesNo(g.InvitedToHenna),
					capLabel(g.MaxGuestsWedding), capLabel(g.MaxGuestsHenna),
					rsvpState(&view, models.EventWedding), rsvpState(&view, models.EventHenna),
					g.Token)
			}
			return w.Flush()
		},
	}
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

func capLabel(n int) string {
	if n == models.UnlimitedGuests {
		return "unlimited"
	}
	return strconv.Itoa(n)
}

func rsvpState(g *models.Group, e models.Event) string {
	switch {
	case !g.InvitedTo(e):
		return "-"
	case !g.HasRSVPed(e):
		return "pending"
	case g.HasAccepted(e):
		return fmt.Sprintf("yes (%d)", len(g.Guests(e)))
	}
	return "no"
}
