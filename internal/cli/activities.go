package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"tuntas/internal/action"
	"tuntas/internal/ui"
)

func newActivitiesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "activities",
		Aliases: []string{"activity"},
		Short:   "Activity commands",
	}

	cmd.AddCommand(newActivitiesListCmd(app))
	cmd.AddCommand(newActivitiesAddCmd(app))
	cmd.AddCommand(newActivitiesRenameCmd(app))
	cmd.AddCommand(newActivitiesRmCmd(app))

	return cmd
}

func newActivitiesListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all activities",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := app.ctx(cmd)
			defer cancel()

			activities, err := app.Client.ListActivities(ctx)
			if err != nil {
				return fmt.Errorf("list activities: %w", err)
			}

			lines := []string{
				fmt.Sprintf("%s  %s %d",
					ui.TitleStyle.Render("Activities"),
					ui.AccentStyle.Render("Total"), len(activities)),
				"",
			}
			if len(activities) == 0 {
				lines = append(lines, ui.MutedStyle.Render("(none — add one with: tuntas activities add)"))
			}
			for _, a := range activities {
				lines = append(lines, fmt.Sprintf("%s  %s  %s",
					ui.AccentStyle.Render(strconv.Itoa(a.ID)),
					a.Title,
					ui.MutedStyle.Render(a.CreatedAt.Format("2006-01-02"))))
			}
			ui.Panel(lines)
			return nil
		},
	}
}

func newActivitiesAddCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add [title...]",
		Short: "Create an activity (default title when omitted)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := app.ctx(cmd)
			defer cancel()

			p := action.Payload{
				action.FieldSubAction: string(action.ActionCreate),
				action.FieldTitle:     strings.Join(args, " "),
			}
			d := action.NewActivityDispatcher(app.Client, app.Log)
			return reportOutcome(d.Dispatch(ctx, p), "activity created")
		},
	}
}

func newActivitiesRenameCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rename <id> <title...>",
		Short: "Rename an activity",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := app.ctx(cmd)
			defer cancel()

			p := action.Payload{
				action.FieldSubAction: string(action.ActionRenameActivity),
				action.FieldID:        args[0],
				action.FieldTitle:     strings.Join(args[1:], " "),
			}
			d := action.NewActivityDispatcher(app.Client, app.Log)
			return reportOutcome(d.Dispatch(ctx, p), "activity renamed")
		},
	}
}

func newActivitiesRmCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete an activity (hard delete, no undo)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := app.ctx(cmd)
			defer cancel()

			p := action.Payload{
				action.FieldSubAction: string(action.ActionDelete),
				action.FieldID:        args[0],
			}
			d := action.NewActivityDispatcher(app.Client, app.Log)
			return reportOutcome(d.Dispatch(ctx, p), "activity deleted")
		},
	}
}
