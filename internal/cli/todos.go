package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"tuntas/internal/action"
	"tuntas/internal/model"
	"tuntas/internal/ui"
)

func newTodosCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "todos",
		Aliases: []string{"todo"},
		Short:   "Todo commands",
	}

	cmd.AddCommand(newTodosListCmd(app))
	cmd.AddCommand(newTodosAddCmd(app))
	cmd.AddCommand(newTodosEditCmd(app))
	cmd.AddCommand(newTodosCheckCmd(app))
	cmd.AddCommand(newTodosRmCmd(app))

	return cmd
}

func newTodosListCmd(app *App) *cobra.Command {
	var sortFlag string

	cmd := &cobra.Command{
		Use:   "list <activity-id>",
		Short: "List the todos of one activity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("activity id: not a number: %q", args[0])
			}
			mode := model.SortMode(sortFlag)
			if !mode.Valid() {
				return fmt.Errorf("unknown sort mode %q (latest|oldest|az|za|unfinished)", sortFlag)
			}

			ctx, cancel := app.ctx(cmd)
			defer cancel()

			detail, err := app.Client.GetActivity(ctx, id)
			if err != nil {
				return fmt.Errorf("get activity: %w", err)
			}

			todos := detail.TodoItems
			model.SortTodos(todos, mode)

			done := 0
			for _, t := range todos {
				if t.IsActive.Done() {
					done++
				}
			}

			lines := []string{
				fmt.Sprintf("%s  %s %d  %s %d",
					ui.TitleStyle.Render(detail.Title),
					ui.SuccessStyle.Render("✔"), done,
					ui.PendingStyle.Render("•"), len(todos)-done),
				ui.MutedStyle.Render(ui.ProgressBar(done, len(todos), 28)),
				"",
			}
			if len(todos) == 0 {
				lines = append(lines, ui.MutedStyle.Render("(no todos yet)"))
			}
			for _, t := range todos {
				box := ui.BoxUnchecked
				title := t.Title
				if t.IsActive.Done() {
					box = ui.SuccessStyle.Render(ui.BoxChecked)
					title = ui.DoneStyle.Render(title)
				}
				lines = append(lines, fmt.Sprintf("%s %s %s  %s %s",
					ui.AccentStyle.Render(strconv.Itoa(t.ID)),
					box,
					ui.PriorityDot(t.Priority),
					title,
					ui.MutedStyle.Render("("+t.Priority.Display()+")")))
			}
			ui.Panel(lines)
			return nil
		},
	}

	cmd.Flags().StringVar(&sortFlag, "sort", string(model.SortLatest), "Sort mode: latest|oldest|az|za|unfinished")
	return cmd
}

func newTodosAddCmd(app *App) *cobra.Command {
	var priority string

	cmd := &cobra.Command{
		Use:   "add <activity-id> <title...>",
		Short: "Add a todo to an activity",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := app.ctx(cmd)
			defer cancel()

			p := action.Payload{
				action.FieldSubAction:       string(action.ActionCreate),
				action.FieldActivityGroupID: args[0],
				action.FieldTitle:           strings.Join(args[1:], " "),
				action.FieldPriority:        priority,
			}
			d := action.NewTodoDispatcher(app.Client, app.Log)
			return reportOutcome(d.Dispatch(ctx, p), "todo created")
		},
	}

	cmd.Flags().StringVar(&priority, "priority", string(model.PriorityNormal), "Priority: very-high|high|normal|low|very-low")
	return cmd
}

// findTodo fetches the activity detail and picks one todo out of it.
// Todos have no standalone GET, so edit/check go through the parent.
func findTodo(cmd *cobra.Command, app *App, activityArg, todoArg string) (*model.Todo, error) {
	activityID, err := strconv.Atoi(activityArg)
	if err != nil {
		return nil, fmt.Errorf("activity id: not a number: %q", activityArg)
	}
	todoID, err := strconv.Atoi(todoArg)
	if err != nil {
		return nil, fmt.Errorf("todo id: not a number: %q", todoArg)
	}

	ctx, cancel := app.ctx(cmd)
	defer cancel()

	detail, err := app.Client.GetActivity(ctx, activityID)
	if err != nil {
		return nil, fmt.Errorf("get activity: %w", err)
	}
	for i := range detail.TodoItems {
		if detail.TodoItems[i].ID == todoID {
			return &detail.TodoItems[i], nil
		}
	}
	return nil, fmt.Errorf("todo %d not found in activity %d", todoID, activityID)
}

func newTodosEditCmd(app *App) *cobra.Command {
	var title, priority string

	cmd := &cobra.Command{
		Use:   "edit <activity-id> <todo-id>",
		Short: "Edit a todo's title and/or priority",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			todo, err := findTodo(cmd, app, args[0], args[1])
			if err != nil {
				return err
			}
			// Unset flags keep the current values; is_active always
			// passes through unchanged on an edit.
			if title == "" {
				title = todo.Title
			}
			if priority == "" {
				priority = string(todo.Priority)
			}

			ctx, cancel := app.ctx(cmd)
			defer cancel()

			p := action.Payload{
				action.FieldSubAction: string(action.ActionUpdate),
				action.FieldID:        args[1],
				action.FieldTitle:     title,
				action.FieldPriority:  priority,
				action.FieldIsActive:  strconv.Itoa(int(todo.IsActive)),
			}
			d := action.NewTodoDispatcher(app.Client, app.Log)
			return reportOutcome(d.Dispatch(ctx, p), "todo updated")
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVar(&priority, "priority", "", "New priority")
	return cmd
}

func newTodosCheckCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "check <activity-id> <todo-id>",
		Short: "Toggle a todo between done and not done",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			todo, err := findTodo(cmd, app, args[0], args[1])
			if err != nil {
				return err
			}

			ctx, cancel := app.ctx(cmd)
			defer cancel()

			p := checkPayload(*todo)
			d := action.NewTodoDispatcher(app.Client, app.Log)
			msg := "todo checked"
			if todo.IsActive.Done() {
				msg = "todo unchecked"
			}
			return reportOutcome(d.Dispatch(ctx, p), msg)
		},
	}
}

// checkPayload builds the check payload with the *toggled* state; the
// dispatcher sends whatever the caller computed, never flips it itself.
func checkPayload(todo model.Todo) action.Payload {
	return action.Payload{
		action.FieldSubAction: string(action.ActionCheck),
		action.FieldID:        strconv.Itoa(todo.ID),
		action.FieldPriority:  string(todo.Priority),
		action.FieldIsActive:  strconv.Itoa(int(todo.IsActive.Toggle())),
	}
}

func newTodosRmCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <todo-id>",
		Short: "Delete a todo",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := app.ctx(cmd)
			defer cancel()

			p := action.Payload{
				action.FieldSubAction: string(action.ActionDelete),
				action.FieldID:        args[0],
			}
			d := action.NewTodoDispatcher(app.Client, app.Log)
			return reportOutcome(d.Dispatch(ctx, p), "todo deleted")
		},
	}
}
