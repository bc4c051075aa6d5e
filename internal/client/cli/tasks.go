package cli

import (
	"context"
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/dmitrijs2005/taskkeeper/internal/client/models"
)

func (a *App) List(ctx context.Context, status string) error {
	tasks, err := a.tasks.List(ctx, status)
	if err != nil {
		return err
	}

	a.mu.Lock()
	a.lastList = tasks
	a.mu.Unlock()

	if len(tasks) == 0 {
		fmt.Fprintln(a.out, "No tasks")
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tSTATUS\tTITLE\tDESCRIPTION\tID")
	for i, t := range tasks {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", i+1, t.Status, t.Title, t.Description, t.ID)
	}
	return tw.Flush()
}

func (a *App) Add(ctx context.Context) error {
	title, err := getSimpleText(a.reader, "Title", a.out)
	if err != nil {
		return err
	}
	description, err := getSimpleText(a.reader, "Description (optional)", a.out)
	if err != nil {
		return err
	}

	t, err := a.tasks.Add(ctx, title, description)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Task created: %s\n", t.ID)
	return nil
}

// Edit prompts for a new title and description. An empty answer keeps the
// current value and "-" clears the description.
func (a *App) Edit(ctx context.Context, ref string) error {
	id := a.resolveID(ref)

	title, err := getSimpleText(a.reader, "New title (empty to keep)", a.out)
	if err != nil {
		return err
	}
	description, err := getSimpleText(a.reader, "New description (empty to keep, - to clear)", a.out)
	if err != nil {
		return err
	}

	var p models.TaskPatch
	if title != "" {
		p.Title = &title
	}
	switch description {
	case "":
	case "-":
		empty := ""
		p.Description = &empty
	default:
		p.Description = &description
	}

	if _, err := a.tasks.Edit(ctx, id, p); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Task updated")
	return nil
}

func (a *App) SetStatus(ctx context.Context, ref, status string) error {
	if _, err := a.tasks.SetStatus(ctx, a.resolveID(ref), status); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Task marked %s\n", status)
	return nil
}

func (a *App) Delete(ctx context.Context, ref string) error {
	if err := a.tasks.Delete(ctx, a.resolveID(ref)); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Task deleted")
	return nil
}

// resolveID maps a 1-based row number from the last listing to a task id.
// Anything else is taken as an id.
func (a *App) resolveID(ref string) string {
	n, err := strconv.Atoi(ref)
	if err != nil {
		return ref
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if n >= 1 && n <= len(a.lastList) {
		return a.lastList[n-1].ID
	}
	return ref
}
