package application

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/JonMunkholm/csvedit/internal/audit"
	"github.com/JonMunkholm/csvedit/internal/core"
	"github.com/JonMunkholm/csvedit/internal/logging"
)

// DisplayTable prints every row.
func (c *Controller) DisplayTable(ctx context.Context) error {
	c.prompt.Println()
	for line := range c.table.Display(c.settings.Separator) {
		c.prompt.Println(line)
	}
	return nil
}

// PaginateTable prints the window between two user-selected cells.
func (c *Controller) PaginateTable(ctx context.Context) error {
	w, err := c.SelectWindow(ctx)
	if err != nil {
		return err
	}

	rows, err := c.table.ReadWindow(w)
	if err != nil {
		return err
	}

	c.prompt.Println()
	for _, line := range renderWindow(w, rows, c.settings.WindowSeparator, c.settings.Align) {
		c.prompt.Println(line)
	}
	c.returnToMenu()
	return nil
}

// DeleteCell blanks one confirmed cell with the placeholder marker.
// Declining the confirmation returns core.ErrMenuReset.
func (c *Controller) DeleteCell(ctx context.Context) error {
	coord, err := c.SelectCoordinate(ctx, "\nEnter row index.", "\nEnter column index.")
	if err != nil {
		return err
	}
	current, err := c.table.Cell(coord)
	if err != nil {
		return err
	}

	c.prompt.Printf("\nAre you sure you want to delete this cell %q? [y/n]: \n", current)
	ok, err := c.prompt.Confirm()
	if err != nil {
		return err
	}
	if !ok {
		c.prompt.Println("Operation cancelled.")
		return core.ErrMenuReset
	}

	if err := c.table.DeleteCell(coord); err != nil {
		return err
	}
	c.prompt.Println("Successfully deleted cell.")

	row, col := coord.OneBased()
	logging.WithFields(ctx, "op", "delete_cell", "row", row, "col", col).Info("cell deleted")

	e := audit.NewEntry(ctx, audit.ActionCellDelete, c.settings.Source)
	e.Row, e.Col = row, col
	e.OldValue, e.NewValue = current, c.table.Placeholder()
	c.journal(ctx, e)

	c.returnToMenu()
	return nil
}

// ModifyCell replaces one confirmed cell with a value read from the user.
// Declining the confirmation returns core.ErrMenuReset.
func (c *Controller) ModifyCell(ctx context.Context) error {
	coord, err := c.SelectCoordinate(ctx, "\nEnter row index.", "\nEnter column index.")
	if err != nil {
		return err
	}
	current, err := c.table.Cell(coord)
	if err != nil {
		return err
	}

	c.prompt.Printf("\nAre you sure you want to modify this cell %q? [y/n]: \n", current)
	ok, err := c.prompt.Confirm()
	if err != nil {
		return err
	}
	if !ok {
		c.prompt.Println("Operation cancelled.")
		return core.ErrMenuReset
	}

	c.prompt.Println("Enter the new value for the cell:")
	value, err := c.prompt.ReadLine()
	if err != nil {
		return err
	}

	if err := c.table.WriteCell(coord, value); err != nil {
		return err
	}
	c.prompt.Println("Successfully modified cell.")

	row, col := coord.OneBased()
	logging.WithFields(ctx, "op", "modify_cell", "row", row, "col", col).Info("cell modified")

	e := audit.NewEntry(ctx, audit.ActionCellEdit, c.settings.Source)
	e.Row, e.Col = row, col
	e.OldValue, e.NewValue = current, value
	c.journal(ctx, e)

	c.returnToMenu()
	return nil
}

// SaveTable writes the table to a user-named file. Failures are returned to
// the caller for reporting and are not retried.
func (c *Controller) SaveTable(ctx context.Context) error {
	c.prompt.Println("Enter the name for the new or existing CSV file:")
	name, err := c.prompt.ReadLine()
	if err != nil {
		return err
	}

	dest := c.resolveDestination(strings.TrimSpace(name))
	if err := c.table.Save(c.sink, dest); err != nil {
		return err
	}
	c.prompt.Printf("Data saved to CSV file: %s\n", dest)

	logging.WithFields(ctx, "op", "save", "dest", dest).Info("table saved")

	e := audit.NewEntry(ctx, audit.ActionTableSave, c.settings.Source)
	e.Target = dest
	c.journal(ctx, e)

	c.returnToMenu()
	return nil
}

// resolveDestination places relative names under SaveDir and appends
// SaveExtension when missing. Nothing else about the name is checked.
func (c *Controller) resolveDestination(name string) string {
	ext := c.settings.SaveExtension
	if ext != "" && !strings.HasSuffix(strings.ToLower(name), strings.ToLower(ext)) {
		name += ext
	}
	if c.settings.SaveDir != "" && !filepath.IsAbs(name) {
		name = filepath.Join(c.settings.SaveDir, name)
	}
	return name
}
