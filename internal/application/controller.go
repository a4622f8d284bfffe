// Package application drives the interactive editor: the top-level menu,
// coordinate entry with retry and abort, and the confirmed mutations.
package application

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/JonMunkholm/csvedit/internal/audit"
	"github.com/JonMunkholm/csvedit/internal/core"
	"github.com/JonMunkholm/csvedit/internal/logging"
)

// Settings holds presentation and persistence options for a Controller.
type Settings struct {
	Source          string // path the table was loaded from
	SaveDir         string
	SaveExtension   string
	Separator       string // full display
	WindowSeparator string // paginated display
	Align           bool
	Pause           time.Duration
	AuditTimeout    time.Duration
}

// Controller owns the loaded table for the lifetime of the session and runs
// every command against it.
type Controller struct {
	table    *core.Table
	prompt   *Prompter
	sink     core.RowSink
	recorder audit.Recorder
	settings Settings
	sleep    func(time.Duration)
}

// NewController wires a table to its prompter, save sink and journal.
// A nil recorder disables journaling.
func NewController(table *core.Table, prompt *Prompter, sink core.RowSink, recorder audit.Recorder, settings Settings) *Controller {
	if recorder == nil {
		recorder = audit.Nop{}
	}
	if settings.AuditTimeout <= 0 {
		settings.AuditTimeout = 5 * time.Second
	}
	return &Controller{
		table:    table,
		prompt:   prompt,
		sink:     sink,
		recorder: recorder,
		settings: settings,
		sleep:    time.Sleep,
	}
}

// Table returns the table being edited.
func (c *Controller) Table() *core.Table {
	return c.table
}

// SelectCoordinate prompts for a row then a column and returns the validated
// zero-based cell. Invalid entries are re-prompted without limit; the menu
// keyword returns core.ErrMenuReset.
func (c *Controller) SelectCoordinate(ctx context.Context, rowPrompt, colPrompt string) (core.Coordinate, error) {
	if c.table.Empty() {
		return core.Coordinate{}, core.ErrEmptyTable
	}

	rowV, colV := core.NewValidators(c.table)

	row, err := c.readIndex(ctx, rowV, rowPrompt)
	if err != nil {
		return core.Coordinate{}, err
	}
	col, err := c.readIndex(ctx, colV, colPrompt)
	if err != nil {
		return core.Coordinate{}, err
	}

	return core.FromOneBased(row, col), nil
}

// SelectWindow selects a start and an end cell. An end before the start is
// a *core.ValidationError and is not retried.
func (c *Controller) SelectWindow(ctx context.Context) (core.Window, error) {
	start, err := c.SelectCoordinate(ctx, "\nEnter starting row index.", "Enter starting column index.")
	if err != nil {
		return core.Window{}, err
	}
	end, err := c.SelectCoordinate(ctx, "\nEnter end row index.", "Enter end column index.")
	if err != nil {
		return core.Window{}, err
	}
	return core.NewWindow(start, end)
}

// readIndex loops Prompt -> Parse -> Validate for one axis.
func (c *Controller) readIndex(ctx context.Context, v core.Validator, prompt string) (int, error) {
	log := logging.WithFields(ctx, "axis", v.Axis.String())

	for {
		c.prompt.Println(prompt)
		c.prompt.Printf("%s:\n\n", v.Describe())

		entry, err := c.prompt.ReadEntry()
		if err != nil {
			return 0, err
		}
		if entry.Abort {
			return 0, core.ErrMenuReset
		}

		n, err := strconv.Atoi(entry.Text)
		if err != nil || n < 0 {
			inErr := &core.InputError{Message: "invalid input, please enter a valid number"}
			log.Debug("rejected index", "input", entry.Text, "error", inErr)
			c.prompt.Println("Invalid input, please try again.")
			continue
		}

		if err := v.Validate(n); err != nil {
			log.Debug("rejected index", "input", n, "error", err)
			var vErr *core.ValidationError
			if errors.As(err, &vErr) {
				c.prompt.Printf("%s. Please try again.\n", vErr.Message)
			} else {
				c.prompt.Println("Invalid input, please try again.")
			}
			continue
		}

		return n, nil
	}
}

// pause is the cosmetic delay after an outcome is reported.
func (c *Controller) pause() {
	if c.settings.Pause > 0 {
		c.sleep(c.settings.Pause)
	}
}

func (c *Controller) returnToMenu() {
	c.prompt.Println("Returning to main menu...")
	c.pause()
}

// journal records e, logging rather than returning any failure.
func (c *Controller) journal(ctx context.Context, e audit.Entry) {
	ctx, cancel := context.WithTimeout(ctx, c.settings.AuditTimeout)
	defer cancel()

	if err := c.recorder.Record(ctx, e); err != nil {
		logging.WithFields(ctx, "action", e.Action, "audit_id", e.ID).
			Warn("audit record failed", "error", err)
	}
}
