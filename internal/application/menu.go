package application

import (
	"context"
	"errors"
	"io"
	"slices"
	"strings"

	"github.com/JonMunkholm/csvedit/internal/core"
	"github.com/JonMunkholm/csvedit/internal/logging"
)

/* ----------------------------------------
	MENU
---------------------------------------- */

type MenuItem struct {
	Keys   []string
	Label  string
	Action func(context.Context) error
}

type Menu struct {
	Title string
	Items []MenuItem
	Quit  []string
}

// Lookup returns the item selected by input.
func (m *Menu) Lookup(input string) (*MenuItem, bool) {
	for i := range m.Items {
		if slices.Contains(m.Items[i].Keys, input) {
			return &m.Items[i], true
		}
	}
	return nil, false
}

// IsQuit reports whether input ends the session.
func (m *Menu) IsQuit(input string) bool {
	return slices.Contains(m.Quit, strings.ToLower(input))
}

func (m *Menu) show(p *Prompter) {
	p.Printf("\n == %s ==\n\n", m.Title)
	for _, item := range m.Items {
		p.Printf("%s. %s\n", item.Keys[0], item.Label)
	}
	p.Println()
	p.Println(`Please enter your selection using the corresponding menu number only or enter "q" or "quit" to exit:`)
}

/* ----------------------------------------
	MENU DEFINITION
---------------------------------------- */

func buildMenu(c *Controller) *Menu {
	return &Menu{
		Title: "CSV Manager",
		Items: []MenuItem{
			{Keys: []string{"1"}, Label: "Display Entire File", Action: c.DisplayTable},
			{Keys: []string{"2"}, Label: "Paginate File", Action: c.PaginateTable},
			{Keys: []string{"3"}, Label: "Delete Field", Action: c.DeleteCell},
			{Keys: []string{"4"}, Label: "Update Field", Action: c.ModifyCell},
			{Keys: []string{"5"}, Label: "Create New CSV File", Action: c.SaveTable},
		},
		Quit: []string{"q", "quit"},
	}
}

/* ----------------------------------------
	LOOP
---------------------------------------- */

// Run shows the menu and dispatches commands until the user quits or input
// is exhausted. Command failures are reported and never end the loop.
func (c *Controller) Run(ctx context.Context) error {
	menu := buildMenu(c)
	log := logging.FromContext(ctx)

	for {
		menu.show(c.prompt)

		line, err := c.prompt.ReadLine()
		if err != nil {
			if errors.Is(err, io.EOF) {
				c.prompt.Println("Exiting the program.")
				return nil
			}
			return err
		}
		input := strings.TrimSpace(line)

		if menu.IsQuit(input) {
			c.prompt.Println("Exiting the program.")
			return nil
		}

		item, ok := menu.Lookup(input)
		if !ok {
			c.prompt.Println("Unrecognized command. Please try again.")
			continue
		}

		log.Debug("command selected", "command", item.Label)
		c.report(ctx, item.Action(ctx))
	}
}

// report handles a command's outcome. ErrMenuReset is an expected signal,
// everything else is shown to the user and logged.
func (c *Controller) report(ctx context.Context, err error) {
	switch {
	case err == nil:
	case errors.Is(err, core.ErrMenuReset):
		c.returnToMenu()
	default:
		uErr := core.NewUserError(err)
		log := logging.FromContext(ctx).With("error", uErr.Technical, "code", uErr.User.Code)
		if core.IsUserFacing(err) {
			log.Warn("command failed")
		} else {
			log.Error("command failed unexpectedly")
		}
		c.prompt.Printf("Error: %s\n", uErr.Format())
	}
}
