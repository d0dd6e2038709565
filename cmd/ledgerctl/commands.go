package main

import (
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"expensetracker/internal/core"
	"expensetracker/internal/ledger"
)

type addCmd struct {
	Description string `arg:"" help:"What the money was spent on."`
	Amount      string `arg:"" help:"Amount, e.g. 4.50 or 4,50."`
	Category    string `short:"c" help:"Category (default Food)."`
}

func (c *addCmd) Run(rc *runContext) error {
	exp, err := rc.ledger.Add(rc.ctx, ledger.AddInput{
		Description: c.Description,
		Amount:      c.Amount,
		Category:    c.Category,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(rc.out, "Added #%d %s %s (%s)\n", exp.ID, exp.Description, core.FormatMoney(rc.currency, exp.Amount), exp.Category)
	return nil
}

type listCmd struct{}

func (c *listCmd) Run(rc *runContext) error {
	expenses := rc.ledger.Snapshot()
	if len(expenses) == 0 {
		fmt.Fprintln(rc.out, "No expenses yet.")
		return nil
	}
	tw := tabwriter.NewWriter(rc.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDATE\tCATEGORY\tAMOUNT\tDESCRIPTION")
	for _, e := range expenses {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", e.ID, e.Date, e.Category, core.FormatMoney(rc.currency, e.Amount), e.Description)
	}
	return tw.Flush()
}

type deleteCmd struct {
	ID int64 `arg:"" help:"Expense id as shown by list."`
}

func (c *deleteCmd) Run(rc *runContext) error {
	removed, err := rc.ledger.Delete(rc.ctx, c.ID)
	if err != nil {
		return err
	}
	if removed {
		fmt.Fprintf(rc.out, "Deleted #%d\n", c.ID)
	} else {
		fmt.Fprintf(rc.out, "No expense #%d, nothing to delete\n", c.ID)
	}
	return nil
}

type summaryCmd struct{}

func (c *summaryCmd) Run(rc *runContext) error {
	s := rc.ledger.Summary()
	fmt.Fprintf(rc.out, "Total: %s (%d expenses)\n", core.FormatMoneyDecimal(rc.currency, s.Total), s.Count)
	if !s.HasCategories() {
		return nil
	}
	tw := tabwriter.NewWriter(rc.out, 0, 0, 2, ' ', 0)
	for _, ct := range s.ByCategory {
		fmt.Fprintf(tw, "  %s\t%s\n", ct.Category, core.FormatMoneyDecimal(rc.currency, ct.Total))
	}
	return tw.Flush()
}

type categoriesCmd struct{}

func (c *categoriesCmd) Run(rc *runContext) error {
	for _, cat := range core.Categories() {
		marker := ""
		if cat == core.DefaultCategory {
			marker = " (default)"
		}
		fmt.Fprintf(rc.out, "%s%s\n", cat, marker)
	}
	return nil
}

var errResetNotConfirmed = errors.New("refusing to reset without --yes")

type resetCmd struct {
	Yes bool `help:"Confirm removing every expense."`
}

func (c *resetCmd) Run(rc *runContext) error {
	if !c.Yes {
		return errResetNotConfirmed
	}
	n := rc.ledger.Len()
	if err := rc.ledger.Clear(rc.ctx); err != nil {
		return err
	}
	fmt.Fprintf(rc.out, "Removed %d expenses\n", n)
	return nil
}

type exportCmd struct {
	Out string `short:"o" help:"Write to this file instead of stdout." type:"path"`
}

func (c *exportCmd) Run(rc *runContext) error {
	data, err := rc.ledger.Export()
	if err != nil {
		return err
	}
	if c.Out == "" {
		_, err := fmt.Fprintln(rc.out, string(data))
		return err
	}
	if err := os.WriteFile(c.Out, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write export: %w", err)
	}
	fmt.Fprintf(rc.out, "Exported %d expenses to %s\n", rc.ledger.Len(), c.Out)
	return nil
}
