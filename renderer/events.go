package renderer

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/etnz/cashflow"
	md "github.com/nao1215/markdown"
)

// BudgetValidationMarkdown renders the scheduled events of a budget with
// their validation status, followed by the budget level problems if any.
func BudgetValidationMarkdown(b *cashflow.Budget, err error) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1("Budget Validation")

	if len(b.ScheduledEvents) > 0 {
		doc.H2("Scheduled Events")
		table := md.TableSet{Header: []string{"Date", "Name", "Type", "Amount", "Enabled", "Status"}}
		for _, e := range b.ScheduledEvents {
			status := "ok"
			if v := cashflow.ValidateScheduledEvent(e); !v.IsValid {
				status = strings.Join(v.Errors, "; ")
			}
			table.Rows = append(table.Rows, []string{
				e.Date.String(),
				e.Name,
				string(e.Type),
				cashflow.FormatAmount(e.Amount, e.Currency),
				yesno(e.IsEnabled()),
				status,
			})
		}
		doc.Table(table)
	}

	if err == nil {
		doc.PlainText("No problem found.")
		return doc.String()
	}
	doc.H2("Problems")
	var problems []string
	for _, line := range strings.Split(err.Error(), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			problems = append(problems, line)
		}
	}
	doc.BulletList(problems...)
	doc.PlainText(fmt.Sprintf("%d problem(s) found.", len(problems)))
	return doc.String()
}
