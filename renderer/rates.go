package renderer

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/etnz/cashflow"
	"github.com/etnz/cashflow/date"
	md "github.com/nao1215/markdown"
)

func formatRate(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

// RatesMarkdown renders the current rates, the most recent history and the update log.
// At most maxHistory historical days are rendered, the most recent ones.
func RatesMarkdown(s *cashflow.Snapshot, maxHistory int) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Exchange Rates")
	if at := s.LastUpdated(); !at.IsZero() {
		doc.PlainText(fmt.Sprintf("Last updated %s.", at.Format("2006-01-02 15:04")))
	} else {
		doc.PlainText("Never updated, default rates apply.")
	}

	current := s.Current()
	table := md.TableSet{Header: []string{"Pair", "Rate"}}
	for _, pair := range cashflow.Pairs {
		table.Rows = append(table.Rows, []string{pair, formatRate(current[pair])})
	}
	doc.Table(table)

	if n := s.HistoryLen(); n > 0 {
		doc.H2(fmt.Sprintf("History (%d days)", n))
		history := md.TableSet{Header: append([]string{"Date"}, cashflow.Pairs...)}
		skip := max(0, n-maxHistory)
		i := 0
		for day, r := range s.History() {
			i++
			if i <= skip {
				continue
			}
			row := []string{day.String()}
			for _, pair := range cashflow.Pairs {
				row = append(row, formatRate(r.Rate(pair)))
			}
			history.Rows = append(history.Rows, row)
		}
		doc.Table(history)
	}

	if log := s.UpdateLog(); len(log) > 0 {
		doc.H2("Recent Updates")
		var items []string
		for _, u := range log {
			items = append(items, fmt.Sprintf("%s %s: %d rate(s)", u.At.Format("2006-01-02 15:04"), u.Source, len(u.Rates)))
		}
		doc.BulletList(items...)
	}
	return doc.String()
}

// ConversionMarkdown renders the conversion of amount on day, zero day means current rates.
func ConversionMarkdown(amount float64, from, to cashflow.Currency, result float64, day date.Date) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	when := "current rates"
	if !day.IsZero() {
		when = "rates as of " + day.String()
	}
	doc.PlainText(fmt.Sprintf("%s = %s (%s)", cashflow.FormatAmount(amount, from), cashflow.FormatAmount(result, to), when))
	return doc.String()
}
