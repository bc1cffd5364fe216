// Copyright (c) 2026 Backoffice. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package console

import (
	"fmt"
	"io"
	"text/tabwriter"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/taibuivan/backoffice/pkg/pointer"
)

var printer = message.NewPrinter(language.English)

// formatPrice renders a price with grouping and two decimals.
func formatPrice(price float64) string {
	return printer.Sprintf("$%.2f", price)
}

// formatCount renders an integer with grouping.
func formatCount(n int) string {
	return printer.Sprintf("%d", n)
}

// table writes tab-separated rows as aligned columns.
type table struct {
	w *tabwriter.Writer
}

func newTable(out io.Writer, header ...any) *table {
	t := &table{w: tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)}
	t.row(header...)
	return t
}

func (t *table) row(cells ...any) {
	for i, cell := range cells {
		if i > 0 {
			fmt.Fprint(t.w, "\t")
		}
		fmt.Fprint(t.w, cell)
	}
	fmt.Fprintln(t.w)
}

func (t *table) flush() {
	_ = t.w.Flush()
}

func orDash(value *string) string {
	if text := pointer.Val(value); text != "" {
		return text
	}
	return "-"
}
