package grammar

import (
	"fmt"
	"io"
	"strings"

	"github.com/rivo/uniseg"
)

// PrintProductions writes one numbered line per production.
func PrintProductions(w io.Writer, gram *Grammar) {
	if w == nil {
		return
	}

	r := GenReport(gram)
	var lhss []string
	for _, prod := range r.Productions {
		lhss = append(lhss, prod.LHS)
	}
	width := maxWidth(lhss)
	numWidth := len(fmt.Sprint(len(r.Productions)))

	for _, prod := range r.Productions {
		fmt.Fprintf(w, "%*v %v%v :", numWidth, prod.Num, prod.LHS, padding(prod.LHS, width))
		if len(prod.RHS) == 0 {
			fmt.Fprintf(w, " <empty>")
		}
		for _, sym := range prod.RHS {
			fmt.Fprintf(w, " %v", sym)
		}
		fmt.Fprintf(w, "\n")
	}
}

// PrintFirst writes the FIRST set of every non-terminal. A nullable
// non-terminal is marked with <empty>.
func PrintFirst(w io.Writer, gram *Grammar) {
	if w == nil {
		return
	}
	printSets(w, GenReport(gram).First, "<empty>")
}

// PrintFollow writes the FOLLOW set of every non-terminal.
func PrintFollow(w io.Writer, gram *Grammar) {
	if w == nil {
		return
	}
	printSets(w, GenReport(gram).Follow, "")
}

func printSets(w io.Writer, sets []*SetReport, nullableMark string) {
	var syms []string
	for _, s := range sets {
		syms = append(syms, s.Symbol)
	}
	width := maxWidth(syms)

	for _, s := range sets {
		fmt.Fprintf(w, "%v%v :", s.Symbol, padding(s.Symbol, width))
		for _, sym := range s.Symbols {
			fmt.Fprintf(w, " %v", sym)
		}
		if s.Nullable && nullableMark != "" {
			fmt.Fprintf(w, " %v", nullableMark)
		}
		fmt.Fprintf(w, "\n")
	}
}

func maxWidth(texts []string) int {
	width := 0
	for _, text := range texts {
		if n := uniseg.StringWidth(text); n > width {
			width = n
		}
	}
	return width
}

func padding(text string, width int) string {
	n := width - uniseg.StringWidth(text)
	if n <= 0 {
		return ""
	}
	return strings.Repeat(" ", n)
}
