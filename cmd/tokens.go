package cmd

import (
	"fmt"
	"io"
	"strconv"
	"unicode/utf8"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/arnavsurve/sprig/internal/compiler"
	"github.com/arnavsurve/sprig/internal/compiler/diag"
	"github.com/arnavsurve/sprig/internal/compiler/lexer"
	"github.com/arnavsurve/sprig/internal/compiler/token"
)

// tokens: dump the lexer output. Only lexing runs, so files with syntax
// errors can still be inspected.
var TokensCmd = &cobra.Command{
	Use:   "tokens [file]",
	Short: "Print the token stream of a source file as a table",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession(cmd)
		if err != nil {
			return err
		}

		path := args[0]
		src, err := compiler.ReadSource(path)
		if err != nil {
			return err
		}

		r := diag.NewRenderer(path, src, s.color)
		lex := lexer.NewLexer(src)
		toks, err := lex.Tokenize()
		if err != nil {
			fmt.Fprint(s.stderr, r.Error(err))
			return ErrReported
		}
		for _, d := range lex.Diagnostics() {
			fmt.Fprint(s.stderr, r.Diagnostic(d))
		}

		writeTokenTable(s.stdout, toks)
		return nil
	},
}

func writeTokenTable(w io.Writer, toks []token.Token) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Type", "Value", "Line", "Column", "Length"})
	table.SetAutoWrapText(false)

	for _, tok := range toks {
		table.Append([]string{
			string(tok.Type),
			tok.Literal,
			strconv.Itoa(tok.Line),
			strconv.Itoa(tok.Column),
			strconv.Itoa(utf8.RuneCountInString(tok.Literal)),
		})
	}
	table.Render()
}
