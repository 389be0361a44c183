package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/leapstack-labs/mathdaddy/pkg/core"
	"github.com/leapstack-labs/mathdaddy/pkg/mathdaddy"
	"gopkg.in/yaml.v3"
)

// Outcome is one solved line of a batch.
type Outcome struct {
	Line      int
	Statement string
	Result    *mathdaddy.Result
	Err       error
}

type outcomeView struct {
	Line      int    `json:"line" yaml:"line"`
	Statement string `json:"statement" yaml:"statement"`
	Notation  string `json:"notation,omitempty" yaml:"notation,omitempty"`
	Postfix   string `json:"postfix,omitempty" yaml:"postfix,omitempty"`
	Value     string `json:"value,omitempty" yaml:"value,omitempty"`
	Error     string `json:"error,omitempty" yaml:"error,omitempty"`
}

type tokenView struct {
	Type    string `json:"type" yaml:"type"`
	Literal string `json:"literal" yaml:"literal"`
	Line    int    `json:"line" yaml:"line"`
	Column  int    `json:"column" yaml:"column"`
}

type conversionView struct {
	Statement string      `json:"statement" yaml:"statement"`
	Notation  string      `json:"notation" yaml:"notation"`
	Postfix   string      `json:"postfix" yaml:"postfix"`
	Tokens    []tokenView `json:"tokens" yaml:"tokens"`
}

type operatorView struct {
	Symbol        string `json:"symbol" yaml:"symbol"`
	Name          string `json:"name" yaml:"name"`
	Precedence    int    `json:"precedence" yaml:"precedence"`
	Arity         string `json:"arity" yaml:"arity"`
	Associativity string `json:"associativity" yaml:"associativity"`
}

// RenderResult writes a single solve result.
func (r *Renderer) RenderResult(res *mathdaddy.Result) error {
	switch r.EffectiveMode() {
	case ModeJSON:
		return r.encodeJSON(res)
	case ModeYAML:
		return r.encodeYAML(res)
	case ModeTable:
		t := r.newTable()
		t.AppendHeader(table.Row{"Statement", "Notation", "Postfix", "Value"})
		t.AppendRow(table.Row{res.Statement, res.Notation.String(), res.Postfix, res.Display})
		t.Render()
		return nil
	case ModeMarkdown:
		writeMarkdown(r.w, []string{"Statement", "Notation", "Postfix", "Value"},
			[][]string{{res.Statement, res.Notation.String(), res.Postfix, res.Display}})
		return nil
	default:
		r.Println(r.styles.Value.Render(r.displayValue(res)))
		return nil
	}
}

// RenderConversion writes a conversion with its tokens.
func (r *Renderer) RenderConversion(conv *mathdaddy.Conversion) error {
	view := conversionView{
		Statement: conv.Statement,
		Notation:  conv.Notation.String(),
		Postfix:   conv.Postfix.String(),
		Tokens:    make([]tokenView, len(conv.Tokens)),
	}
	for i, tok := range conv.Tokens {
		view.Tokens[i] = tokenView{
			Type:    tok.Type.String(),
			Literal: tok.Literal,
			Line:    tok.Pos.Line,
			Column:  tok.Pos.Column,
		}
	}

	switch r.EffectiveMode() {
	case ModeJSON:
		return r.encodeJSON(view)
	case ModeYAML:
		return r.encodeYAML(view)
	case ModeTable:
		t := r.newTable()
		t.SetTitle(fmt.Sprintf("%s → %s", view.Notation, view.Postfix))
		t.AppendHeader(table.Row{"#", "Type", "Literal", "Column"})
		for i, tok := range view.Tokens {
			t.AppendRow(table.Row{i + 1, tok.Type, tok.Literal, tok.Column})
		}
		t.Render()
		return nil
	case ModeMarkdown:
		r.Printf("**%s**: `%s`\n\n", view.Notation, view.Postfix)
		rows := make([][]string, len(view.Tokens))
		for i, tok := range view.Tokens {
			rows[i] = []string{strconv.Itoa(i + 1), tok.Type, "`" + tok.Literal + "`", strconv.Itoa(tok.Column)}
		}
		writeMarkdown(r.w, []string{"#", "Type", "Literal", "Column"}, rows)
		return nil
	default:
		r.Println(view.Postfix)
		return nil
	}
}

// RenderOperators lists an operator table.
func (r *Renderer) RenderOperators(defs []core.OperatorDef) error {
	views := make([]operatorView, len(defs))
	for i, d := range defs {
		views[i] = operatorView{
			Symbol:        d.Symbol,
			Name:          d.Name,
			Precedence:    d.Precedence,
			Arity:         d.Arity.String(),
			Associativity: d.Assoc.String(),
		}
	}

	switch r.EffectiveMode() {
	case ModeJSON:
		return r.encodeJSON(views)
	case ModeYAML:
		return r.encodeYAML(views)
	case ModeMarkdown:
		rows := make([][]string, len(views))
		for i, v := range views {
			rows[i] = []string{"`" + v.Symbol + "`", v.Name, strconv.Itoa(v.Precedence), v.Arity, v.Associativity}
		}
		writeMarkdown(r.w, []string{"Symbol", "Name", "Precedence", "Arity", "Associativity"}, rows)
		return nil
	default:
		t := r.newTable()
		t.AppendHeader(table.Row{"Symbol", "Name", "Precedence", "Arity", "Associativity"})
		for _, v := range views {
			t.AppendRow(table.Row{v.Symbol, v.Name, v.Precedence, v.Arity, v.Associativity})
		}
		t.Render()
		return nil
	}
}

// RenderBatch writes batch outcomes in line order.
func (r *Renderer) RenderBatch(outcomes []Outcome) error {
	views := make([]outcomeView, len(outcomes))
	for i, o := range outcomes {
		v := outcomeView{Line: o.Line, Statement: o.Statement}
		if o.Err != nil {
			v.Error = o.Err.Error()
		} else if o.Result != nil {
			v.Notation = o.Result.Notation.String()
			v.Postfix = o.Result.Postfix
			v.Value = o.Result.Display
		}
		views[i] = v
	}

	switch r.EffectiveMode() {
	case ModeJSON:
		return r.encodeJSON(views)
	case ModeYAML:
		return r.encodeYAML(views)
	case ModeTable:
		t := r.newTable()
		t.AppendHeader(table.Row{"Line", "Statement", "Postfix", "Value"})
		for _, v := range views {
			t.AppendRow(table.Row{v.Line, v.Statement, v.Postfix, valueOrError(v)})
		}
		t.Render()
		return nil
	case ModeMarkdown:
		rows := make([][]string, len(views))
		for i, v := range views {
			rows[i] = []string{strconv.Itoa(v.Line), v.Statement, v.Postfix, valueOrError(v)}
		}
		writeMarkdown(r.w, []string{"Line", "Statement", "Postfix", "Value"}, rows)
		return nil
	default:
		for i, v := range views {
			if v.Error != "" {
				r.Printf("%d: %s %s\n", v.Line, v.Statement, r.styles.Error.Render("error: "+v.Error))
				continue
			}
			value := v.Value
			if res := outcomes[i].Result; res != nil {
				value = r.displayValue(res)
			}
			r.Printf("%d: %s = %s\n", v.Line, v.Statement, r.styles.Value.Render(value))
		}
		return nil
	}
}

func valueOrError(v outcomeView) string {
	if v.Error != "" {
		return "error: " + v.Error
	}
	return v.Value
}

func (r *Renderer) newTable() table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(r.w)
	t.SetStyle(table.StyleLight)
	return t
}

func (r *Renderer) encodeJSON(v any) error {
	enc := json.NewEncoder(r.w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (r *Renderer) encodeYAML(v any) error {
	enc := yaml.NewEncoder(r.w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

func writeMarkdown(w io.Writer, cols []string, rows [][]string) {
	_, _ = fmt.Fprintf(w, "| %s |\n", strings.Join(cols, " | "))
	seps := make([]string, len(cols))
	for i := range seps {
		seps[i] = "---"
	}
	_, _ = fmt.Fprintf(w, "| %s |\n", strings.Join(seps, " | "))
	for _, row := range rows {
		cells := make([]string, len(row))
		for i, c := range row {
			cells[i] = strings.ReplaceAll(c, "|", `\|`)
		}
		_, _ = fmt.Fprintf(w, "| %s |\n", strings.Join(cells, " | "))
	}
}
