package dsl_test

import (
	"testing"

	"github.com/ByLCY/proforma/dsl"
)

const sampleDSL = `
doc Proforma v1 {
  meta {
    title: "Proforma"
    keywords: [
      "finance"
      "internal"
    ]
  }

  resources {
    color Band = #313B4B
    font Script { src: "Go-Italic" }
  }

  // 覆盖默认模板
  page A4 portrait margin 20mm 15mm line-height 12pt {
    element header-band { color: Band }
    element table-cell {
      font: "Charter"
      size: 10pt
      y: -3mm
      align: right
    }
    label thanks "Merci pour votre confiance"
    metric row-padding 7mm; metric min-row-height 9mm
    columns 35mm 40mm 30mm 30mm 33mm
  }
}
`

func TestParseTemplate(t *testing.T) {
	doc, err := dsl.ParseString(sampleDSL)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if doc.Name != "Proforma" || doc.Version != "v1" {
		t.Fatalf("unexpected header: %s %s", doc.Name, doc.Version)
	}
	if len(doc.Sections) != 3 {
		t.Fatalf("expected 3 sections, got %d", len(doc.Sections))
	}
	if doc.Sections[0].Kind() != "meta" || doc.Sections[1].Kind() != "resources" || doc.Sections[2].Kind() != "page" {
		t.Fatalf("unexpected section kinds")
	}

	meta := doc.Sections[0].Meta
	title := meta.Block.Statements[0].Assignment
	if title == nil || title.Key != "title" || title.Value.Text() != "Proforma" {
		t.Fatalf("expected title assignment, got %+v", meta.Block.Statements[0])
	}
	keywords := meta.Block.Statements[1].Assignment
	if keywords == nil || keywords.Value.Array == nil {
		t.Fatalf("expected keywords array")
	}
	if got := keywords.Value.Array.Strings(); len(got) != 2 || got[1] != "internal" {
		t.Fatalf("unexpected keywords: %v", got)
	}

	colorCmd := doc.Sections[1].Resources.Block.Statements[0].Command
	if colorCmd == nil || colorCmd.Name != "color" {
		t.Fatalf("expected color command")
	}
	if last := colorCmd.Args[len(colorCmd.Args)-1]; last.Type != "Color" || last.Value != "#313B4B" {
		t.Fatalf("colour literal must lex as one token, got %+v", last)
	}

	page := doc.Sections[2].Page
	if page.Spec.Size != "A4" {
		t.Fatalf("expected A4, got %s", page.Spec.Size)
	}
	if len(page.Spec.Params) != 6 || page.Spec.Params[4].Value != "line-height" {
		t.Fatalf("unexpected page params: %+v", page.Spec.Params)
	}

	stmts := page.Block.Statements
	if len(stmts) != 6 {
		t.Fatalf("expected 6 page statements, got %d", len(stmts))
	}
	band := stmts[0].Command
	if band.Name != "element" || band.Args[0].Value != "header-band" {
		t.Fatalf("unexpected element: %+v", band)
	}
	if v := band.Block.Statements[0].Assignment.Value; v.Ident == nil || *v.Ident != "Band" {
		t.Fatalf("expected ident value Band")
	}

	cell := stmts[1].Command.Block.Statements
	if len(cell) != 4 {
		t.Fatalf("expected 4 cell assignments, got %d", len(cell))
	}
	if got := cell[2].Assignment.Value.Text(); got != "-3mm" {
		t.Fatalf("negative lengths must lex as a number, got %q", got)
	}

	label := stmts[2].Command
	if label.Name != "label" || len(label.Args) != 2 || label.Args[1].Value != "Merci pour votre confiance" {
		t.Fatalf("unexpected label: %+v", label.Args)
	}
	if stmts[3].Command.Name != "metric" || stmts[4].Command.Args[0].Value != "min-row-height" {
		t.Fatalf("metrics separated by ';' must be two statements")
	}
	if cols := stmts[5].Command; cols.Name != "columns" || len(cols.Args) != 5 {
		t.Fatalf("unexpected columns: %+v", cols)
	}
}

func TestParseRejectsUnterminatedBlock(t *testing.T) {
	_, err := dsl.ParseString("doc X v1 { page A4 { element a { color: red }")
	if err == nil {
		t.Fatalf("expected parse error")
	}
}
