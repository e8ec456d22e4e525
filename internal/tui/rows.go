package tui

import (
	"strings"

	"stmtforge/internal/model"
	"stmtforge/internal/roles"

	xansi "github.com/charmbracelet/x/ansi"
)

func renderRow(s model.Statement, cursor, selected bool, link roles.LinkStatus, width int) string {
	var b strings.Builder

	if selected {
		b.WriteString(styleSelected.Render("▎"))
	} else {
		b.WriteString(" ")
	}
	if s.Level > model.MinLevel {
		b.WriteString(strings.Repeat("  ", s.Level-model.MinLevel))
	}
	if s.Number != "" {
		b.WriteString(styleNumber.Render(s.Number))
		b.WriteString(" ")
	}

	desc := s.Description
	if desc == "" {
		desc = s.Title
	}
	desc = strings.ReplaceAll(desc, "\n", " ")
	b.WriteString(desc)

	if s.Directive != model.DirectiveNone {
		b.WriteString(" ")
		b.WriteString(styleDirective.Render("[" + string(s.Directive) + "]"))
	}
	if s.Role != "" {
		style := styleUnlinked
		if link == roles.Linked {
			style = styleLinked
		}
		b.WriteString(" ")
		b.WriteString(style.Render("@" + s.Role))
	}
	if s.Modified {
		b.WriteString(" ")
		b.WriteString(styleModified.Render("•"))
	}

	line := b.String()
	if xansi.StringWidth(line) > width {
		// Terminate ANSI styling so truncation never bleeds into later rows.
		line = xansi.Truncate(line, width, "…") + "\x1b[0m"
	}
	if cursor {
		return styleCursor.Render(xansi.Strip(line))
	}
	return line
}
