package mutate

import (
	"time"

	"stmtforge/internal/model"
)

type EditResult struct {
	Statements []model.Statement
	Changed    bool
}

// SetDescription replaces a statement's description, re-deriving the
// directive from the new text and marking the statement modified.
func SetDescription(stmts []model.Statement, id, text string) (EditResult, error) {
	idx := indexByID(stmts, id)
	if idx < 0 {
		return EditResult{Statements: stmts}, NotFoundError{ID: id}
	}
	if stmts[idx].Description == text {
		return EditResult{Statements: model.CloneStatements(stmts)}, nil
	}
	out := model.CloneStatements(stmts)
	out[idx].Description = text
	out[idx].Directive = model.DetectDirective(text)
	out[idx].Modified = true
	out[idx].UpdatedAt = time.Now().UTC()
	return EditResult{Statements: out, Changed: true}, nil
}

// SetRole replaces a statement's free-text role name.
func SetRole(stmts []model.Statement, id, role string) (EditResult, error) {
	idx := indexByID(stmts, id)
	if idx < 0 {
		return EditResult{Statements: stmts}, NotFoundError{ID: id}
	}
	if stmts[idx].Role == role {
		return EditResult{Statements: model.CloneStatements(stmts)}, nil
	}
	out := model.CloneStatements(stmts)
	out[idx].Role = role
	out[idx].Modified = true
	out[idx].UpdatedAt = time.Now().UTC()
	return EditResult{Statements: out, Changed: true}, nil
}
