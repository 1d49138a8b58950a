package symbols

import "errors"

var (
	// ErrEmptyTable means a stack operation found no scope to work on. The
	// traversal never produces it for well-formed input; seeing it means a
	// scope was popped without a matching push.
	ErrEmptyTable = errors.New("symbol table has no scope")

	// ErrDuplicateName is returned by AddDeclaration when the innermost scope
	// already binds the name.
	ErrDuplicateName = errors.New("name already declared in this scope")
)
