package diag

// Category classifies a diagnostic the way the report groups it.
type Category uint8

const (
	CatSyntax Category = iota
	CatStyle
	CatWarning
	CatCompiler
	CatComment
)

func (c Category) String() string {
	switch c {
	case CatSyntax:
		return "SYNTAX"
	case CatStyle:
		return "STYLE"
	case CatWarning:
		return "WARNING"
	case CatCompiler:
		return "COMPILER"
	case CatComment:
		return "COMMENT"
	}
	return "UNKNOWN"
}

// Level maps a category onto the three-level scale used by SARIF-like outputs.
func (c Category) Level() string {
	switch c {
	case CatSyntax:
		return "error"
	case CatWarning, CatCompiler:
		return "warning"
	default:
		return "note"
	}
}
