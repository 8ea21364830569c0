package model

// Kind is the classification of a path that drives how it is rendered.
type Kind string

const (
	// KindImport is inserted into the document verbatim.
	KindImport Kind = "import"
	// KindCode is highlighted and boxed; the title keeps the extension.
	KindCode Kind = "code"
	// KindOutput is highlighted and boxed; the title drops the extension.
	KindOutput Kind = "output"
	// KindDiagram is rendered by the diagram tool and wrapped in a figure.
	KindDiagram Kind = "diagram"
	// KindFigure is included as a figure by absolute path.
	KindFigure Kind = "figure"
	// KindDirectory becomes a heading followed by its own content.
	KindDirectory Kind = "directory"
	// KindIgnored contributes an empty fragment.
	KindIgnored Kind = "ignored"
)

// FileKinds lists the extension-driven kinds in classification priority order.
var FileKinds = []Kind{KindImport, KindCode, KindOutput, KindDiagram, KindFigure}

func (k Kind) String() string {
	return string(k)
}
