package binding

import "fmt"

// Kind is the direction of a SQL binding attached to an Azure Function.
type Kind string

const (
	Input  Kind = "input"
	Output Kind = "output"
)

// Kinds returns every supported binding kind, in the order pickers present them.
func Kinds() []Kind {
	return []Kind{Input, Output}
}

// Display returns the picker text for the binding kind.
func (k Kind) Display() string {
	switch k {
	case Input:
		return "Input binding (retrieve data from a table or view)"
	case Output:
		return "Output binding (insert data into a table)"
	}

	return string(k)
}

// ParseKind converts a flag or picker value to a Kind.
func ParseKind(value string) (Kind, error) {
	switch Kind(value) {
	case Input:
		return Input, nil
	case Output:
		return Output, nil
	}

	return "", fmt.Errorf("unsupported binding kind '%s', expected '%s' or '%s'", value, Input, Output)
}

const (
	// DefaultConnectionSetting is the app setting name conventionally used to
	// hold the SQL connection string for binding-enabled functions.
	DefaultConnectionSetting = "SqlConnectionString"

	// DefaultObjectName is the placeholder offered when prompting for the
	// table or view a binding targets.
	DefaultObjectName = "[dbo].[table1]"

	// DocsURL points at the SQL bindings documentation.
	DocsURL = "https://aka.ms/sqlbindings"
)
