package errors

const errorTemplate = `{{.Type}}: {{.Title}}

{{.Description}}
{{- if .Resolution}}

{{.Resolution}}
{{- end}}
`

type detailedError interface {
	Description() string
	Error() string
	Resolution() string
	Type() string
}

type templateVariables struct {
	Title       string
	Type        string
	Description string
	Resolution  string
}

// Validate checks that everything but the resolution is present.
func (t templateVariables) Validate() error {
	switch {
	case t.Title == "":
		return NewInternalError("error message is missing a title")
	case t.Type == "":
		return NewInternalError("error message is missing a type")
	case t.Description == "":
		return NewInternalError("error message is missing a description")
	}

	return nil
}
