package types

import (
	"bytes"
	"text/template"

	"github.com/Masterminds/sprig"
)

// Render executes the given Go template against this report. Sprig functions
// are available to the template.
func (i *SandboxInfo) Render(body string) ([]byte, error) {
	tmpl, err := template.New("info").Funcs(sprig.TxtFuncMap()).Parse(body)
	if err != nil {
		return nil, err
	}
	var out bytes.Buffer
	if err := tmpl.Execute(&out, i); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}
