package insight

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"text/template"

	"github.com/m-mizutani/goerr/v2"
)

//go:embed prompt/risk.md
var riskPromptTmpl string

//go:embed prompt/scenario.md
var scenarioPromptTmpl string

//go:embed prompt/crisis.md
var crisisPromptTmpl string

//go:embed prompt/prediction.md
var predictionPromptTmpl string

//go:embed prompt/collaboration.md
var collaborationPromptTmpl string

var funcs = template.FuncMap{
	"json": func(v any) (string, error) {
		raw, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return "", err
		}
		return string(raw), nil
	},
}

var (
	riskPrompt          = template.Must(template.New("risk").Funcs(funcs).Parse(riskPromptTmpl))
	scenarioPrompt      = template.Must(template.New("scenario").Funcs(funcs).Parse(scenarioPromptTmpl))
	crisisPrompt        = template.Must(template.New("crisis").Funcs(funcs).Parse(crisisPromptTmpl))
	predictionPrompt    = template.Must(template.New("prediction").Funcs(funcs).Parse(predictionPromptTmpl))
	collaborationPrompt = template.Must(template.New("collaboration").Funcs(funcs).Parse(collaborationPromptTmpl))
)

func render(tmpl *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", goerr.Wrap(err, "failed to render prompt", goerr.V("template", tmpl.Name()))
	}
	return buf.String(), nil
}
