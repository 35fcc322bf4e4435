package main

import (
	"io"
	"text/template"

	"github.com/araval/nidhi-watch/pkg/snapshot"
)

var reportTemplate = template.Must(template.New("reportTemplate").Parse(
	`{{ if .Changes }}
Price changes ({{ len .Changes }}):
{{ range .Changes }}
  {{ .Title }}
    Sale Price:    {{ .OldSale }} -> {{ .NewSale }}
    Regular Price: {{ .OldRegular }} -> {{ .NewRegular }}
    {{ .Link }}
{{ end }}{{ end }}{{ if .Added }}
New products listed since last run ({{ len .Added }}):
{{ range .Added }}
  {{ .Title }}
    SKU: {{ .SKU }}
    Sale Price: {{ .SalePrice }}
    Regular Price: {{ .RegularPrice }}
    Availability: {{ .Availability }}
    {{ .Link }}
{{ end }}{{ end }}{{ if .Removed }}
Removed products since last run ({{ len .Removed }}):
{{ range .Removed }}  {{ .Link }}
{{ end }}{{ end }}`,
))

func writeReport(w io.Writer, diff snapshot.Result) error {
	return reportTemplate.Execute(w, diff)
}
