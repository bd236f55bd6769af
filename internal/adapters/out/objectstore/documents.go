package objectstore

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"text/template"
	"time"

	"textile/internal/core/domain/model/order"

	"github.com/google/uuid"
)

const documentPrefix = "documents"

const documentTemplate = `ORDER {{ .ID }}
Generated {{ .Generated }}

Client:   {{ .ClientID }}
Product:  {{ .Category }} / {{ .Type }} / {{ .Product }}
Status:   {{ .Status }}
Cost:     {{ .PriceCost }}
{{- with .Notes }}
{{ if .Fabric }}
Fabric:   {{ .Fabric }}{{ end }}{{ if .Color }}
Color:    {{ .Color }}{{ end }}{{ if .Finish }}
Finish:   {{ .Finish }}{{ end }}{{ with .Measurements }}
Measures:{{ with .Width }} width {{ deref . }}{{ end }}{{ with .Height }} height {{ deref . }}{{ end }}{{ with .Depth }} depth {{ deref . }}{{ end }}{{ if .Details }} ({{ .Details }}){{ end }}{{ end }}
{{- end }}
{{ if .FreeNotes }}
Notes:
{{ .FreeNotes }}
{{ end }}{{ if .Photos }}
Photos:
{{ range .Photos }}  - {{ . }}
{{ end }}{{ end }}`

// DocumentGenerator renders the plain-text shipment document sent to the
// supplier. The sale price is left out of it.
type DocumentGenerator struct {
	store *Store
	tmpl  *template.Template
	now   func() time.Time
}

func NewDocumentGenerator(store *Store) *DocumentGenerator {
	tmpl := template.Must(template.New("order").Funcs(template.FuncMap{
		"deref": func(v *float64) string { return fmt.Sprintf("%g", *v) },
	}).Parse(documentTemplate))

	return &DocumentGenerator{store: store, tmpl: tmpl, now: time.Now}
}

// Render writes the document for snapshot.
func (g *DocumentGenerator) Render(snapshot order.Snapshot) ([]byte, error) {
	var buf bytes.Buffer
	err := g.tmpl.Execute(&buf, struct {
		order.Snapshot
		Generated string
	}{snapshot, g.now().UTC().Format(time.RFC3339)})
	if err != nil {
		return nil, fmt.Errorf("render order %d: %w", snapshot.ID, err)
	}
	return buf.Bytes(), nil
}

// Generate renders and stores the document and returns its public URL. Every call
// stores a new object; earlier documents stay reachable.
func (g *DocumentGenerator) Generate(ctx context.Context, snapshot order.Snapshot) (string, error) {
	doc, err := g.Render(snapshot)
	if err != nil {
		return "", err
	}

	key := fmt.Sprintf("%s/order-%d/%s.txt", documentPrefix, snapshot.ID, uuid.NewString())
	return g.store.Put(ctx, key, "text/plain; charset=utf-8", strings.NewReader(string(doc)))
}
