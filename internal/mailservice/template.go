package mailservice

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"sync"
)

//go:embed templates/*
var templateFS embed.FS

func NewTemplate() *Template {
	return &Template{}
}

var parsed sync.Map

func lookupTemplate(name string) (*template.Template, error) {
	if t, ok := parsed.Load(name); ok {
		return t.(*template.Template), nil
	}

	t, err := template.New("email").ParseFS(templateFS, "templates/"+name)
	if err != nil {
		return nil, fmt.Errorf("could not parse template: %w", err)
	}

	parsed.Store(name, t)
	return t, nil
}

// ParseTemplate renders the subject, plainBody and htmlBody blocks of the named template with data.
func (tp *Template) ParseTemplate(name string, data any) (*bytes.Buffer, *bytes.Buffer, *bytes.Buffer, error) {
	t, err := lookupTemplate(name)
	if err != nil {
		return nil, nil, nil, err
	}

	buffers := make([]*bytes.Buffer, 3)
	for i, block := range []string{"subject", "plainBody", "htmlBody"} {
		buffers[i] = new(bytes.Buffer)
		if err := t.ExecuteTemplate(buffers[i], block, data); err != nil {
			return nil, nil, nil, err
		}
	}

	return buffers[0], buffers[1], buffers[2], nil
}
