// cmd/tools/worker-generator/main.go
package main

import (
	"flag"
	"fmt"
	"go/format"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/template"
	"time"

	"recruitment-workers/pkg/registry"
)

// WorkerData holds data for templates
type WorkerData struct {
	TaskType     string
	PackageName  string
	Method       string
	Description  string
	TimeoutSecs  int
	InputFields  []Field
	OutputFields []Field
}

// Field is one struct field derived from a schema property.
type Field struct {
	Name    string
	GoType  string
	JSONTag string
}

// goType maps a JSON schema property to a Go type. Nullable numbers become pointers so an
// absent value stays distinguishable from zero.
func goType(prop map[string]interface{}) string {
	types := []string{}
	switch t := prop["type"].(type) {
	case string:
		types = append(types, t)
	case []interface{}:
		for _, v := range t {
			if s, ok := v.(string); ok {
				types = append(types, s)
			}
		}
	}

	nullable := false
	base := ""
	for _, t := range types {
		if t == "null" {
			nullable = true
			continue
		}
		base = t
	}

	switch base {
	case "string":
		return "string"
	case "integer":
		if nullable {
			return "*int"
		}
		return "int"
	case "number":
		if nullable {
			return "*float64"
		}
		return "float64"
	case "boolean":
		return "bool"
	case "array":
		return "[]interface{}"
	case "object":
		return "map[string]interface{}"
	default:
		return "interface{}"
	}
}

// fieldName turns a camelCase property into an exported Go name with the usual initialisms.
func fieldName(prop string) string {
	if prop == "" {
		return prop
	}
	name := strings.ToUpper(prop[:1]) + prop[1:]
	if strings.HasSuffix(name, "Id") {
		name = strings.TrimSuffix(name, "Id") + "ID"
	}
	return name
}

func fields(schema map[string]interface{}) []Field {
	props, _ := schema["properties"].(map[string]interface{})
	names := make([]string, 0, len(props))
	for name := range props {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]Field, 0, len(names))
	for _, name := range names {
		prop, ok := props[name].(map[string]interface{})
		if !ok {
			continue
		}
		out = append(out, Field{
			Name:    fieldName(name),
			GoType:  goType(prop),
			JSONTag: fmt.Sprintf("`json:\"%s\"`", name),
		})
	}
	return out
}

// packageName strips the dashes from a task type: apply-to-job -> applytojob.
func packageName(taskType string) string {
	return strings.ReplaceAll(taskType, "-", "")
}

// methodName camel-cases a task type: apply-to-job -> ApplyToJob.
func methodName(taskType string) string {
	parts := strings.Split(taskType, "-")
	for i, p := range parts {
		if p != "" {
			parts[i] = strings.ToUpper(p[:1]) + p[1:]
		}
	}
	return strings.Join(parts, "")
}

const configTemplate = `// internal/workers/recruitment/{{ .TaskType }}/config.go
package {{ .PackageName }}

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: {{ .TimeoutSecs }} * time.Second,
	}
}
`

const modelsTemplate = `// internal/workers/recruitment/{{ .TaskType }}/models.go
package {{ .PackageName }}

type Input struct {
{{- range .InputFields }}
	{{ .Name }} {{ .GoType }} {{ .JSONTag }}
{{- end }}
}

type Output struct {
{{- range .OutputFields }}
	{{ .Name }} {{ .GoType }} {{ .JSONTag }}
{{- end }}
}
`

const handlerTemplate = `// internal/workers/recruitment/{{ .TaskType }}/handler.go
package {{ .PackageName }}

import (
	"context"

	"recruitment-workers/internal/common/camunda"
	"recruitment-workers/internal/common/logger"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "{{ .TaskType }}"
)

// Service {{ .Description }}
type Service interface {
	{{ .Method }}(ctx context.Context, input *Input) (*Output, error)
}

type Handler struct {
	config  *Config
	service Service
	runner  *camunda.JobRunner
	logger  logger.Logger
}

func NewHandler(config *Config, service Service, runner *camunda.JobRunner, log logger.Logger) *Handler {
	return &Handler{
		config:  config,
		service: service,
		runner:  runner,
		logger:  log.WithFields(map[string]interface{}{"taskType": TaskType}),
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	camunda.Run(h.runner, client, job, camunda.Task{Type: TaskType, Timeout: h.config.Timeout}, h.execute)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	return h.service.{{ .Method }}(ctx, input)
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
`

const testTemplate = `package {{ .PackageName }}

import (
	"context"
	"testing"

	"recruitment-workers/internal/common/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubService struct {
	calls int
}

func (s *stubService) {{ .Method }}(ctx context.Context, input *Input) (*Output, error) {
	s.calls++
	return &Output{}, nil
}

func TestExecute(t *testing.T) {
	svc := &stubService{}
	h := NewHandler(LoadConfig(), svc, nil, logger.NewTestLogger(t))

	out, err := h.Execute(context.Background(), &Input{})

	require.NoError(t, err)
	assert.NotNil(t, out)
	assert.Equal(t, 1, svc.calls)
}
`

func main() {
	taskType := flag.String("task", "", "Task type from the activity catalogue (e.g., close-job)")
	registryPath := flag.String("registry", "", "Path to catalogue file (embedded catalogue when empty)")
	outDir := flag.String("out", "internal/workers/recruitment", "Directory the worker package is created in")
	force := flag.Bool("force", false, "Overwrite existing files")
	flag.Parse()

	if *taskType == "" {
		fmt.Println("Error: -task is required")
		flag.Usage()
		os.Exit(1)
	}

	var (
		reg *registry.ActivityRegistry
		err error
	)
	if *registryPath == "" {
		reg, err = registry.Default()
	} else {
		reg, err = registry.LoadRegistry(*registryPath)
	}
	if err != nil {
		fmt.Printf("Error loading registry: %v\n", err)
		os.Exit(1)
	}

	activity, ok := reg.Find(*taskType)
	if !ok {
		fmt.Printf("Error: task type %s not found in registry\n", *taskType)
		os.Exit(1)
	}

	data := WorkerData{
		TaskType:     activity.TaskType,
		PackageName:  packageName(activity.TaskType),
		Method:       methodName(activity.TaskType),
		Description:  "runs the " + activity.TaskType + " task.",
		TimeoutSecs:  int(activity.TimeoutDuration(10 * time.Second) / time.Second),
		InputFields:  fields(activity.InputSchema),
		OutputFields: fields(activity.OutputSchema),
	}
	if activity.Description != "" {
		data.Description = strings.ToLower(activity.Description[:1]) + activity.Description[1:] + "."
	}

	dir := filepath.Join(*outDir, activity.TaskType)
	if err := os.MkdirAll(dir, 0755); err != nil {
		fmt.Printf("Error creating directory: %v\n", err)
		os.Exit(1)
	}

	templates := map[string]string{
		"config.go":       configTemplate,
		"models.go":       modelsTemplate,
		"handler.go":      handlerTemplate,
		"handler_test.go": testTemplate,
	}
	for filename, text := range templates {
		path := filepath.Join(dir, filename)
		if _, err := os.Stat(path); err == nil && !*force {
			fmt.Printf("Skipping %s (exists, use -force to overwrite)\n", path)
			continue
		}
		if err := render(path, text, data); err != nil {
			fmt.Printf("Error generating %s: %v\n", path, err)
			os.Exit(1)
		}
		fmt.Printf("Generated %s\n", path)
	}
}

func render(path, text string, data WorkerData) error {
	tmpl, err := template.New(filepath.Base(path)).Parse(text)
	if err != nil {
		return fmt.Errorf("parse template: %w", err)
	}
	var b strings.Builder
	if err := tmpl.Execute(&b, data); err != nil {
		return fmt.Errorf("execute template: %w", err)
	}
	src, err := format.Source([]byte(b.String()))
	if err != nil {
		return fmt.Errorf("format source: %w", err)
	}
	return os.WriteFile(path, src, 0644)
}
