package yamlconf

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/specialistvlad/taskgrid/internal/config"
	"github.com/specialistvlad/taskgrid/internal/ctxlog"
	"gopkg.in/yaml.v3"
)

// document is the top-level shape of a YAML task file.
type document struct {
	Tasks []taskNode `yaml:"tasks"`
}

type taskNode struct {
	Name        string     `yaml:"name"`
	Description string     `yaml:"description"`
	DependsOn   []string   `yaml:"depends_on"`
	DoFirst     []stepNode `yaml:"do_first"`
	DoLast      []stepNode `yaml:"do_last"`

	line int
}

// checkMapping rejects anything but a mapping whose keys are all in fields.
// The decoder's known field checking does not reach custom unmarshalers.
func checkMapping(value *yaml.Node, kind string, fields ...string) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: a %s must be a mapping", value.Line, kind)
	}
	for i := 0; i+1 < len(value.Content); i += 2 {
		key := value.Content[i]
		if !slices.Contains(fields, key.Value) {
			return fmt.Errorf("line %d: field %s not found in %s", key.Line, key.Value, kind)
		}
	}
	return nil
}

// UnmarshalYAML records the task's line and rejects unknown keys.
func (t *taskNode) UnmarshalYAML(value *yaml.Node) error {
	if err := checkMapping(value, "task", "name", "description", "depends_on", "do_first", "do_last"); err != nil {
		return err
	}
	type plain taskNode
	if err := value.Decode((*plain)(t)); err != nil {
		return err
	}
	t.line = value.Line
	return nil
}

type stepNode struct {
	Print *string `yaml:"print"`
	Fail  *string `yaml:"fail"`
}

// UnmarshalYAML rejects unknown keys.
func (s *stepNode) UnmarshalYAML(value *yaml.Node) error {
	if err := checkMapping(value, "step", "print", "fail"); err != nil {
		return err
	}
	type plain stepNode
	return value.Decode((*plain)(s))
}

// Loader is the YAML implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new YAML task file loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Extensions implements config.Loader.
func (l *Loader) Extensions() []string {
	return []string{".yaml", ".yml"}
}

// Load decodes every file and translates its tasks into the model.
func (l *Loader) Load(ctx context.Context, files ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("YAML loader started.", "file_count", len(files))

	model := &config.Model{}
	for _, file := range files {
		doc, err := decodeFile(file)
		if err != nil {
			return nil, err
		}
		for _, tn := range doc.Tasks {
			t, err := translateTask(file, tn)
			if err != nil {
				return nil, fmt.Errorf("failed to decode YAML file %s: %w", file, err)
			}
			model.Tasks = append(model.Tasks, t)
		}
	}

	logger.Debug("YAML loading complete.", "tasks", len(model.Tasks))
	return model, nil
}

func decodeFile(file string) (*document, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)

	// A file may hold several documents separated by "---"; their tasks are
	// concatenated in document order.
	merged := &document{}
	for {
		var doc document
		err := dec.Decode(&doc)
		if errors.Is(err, io.EOF) {
			return merged, nil
		}
		if err != nil {
			return nil, fmt.Errorf("failed to decode YAML file %s: %w", file, err)
		}
		merged.Tasks = append(merged.Tasks, doc.Tasks...)
	}
}

func translateTask(file string, tn taskNode) (*config.Task, error) {
	if tn.Name == "" {
		return nil, fmt.Errorf("line %d: task has no name", tn.line)
	}
	t := &config.Task{
		Name:        tn.Name,
		Description: tn.Description,
		DependsOn:   tn.DependsOn,
		Source:      fmt.Sprintf("%s:%d", file, tn.line),
	}
	var err error
	if t.DoFirst, err = translateSteps(tn.DoFirst); err != nil {
		return nil, fmt.Errorf("task %q: %w", tn.Name, err)
	}
	if t.DoLast, err = translateSteps(tn.DoLast); err != nil {
		return nil, fmt.Errorf("task %q: %w", tn.Name, err)
	}
	return t, nil
}

func translateSteps(nodes []stepNode) ([]config.Step, error) {
	var steps []config.Step
	for i, n := range nodes {
		s, err := config.NewStep(n.Print, n.Fail)
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i+1, err)
		}
		steps = append(steps, s)
	}
	return steps, nil
}
