// Package persist mirrors the task collection into a key-value store as a
// JSON array under one fixed key.
package persist

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"tasklite/internal/task"
)

const DefaultKey = "tasks"

// ErrCorrupt marks a stored value that cannot be decoded into tasks.
var ErrCorrupt = errors.New("stored tasks are corrupt")

//go:embed schema.json
var schemaJSON string

// KV is the external store the bridge writes through.
type KV interface {
	Get(key string) ([]byte, bool, error)
	Set(key string, value []byte) error
}

type record struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Created     string `json:"created"`
	Complete    bool   `json:"complete"`
}

type Bridge struct {
	kv     KV
	key    string
	schema *jsonschema.Schema
}

// New returns a bridge storing under key, or DefaultKey when key is empty.
func New(kv KV, key string) (*Bridge, error) {
	if key == "" {
		key = DefaultKey
	}
	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true
	if err := compiler.AddResource("tasks.schema.json", strings.NewReader(schemaJSON)); err != nil {
		return nil, fmt.Errorf("load tasks schema: %w", err)
	}
	schema, err := compiler.Compile("tasks.schema.json")
	if err != nil {
		return nil, fmt.Errorf("compile tasks schema: %w", err)
	}
	return &Bridge{kv: kv, key: key, schema: schema}, nil
}

func (b *Bridge) Key() string {
	return b.key
}

// Save replaces the stored value with tasks.
func (b *Bridge) Save(tasks []task.Task) error {
	records := make([]record, 0, len(tasks))
	for _, t := range tasks {
		records = append(records, record{
			ID:          t.ID,
			Title:       t.Title,
			Description: t.Description,
			Created:     t.Created.UTC().Format(time.RFC3339Nano),
			Complete:    t.Complete,
		})
	}
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encode tasks: %w", err)
	}
	if err := b.kv.Set(b.key, data); err != nil {
		return fmt.Errorf("write %q: %w", b.key, err)
	}
	return nil
}

// Load reads the stored collection. A missing or empty value is an empty
// collection. Anything that does not decode cleanly is reported as
// ErrCorrupt and left untouched in the store.
func (b *Bridge) Load() ([]task.Task, error) {
	data, ok, err := b.kv.Get(b.key)
	if err != nil {
		return nil, fmt.Errorf("read %q: %w", b.key, err)
	}
	if !ok || strings.TrimSpace(string(data)) == "" {
		return []task.Task{}, nil
	}

	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrCorrupt, b.key, err)
	}
	if err := b.schema.Validate(raw); err != nil {
		return nil, fmt.Errorf("%w: %q: %s", ErrCorrupt, b.key, describeSchemaError(err))
	}

	var records []record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrCorrupt, b.key, err)
	}
	tasks := make([]task.Task, 0, len(records))
	seen := make(map[string]int, len(records))
	for i, r := range records {
		if first, dup := seen[r.ID]; dup {
			return nil, fmt.Errorf("%w: %q: [%d].id: duplicate %q (first at [%d])", ErrCorrupt, b.key, i, r.ID, first)
		}
		seen[r.ID] = i
		created, err := time.Parse(time.RFC3339Nano, r.Created)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: [%d].created: %v", ErrCorrupt, b.key, i, err)
		}
		tasks = append(tasks, task.Task{
			ID:          r.ID,
			Title:       r.Title,
			Description: r.Description,
			Created:     created,
			Complete:    r.Complete,
		})
	}
	return tasks, nil
}

func describeSchemaError(err error) string {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return err.Error()
	}
	var msgs []string
	collectSchemaErrors(ve, &msgs)
	if len(msgs) == 0 {
		return ve.Message
	}
	return strings.Join(msgs, "; ")
}

func collectSchemaErrors(ve *jsonschema.ValidationError, msgs *[]string) {
	if len(ve.Causes) == 0 {
		msg := ve.Message
		if path := jsonPointerToPath(ve.InstanceLocation); path != "" {
			msg = path + ": " + msg
		}
		*msgs = append(*msgs, msg)
		return
	}
	for _, cause := range ve.Causes {
		collectSchemaErrors(cause, msgs)
	}
}

func jsonPointerToPath(ptr string) string {
	ptr = strings.TrimPrefix(ptr, "#")
	ptr = strings.TrimPrefix(ptr, "/")
	if ptr == "" {
		return ""
	}
	path := ""
	for _, part := range strings.Split(ptr, "/") {
		part = strings.ReplaceAll(part, "~1", "/")
		part = strings.ReplaceAll(part, "~0", "~")
		if part == "" {
			continue
		}
		if idx, err := strconv.Atoi(part); err == nil {
			path += fmt.Sprintf("[%d]", idx)
			continue
		}
		if path == "" {
			path = part
		} else {
			path += "." + part
		}
	}
	return path
}
