package minutes

import (
	"encoding/json"
	"fmt"
	"sort"
	"sync"
)

// Template is a named minutes-formatting prompt. Bodies use {{transcript}}
// and {{date}} placeholders, substituted at generation time.
type Template struct {
	Name string `json:"name"`
	Body string `json:"body"`
}

// DefaultTemplateName is the seeded business-minutes template.
const DefaultTemplateName = "standard-business"

const defaultTemplateBody = `# Role
You are an experienced business consultant. From the meeting transcript
below, produce professional meeting minutes.

# Input
- Date: {{date}}
- Transcript:
{{transcript}}

# Output format

## Minutes

### Meeting information
* Date: {{date}}
* Participants (as stated in the transcript; write "[not stated]" if unclear)

### Action items
* [Concrete action] - Owner: [name or "[unassigned]"] - Due: [date or "[no deadline]"]
* Write "[no action items]" if none were agreed.

### Decisions
* Only items explicitly decided or agreed. Write "[no decisions]" if none.

### Discussion notes
* Organize by agenda topic. Record background, concerns and open points.
* Transcribe figures, data and proper names exactly.

# Rules
1. Never add information that is not in the transcript. No speculation.
2. Mark anything unclear as "[not stated]" or "[to be confirmed]".
3. Prioritize accuracy over brevity; do not omit important detail.

Produce the minutes in the format above.`

// Registry maps template names to templates. Defaults are seeded at
// construction and cannot be replaced or removed; custom entries are
// validated when added instead of silently overwriting.
type Registry struct {
	mu       sync.RWMutex
	defaults map[string]Template
	custom   map[string]Template
}

func NewRegistry() *Registry {
	r := &Registry{
		defaults: make(map[string]Template),
		custom:   make(map[string]Template),
	}
	r.defaults[DefaultTemplateName] = Template{
		Name: DefaultTemplateName,
		Body: defaultTemplateBody,
	}
	return r
}

// Add registers a custom template. Empty names, names reserved by defaults,
// and duplicates are rejected.
func (r *Registry) Add(t Template) error {
	if t.Name == "" {
		return fmt.Errorf("template name required")
	}
	if t.Body == "" {
		return fmt.Errorf("template body required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.defaults[t.Name]; ok {
		return fmt.Errorf("template name %q is reserved", t.Name)
	}
	if _, ok := r.custom[t.Name]; ok {
		return fmt.Errorf("template %q already exists", t.Name)
	}
	r.custom[t.Name] = t
	return nil
}

// Update replaces an existing custom template body.
func (r *Registry) Update(t Template) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.custom[t.Name]; !ok {
		return fmt.Errorf("template %q not found", t.Name)
	}
	r.custom[t.Name] = t
	return nil
}

// Remove deletes a custom template. Defaults cannot be removed.
func (r *Registry) Remove(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.defaults[name]; ok {
		return fmt.Errorf("template %q is reserved", name)
	}
	if _, ok := r.custom[name]; !ok {
		return fmt.Errorf("template %q not found", name)
	}
	delete(r.custom, name)
	return nil
}

// Get looks up a template by name, defaults first.
func (r *Registry) Get(name string) (Template, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if t, ok := r.defaults[name]; ok {
		return t, true
	}
	t, ok := r.custom[name]
	return t, ok
}

// List returns all templates, defaults then custom, each group sorted by name.
func (r *Registry) List() []Template {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Template, 0, len(r.defaults)+len(r.custom))
	for _, t := range r.defaults {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })

	custom := make([]Template, 0, len(r.custom))
	for _, t := range r.custom {
		custom = append(custom, t)
	}
	sort.Slice(custom, func(i, j int) bool { return custom[i].Name < custom[j].Name })

	return append(out, custom...)
}

// ExportJSON serializes the custom templates as a name -> body map, the
// interchange format users move between installs.
func (r *Registry) ExportJSON() ([]byte, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m := make(map[string]string, len(r.custom))
	for name, t := range r.custom {
		m[name] = t.Body
	}
	return json.MarshalIndent(m, "", "  ")
}

// ImportJSON adds templates from an exported name -> body map, validating
// each entry. Returns the number imported; the first invalid entry aborts
// the import.
func (r *Registry) ImportJSON(data []byte) (int, error) {
	var m map[string]string
	if err := json.Unmarshal(data, &m); err != nil {
		return 0, fmt.Errorf("parse templates JSON: %w", err)
	}

	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)

	imported := 0
	for _, name := range names {
		if err := r.Add(Template{Name: name, Body: m[name]}); err != nil {
			return imported, err
		}
		imported++
	}
	return imported, nil
}
