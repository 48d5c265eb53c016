package summary

// messageSet keeps distinct messages in the order they were first added.
type messageSet struct {
	items []string
	seen  map[string]struct{}
}

func (m *messageSet) add(msg string) bool {
	if m.seen == nil {
		m.seen = make(map[string]struct{})
	}
	if _, ok := m.seen[msg]; ok {
		return false
	}
	m.seen[msg] = struct{}{}
	m.items = append(m.items, msg)
	return true
}

func (m *messageSet) list() []string {
	out := make([]string, len(m.items))
	copy(out, m.items)
	return out
}

// AssetSummary accumulates the errors and warnings attributed to one asset.
type AssetSummary struct {
	name     string
	errors   messageSet
	warnings messageSet
}

func newAssetSummary(name string) *AssetSummary {
	return &AssetSummary{name: name}
}

func (a *AssetSummary) Name() string { return a.name }

// Errors returns the distinct error messages in insertion order.
func (a *AssetSummary) Errors() []string { return a.errors.list() }

// Warnings returns the distinct warning messages in insertion order.
func (a *AssetSummary) Warnings() []string { return a.warnings.list() }

// Empty reports whether nothing was recorded for the asset.
func (a *AssetSummary) Empty() bool {
	return len(a.errors.items) == 0 && len(a.warnings.items) == 0
}

// AddError records msg as an error, it returns false if it was already known.
func (a *AssetSummary) AddError(msg string) bool { return a.errors.add(msg) }

// AddWarning records msg as a warning, it returns false if it was already known.
func (a *AssetSummary) AddWarning(msg string) bool { return a.warnings.add(msg) }
