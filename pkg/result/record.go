package result

// Record is a single scored node pair read from a result file.
type Record struct {
	// T is the ground truth label.
	T int `json:"t" yaml:"t"`
	// R is the rank (or role) reported by the predictor.
	R int `json:"r" yaml:"r"`
	// P is the predictor's probability-like value.
	P          float64 `json:"p" yaml:"p"`
	NodePair   string  `json:"node_pair" yaml:"node_pair"`
	Confidence float64 `json:"confidence" yaml:"confidence"`
	Score      float64 `json:"score" yaml:"score"`
	OrbitPair  string  `json:"orbit_pair" yaml:"orbit_pair"`
}

// Table is an append-only, ordered set of records.
// Column views are positionally aligned: index i of every view is row i.
type Table struct {
	records []Record
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{records: make([]Record, 0)}
}

// Add appends the record to the end of the table.
func (t *Table) Add(r Record) {
	t.records = append(t.records, r)
}

// Len returns number of records in the table.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.records)
}

// At returns the record at index i.
func (t *Table) At(i int) Record {
	return t.records[i]
}

// Labels returns the ground truth column.
func (t *Table) Labels() []int {
	return column(t, func(r Record) int { return r.T })
}

// Ranks returns the R column.
func (t *Table) Ranks() []int {
	return column(t, func(r Record) int { return r.R })
}

// Probabilities returns the P column.
func (t *Table) Probabilities() []float64 {
	return column(t, func(r Record) float64 { return r.P })
}

// NodePairs returns the node pair column.
func (t *Table) NodePairs() []string {
	return column(t, func(r Record) string { return r.NodePair })
}

// Confidences returns the predicted confidence column.
func (t *Table) Confidences() []float64 {
	return column(t, func(r Record) float64 { return r.Confidence })
}

// Scores returns the secondary score column.
func (t *Table) Scores() []float64 {
	return column(t, func(r Record) float64 { return r.Score })
}

// OrbitPairs returns the orbit pair column.
func (t *Table) OrbitPairs() []string {
	return column(t, func(r Record) string { return r.OrbitPair })
}

func column[T any](t *Table, get func(Record) T) []T {
	list := make([]T, t.Len())
	for i := range list {
		list[i] = get(t.records[i])
	}
	return list
}
