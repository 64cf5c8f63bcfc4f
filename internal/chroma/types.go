package chroma

import (
	"encoding/json"

	chromago "github.com/chroma-core/chroma/clients/go"
)

// Collection is the view of a collection the explorer works with.
type Collection struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	Metadata      map[string]any `json:"metadata"`
	Configuration map[string]any `json:"configuration_json"`
	Dimension     *int           `json:"dimension,omitempty"`
	Tenant        string         `json:"tenant,omitempty"`
	Database      string         `json:"database,omitempty"`
}

// Record is one stored embedding with its document and metadata.
type Record struct {
	ID        string         `json:"id"`
	Document  string         `json:"document"`
	Metadata  map[string]any `json:"metadata"`
	Embedding []float64      `json:"embedding"`
}

func fromModel(m chromago.CollectionModel) Collection {
	col := Collection{
		ID:            m.ID,
		Name:          m.Name,
		Metadata:      toMap(m.Metadata),
		Configuration: toMap(m.ConfigurationJSON),
		Tenant:        m.Tenant,
		Database:      m.Database,
	}
	if m.Dimension > 0 {
		d := m.Dimension
		col.Dimension = &d
	}
	return col
}

func fromCollection(c chromago.Collection) Collection {
	col := Collection{
		ID:            c.ID(),
		Name:          c.Name(),
		Metadata:      toMap(c.Metadata()),
		Configuration: toMap(c.Configuration()),
	}
	if t := c.Tenant(); t != nil {
		col.Tenant = t.Name()
	}
	if db := c.Database(); db != nil {
		col.Database = db.Name()
	}
	if d := c.Dimension(); d > 0 {
		col.Dimension = &d
	}
	return col
}

// toMap flattens chroma-go's typed metadata and configuration values into
// plain JSON maps. Empty values become nil.
func toMap(v any) map[string]any {
	if v == nil {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil || len(m) == 0 {
		return nil
	}
	return m
}

// getResponse is the columnar payload of POST .../collections/{id}/get.
// Documents are pointers because records stored without one come back null.
type getResponse struct {
	IDs        []string         `json:"ids"`
	Documents  []*string        `json:"documents"`
	Metadatas  []map[string]any `json:"metadatas"`
	Embeddings [][]float64      `json:"embeddings"`
}

// records zips the columnar response into row records.
func (g getResponse) records() []Record {
	out := make([]Record, len(g.IDs))
	for i, id := range g.IDs {
		rec := Record{ID: id}
		if i < len(g.Documents) && g.Documents[i] != nil {
			rec.Document = *g.Documents[i]
		}
		if i < len(g.Metadatas) {
			rec.Metadata = g.Metadatas[i]
		}
		if i < len(g.Embeddings) {
			rec.Embedding = g.Embeddings[i]
		}
		out[i] = rec
	}
	return out
}
