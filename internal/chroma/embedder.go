package chroma

import (
	"context"
	"errors"

	"github.com/chroma-core/chroma/clients/go/pkg/embeddings"
)

var errReadOnly = errors.New("chromaview does not embed documents")

// inertEmbedder satisfies chroma-go's embedding function slot for the
// collection calls that require one. chromaview only reads stored vectors,
// so any attempt to embed fails.
type inertEmbedder struct{}

var _ embeddings.EmbeddingFunction = inertEmbedder{}

func (inertEmbedder) EmbedDocuments(context.Context, []string) ([]embeddings.Embedding, error) {
	return nil, errReadOnly
}

func (inertEmbedder) EmbedQuery(context.Context, string) (embeddings.Embedding, error) {
	return nil, errReadOnly
}

func (inertEmbedder) Name() string { return "chromaview_inert" }

func (inertEmbedder) GetConfig() embeddings.EmbeddingFunctionConfig {
	return embeddings.EmbeddingFunctionConfig{}
}

func (inertEmbedder) DefaultSpace() embeddings.DistanceMetric { return embeddings.L2 }

func (inertEmbedder) SupportedSpaces() []embeddings.DistanceMetric {
	return []embeddings.DistanceMetric{embeddings.L2, embeddings.COSINE, embeddings.IP}
}
