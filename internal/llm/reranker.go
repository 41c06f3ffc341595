package llm

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/agenthands/kgquiz/internal/core/common"
)

const propertyRankingPrompt = `You are helping write trivia questions from the DBpedia knowledge graph.

Entity: %s

List up to %d DBpedia ontology properties (full IRIs in the http://dbpedia.org/ontology/ namespace)
that are most interesting to ask about this entity, most interesting first. Prefer properties whose
value is a year, a number or another well-known entity.

Reply with a JSON object of the form {"properties": ["http://dbpedia.org/ontology/birthYear", ...]}
and nothing else.`

type propertyList struct {
	Properties []string `json:"properties"`
}

// PropertyRanker asks an LLM which properties are worth a question. It satisfies
// the ranking collaborator contract, so failures wrap common.ErrRankingService.
type PropertyRanker struct {
	LLM    LLMClient
	logger *zap.Logger
}

func NewPropertyRanker(client LLMClient, logger *zap.Logger) *PropertyRanker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PropertyRanker{LLM: client, logger: logger.Named("llm_ranker")}
}

func (r *PropertyRanker) TopProperties(ctx context.Context, entityLabel string, top int) ([]string, error) {
	resp, err := r.LLM.Generate(ctx, fmt.Sprintf(propertyRankingPrompt, entityLabel, top))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrRankingService, err)
	}

	list, err := common.ParseJSON[propertyList](resp)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrRankingService, err)
	}

	ids := make([]string, 0, len(list.Properties))
	for _, p := range list.Properties {
		if p = strings.TrimSpace(p); p != "" {
			ids = append(ids, p)
		}
	}
	if len(ids) > top {
		ids = ids[:top]
	}
	r.logger.Debug("properties ranked", zap.String("label", entityLabel), zap.Int("count", len(ids)))
	return ids, nil
}
