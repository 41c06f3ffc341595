package ranking

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"time"

	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"

	"github.com/agenthands/kgquiz/internal/core/common"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// HTTPRanker queries the ranking service with GET {endpoint}?q=<label>&top=<n>.
type HTTPRanker struct {
	endpoint string
	client   *http.Client
	logger   *zap.Logger
}

func NewHTTPRanker(endpoint string, timeout time.Duration, logger *zap.Logger) (*HTTPRanker, error) {
	if endpoint == "" {
		return nil, fmt.Errorf("ranking endpoint is required")
	}
	if _, err := url.Parse(endpoint); err != nil {
		return nil, fmt.Errorf("invalid ranking endpoint '%s': %w", endpoint, err)
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HTTPRanker{
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
		logger:   logger.Named("ranking"),
	}, nil
}

func (r *HTTPRanker) TopProperties(ctx context.Context, entityLabel string, top int) ([]string, error) {
	values := url.Values{}
	values.Set("q", entityLabel)
	values.Set("top", strconv.Itoa(top))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.endpoint+"?"+values.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to build request: %v", common.ErrRankingService, err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrRankingService, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%w: status %d: %s", common.ErrRankingService, resp.StatusCode, snippet)
	}

	var body any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", common.ErrRankingService, err)
	}

	ids, err := identifiers(body)
	if err != nil {
		return nil, err
	}
	r.logger.Debug("ranked properties fetched",
		zap.String("label", entityLabel),
		zap.Int("count", len(ids)),
		zap.Duration("took", time.Since(start)))
	return ids, nil
}

// identifiers accepts either an array of ids or an object whose keys are the ids.
func identifiers(body any) ([]string, error) {
	switch v := body.(type) {
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("%w: non-string identifier %v", common.ErrRankingService, item)
			}
			out = append(out, s)
		}
		return out, nil
	case map[string]any:
		out := make([]string, 0, len(v))
		for k := range v {
			out = append(out, k)
		}
		// Object key order is lost in decoding; sort for reproducible output.
		sort.Strings(out)
		return out, nil
	default:
		return nil, fmt.Errorf("%w: unexpected response shape %T", common.ErrRankingService, body)
	}
}
