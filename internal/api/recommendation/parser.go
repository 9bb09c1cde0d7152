package recommendation

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/galagram/galagram-api/internal/types"
)

const (
	defaultRating      = 4.5
	defaultDescription = "A beautiful destination in the Philippines."
	defaultLocation    = "Philippines"
	defaultCategory    = "Destination"
	defaultPriceRange  = "₱₱"

	placeholderImageTemplate = "https://images.unsplash.com/photo-1559827260-dc66d52bef19?w=400&h=300&fit=crop&sig=%d"
)

var defaultActivities = []string{"Sightseeing", "Photography"}

// NormalizeRecommendations turns a raw payload into canonical Destination
// records. It never fails: a nil or empty payload yields the normalized
// static table for the requested category instead. Ratings outside 0-5 are
// passed through unclamped, mirroring what live data can produce.
func NormalizeRecommendations(items []types.RawRecommendation, category string, isFallback bool) []types.Destination {
	if len(items) == 0 {
		return NormalizeRecommendations(FallbackFor(category), category, true)
	}

	now := time.Now().UnixMilli()
	out := make([]types.Destination, len(items))
	for i, item := range items {
		d := types.Destination{
			ID:          synthesizeID(now, i, isFallback),
			Name:        item.Name,
			Description: item.Description,
			Rating:      parseRating(item.Rating),
			Location:    item.Location,
			Category:    item.Category,
			Image:       item.Image,
			PriceRange:  item.PriceRange,
			Activities:  item.Activities,
		}
		if d.Name == "" {
			d.Name = fmt.Sprintf("Destination %d", i+1)
		}
		if d.Description == "" {
			d.Description = defaultDescription
		}
		if d.Location == "" {
			d.Location = defaultLocation
		}
		if d.Category == "" {
			d.Category = defaultCategory
		}
		if d.Image == "" {
			d.Image = fmt.Sprintf(placeholderImageTemplate, i)
		}
		if d.PriceRange == "" {
			d.PriceRange = defaultPriceRange
		}
		if len(d.Activities) == 0 {
			d.Activities = append([]string(nil), defaultActivities...)
		}
		out[i] = d
	}
	return out
}

// synthesizeID never derives an id from item content: fallback rows get a
// stable positional id, live rows a fresh timestamped one.
func synthesizeID(now int64, index int, isFallback bool) string {
	if isFallback {
		return fmt.Sprintf("fallback-%d", index)
	}
	return fmt.Sprintf("ai-%d-%d", now, index)
}

// parseRating accepts the number-or-string rating shapes upstream emits.
// Anything unparseable defaults to 4.5.
func parseRating(v any) float64 {
	switch r := v.(type) {
	case float64:
		return r
	case float32:
		return float64(r)
	case int:
		return float64(r)
	case json.Number:
		if f, err := r.Float64(); err == nil {
			return f
		}
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(r), 64); err == nil {
			return f
		}
	}
	return defaultRating
}

// decodeRecommendationList extracts a JSON array from raw model output,
// tolerating markdown fences and surrounding prose.
func decodeRecommendationList(raw string) ([]types.RawRecommendation, error) {
	cleaned := extractJSONArray(raw)
	var items []types.RawRecommendation
	if err := json.Unmarshal([]byte(cleaned), &items); err != nil {
		return nil, fmt.Errorf("failed to parse recommendation JSON: %w", err)
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("recommendation payload is empty")
	}
	return items, nil
}

// extractJSONArray strips markdown code fences and explanatory text around
// the first JSON array in the response.
func extractJSONArray(response string) string {
	response = strings.TrimSpace(response)

	if strings.HasPrefix(response, "```json") {
		response = strings.TrimPrefix(response, "```json")
	} else if strings.HasPrefix(response, "```") {
		response = strings.TrimPrefix(response, "```")
	}
	if strings.HasSuffix(response, "```") {
		response = strings.TrimSuffix(response, "```")
	}
	response = strings.TrimSpace(response)

	firstBracket := strings.Index(response, "[")
	if firstBracket == -1 {
		return response
	}
	lastBracket := strings.LastIndex(response, "]")
	if lastBracket == -1 || lastBracket <= firstBracket {
		return response
	}
	return strings.TrimSpace(response[firstBracket : lastBracket+1])
}
