package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"research-publisher/internal/shared/errors"
)

// Section keys the publisher requires in the research document. Everything
// else in the input passes through to the main document unread.
const (
	KeyRecommendedTiers  = "recommended_pricing_tiers"
	KeyTierStructure     = "tier_structure"
	KeyB2BAPIPricing     = "b2b_api_pricing"
	KeyWhiteLabel        = "white_label_reseller"
	KeyCompetitorPricing = "competitor_pricing"
	KeyInsights          = "key_insights"
	KeySources           = "sources"
)

// Metadata field names stamped onto the tree before the main write.
const (
	FieldUploadedAt = "uploaded_at"
	FieldUploadedBy = "uploaded_by"
	FieldVersion    = "version"
	FieldStatus     = "status"
)

// UploadMetadata is stamped onto the research tree before publishing.
type UploadMetadata struct {
	UploadedAt time.Time
	UploadedBy string
	Version    string
	Status     string
}

// ResearchDocument is the validated in-memory form of one pricing research
// file: the full tree plus typed views of the sections the publisher fans out.
// Tier order follows the key order of the source JSON.
type ResearchDocument struct {
	root map[string]interface{}

	tierOrder  []string
	tiers      map[string]map[string]interface{}
	b2bPricing map[string]interface{}
	whiteLabel map[string]interface{}
	comps      map[string]interface{}
	insights   map[string]interface{}
	sources    []interface{}
}

// Load reads and decodes a research file.
func Load(path string) (*ResearchDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewInputError("failed to read research file").
			WithDetail("path", path).
			WithCause(err)
	}
	return Decode(data)
}

// Decode parses and validates a research document. Validation is complete
// before the caller issues any write: a missing or mis-shaped required
// section fails here, not mid-publish.
func Decode(data []byte) (*ResearchDocument, error) {
	var root map[string]interface{}
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, errors.NewParseError("research file is not valid JSON").WithCause(err)
	}

	recommended, err := requireObject(root, KeyRecommendedTiers, KeyRecommendedTiers)
	if err != nil {
		return nil, err
	}

	tierStructure, err := requireObject(recommended, KeyTierStructure, KeyRecommendedTiers+"."+KeyTierStructure)
	if err != nil {
		return nil, err
	}
	tiers := make(map[string]map[string]interface{}, len(tierStructure))
	for name, attrs := range tierStructure {
		obj, ok := attrs.(map[string]interface{})
		if !ok {
			return nil, errors.NewValidationError(fmt.Sprintf("tier %q is not an object", name)).
				WithDetail("tier", name)
		}
		tiers[name] = obj
	}

	tierOrder, err := tierKeyOrder(data)
	if err != nil {
		return nil, err
	}

	b2bPricing, err := requireObject(recommended, KeyB2BAPIPricing, KeyRecommendedTiers+"."+KeyB2BAPIPricing)
	if err != nil {
		return nil, err
	}
	whiteLabel, err := requireObject(recommended, KeyWhiteLabel, KeyRecommendedTiers+"."+KeyWhiteLabel)
	if err != nil {
		return nil, err
	}
	comps, err := requireObject(root, KeyCompetitorPricing, KeyCompetitorPricing)
	if err != nil {
		return nil, err
	}
	insights, err := requireObject(root, KeyInsights, KeyInsights)
	if err != nil {
		return nil, err
	}

	rawSources, ok := root[KeySources]
	if !ok {
		return nil, missingSection(KeySources)
	}
	sources, ok := rawSources.([]interface{})
	if !ok {
		return nil, errors.NewValidationError(fmt.Sprintf("section %q is not an array", KeySources)).
			WithDetail("section", KeySources)
	}

	return &ResearchDocument{
		root:       root,
		tierOrder:  tierOrder,
		tiers:      tiers,
		b2bPricing: b2bPricing,
		whiteLabel: whiteLabel,
		comps:      comps,
		insights:   insights,
		sources:    sources,
	}, nil
}

// Stamp mutates the in-memory tree with upload metadata. Called once, before
// the main document write.
func (d *ResearchDocument) Stamp(meta UploadMetadata) {
	d.root[FieldUploadedAt] = meta.UploadedAt
	d.root[FieldUploadedBy] = meta.UploadedBy
	d.root[FieldVersion] = meta.Version
	d.root[FieldStatus] = meta.Status
}

// Tree returns the full tree, including pass-through keys and any stamped
// metadata. The map is shared, not copied.
func (d *ResearchDocument) Tree() map[string]interface{} {
	return d.root
}

// TierNames returns the tier names in source key order.
func (d *ResearchDocument) TierNames() []string {
	names := make([]string, len(d.tierOrder))
	copy(names, d.tierOrder)
	return names
}

// Tier returns the attributes of one tier.
func (d *ResearchDocument) Tier(name string) (map[string]interface{}, bool) {
	attrs, ok := d.tiers[name]
	return attrs, ok
}

// TierCount returns the number of tiers in the tier structure.
func (d *ResearchDocument) TierCount() int {
	return len(d.tiers)
}

// B2BAPIPricing returns the B2B API pricing attributes.
func (d *ResearchDocument) B2BAPIPricing() map[string]interface{} {
	return d.b2bPricing
}

// WhiteLabelReseller returns the white-label reseller attributes.
func (d *ResearchDocument) WhiteLabelReseller() map[string]interface{} {
	return d.whiteLabel
}

// CompetitorPricing returns the competitor pricing section.
func (d *ResearchDocument) CompetitorPricing() map[string]interface{} {
	return d.comps
}

// KeyInsights returns the key insights section.
func (d *ResearchDocument) KeyInsights() map[string]interface{} {
	return d.insights
}

// SourceCount returns the length of the sources array.
func (d *ResearchDocument) SourceCount() int {
	return len(d.sources)
}

func missingSection(key string) *errors.AppError {
	return errors.NewValidationError(fmt.Sprintf("missing required section %q", key)).
		WithDetail("section", key)
}

func requireObject(parent map[string]interface{}, key, qualified string) (map[string]interface{}, error) {
	raw, ok := parent[key]
	if !ok {
		return nil, missingSection(qualified)
	}
	obj, ok := raw.(map[string]interface{})
	if !ok {
		return nil, errors.NewValidationError(fmt.Sprintf("section %q is not an object", qualified)).
			WithDetail("section", qualified)
	}
	return obj, nil
}

// tierKeyOrder re-reads the raw document to recover the key order of
// tier_structure, which encoding/json maps discard.
func tierKeyOrder(data []byte) ([]string, error) {
	var outer struct {
		RecommendedPricingTiers struct {
			TierStructure json.RawMessage `json:"tier_structure"`
		} `json:"recommended_pricing_tiers"`
	}
	if err := json.Unmarshal(data, &outer); err != nil {
		return nil, errors.NewParseError("research file is not valid JSON").WithCause(err)
	}

	dec := json.NewDecoder(bytes.NewReader(outer.RecommendedPricingTiers.TierStructure))
	if _, err := dec.Token(); err != nil {
		return nil, errors.NewParseError("tier_structure is not a JSON object").WithCause(err)
	}

	var order []string
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, errors.NewParseError("tier_structure is not a JSON object").WithCause(err)
		}
		name, ok := tok.(string)
		if !ok {
			return nil, errors.NewParseError("tier_structure is not a JSON object")
		}
		var skip json.RawMessage
		if err := dec.Decode(&skip); err != nil {
			return nil, errors.NewParseError("tier_structure is not a JSON object").WithCause(err)
		}
		order = append(order, name)
	}

	return order, nil
}
