package entity

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/pcormier/po-intake/constants"
)

// PolicyGates are the confidence thresholds the router applies when
// reconciling a document decision. Supplied by the caller per invocation;
// the router never reads ambient configuration.
type PolicyGates struct {
	AutoStageMin float64 `yaml:"auto_stage_min" json:"auto_stage_min"`
	ReviewMin    float64 `yaml:"review_min" json:"review_min"`
	BlockBelow   float64 `yaml:"block_below" json:"block_below"`
}

// ExclusionRule is an operator override forcing a routing action when its
// reason code is present on a document, optionally scoped to document types.
type ExclusionRule struct {
	ReasonCode      string                    `yaml:"reason_code" json:"reason_code"`
	Action          constants.ExclusionAction `yaml:"action" json:"action"`
	TriggerKeywords []string                  `yaml:"trigger_keywords,omitempty" json:"trigger_keywords,omitempty"`
	DocTypes        []constants.DocType       `yaml:"doc_types,omitempty" json:"doc_types,omitempty"`
}

// AppliesTo reports whether the rule is in scope for the given document type.
// A rule with no doc_types applies everywhere.
func (r ExclusionRule) AppliesTo(dt constants.DocType) bool {
	if len(r.DocTypes) == 0 {
		return true
	}
	for _, d := range r.DocTypes {
		if d == dt {
			return true
		}
	}
	return false
}

// PolicyConfig bundles gates and exclusion rules as one loadable document.
type PolicyConfig struct {
	Gates      PolicyGates              `yaml:"gates" json:"gates"`
	Exclusions map[string]ExclusionRule `yaml:"exclusions,omitempty" json:"exclusions,omitempty"`
}

// DefaultPolicyConfig returns the conservative defaults used when no policy
// document is supplied.
func DefaultPolicyConfig() PolicyConfig {
	return PolicyConfig{
		Gates: PolicyGates{
			AutoStageMin: 0.95,
			ReviewMin:    0.80,
			BlockBelow:   0.50,
		},
		Exclusions: map[string]ExclusionRule{},
	}
}

// LoadPolicyConfig parses a YAML policy document. Rules keyed with an empty
// reason_code inherit their map key.
func LoadPolicyConfig(data []byte) (PolicyConfig, error) {
	cfg := DefaultPolicyConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return PolicyConfig{}, fmt.Errorf("policy config: decode: %w", err)
	}
	for key, rule := range cfg.Exclusions {
		if rule.ReasonCode == "" {
			rule.ReasonCode = key
			cfg.Exclusions[key] = rule
		}
	}
	if cfg.Gates.AutoStageMin < cfg.Gates.ReviewMin {
		return PolicyConfig{}, fmt.Errorf("policy config: auto_stage_min %.2f below review_min %.2f", cfg.Gates.AutoStageMin, cfg.Gates.ReviewMin)
	}
	return cfg, nil
}
