package rules

import (
	"github.com/assetpipe/assetrules/pkg/errors"
)

// MergeMode selects how an imported rule set combines with the current one
type MergeMode string

const (
	// MergeReplace discards existing rules in favor of the imported ones
	MergeReplace MergeMode = "replace"

	// MergeAppend concatenates imported rules after the existing ones,
	// preserving both orders
	MergeAppend MergeMode = "append"
)

// ParseMergeMode validates a user-supplied merge mode string
func ParseMergeMode(s string) (MergeMode, error) {
	switch MergeMode(s) {
	case MergeReplace, MergeAppend:
		return MergeMode(s), nil
	}
	return "", errors.Newf(errors.ErrInvalidInput, "unknown merge mode %q", s)
}

// RuleSet is the ordered collection of authored rules, one list per asset
// family. Slice order is application and precedence order.
type RuleSet struct {
	Models   []ModelRule   `yaml:"models,omitempty"`
	Textures []TextureRule `yaml:"textures,omitempty"`
}

// Len returns the total number of rules across both families
func (s *RuleSet) Len() int {
	return len(s.Models) + len(s.Textures)
}

// EnabledCount returns how many rules are currently enabled
func (s *RuleSet) EnabledCount() int {
	n := 0
	for _, r := range s.Models {
		if r.Enabled {
			n++
		}
	}
	for _, r := range s.Textures {
		if r.Enabled {
			n++
		}
	}
	return n
}

// Validate checks every rule in the set
func (s *RuleSet) Validate() error {
	for _, r := range s.Models {
		if err := r.Validate(); err != nil {
			return err
		}
	}
	for _, r := range s.Textures {
		if err := r.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// AddModel appends a model rule at the end of the application order
func (s *RuleSet) AddModel(r ModelRule) {
	s.Models = append(s.Models, r)
}

// AddTexture appends a texture rule at the end of the application order
func (s *RuleSet) AddTexture(r TextureRule) {
	s.Textures = append(s.Textures, r)
}

// RemoveModel deletes the model rule at index i
func (s *RuleSet) RemoveModel(i int) error {
	if i < 0 || i >= len(s.Models) {
		return errors.Newf(errors.ErrRuleNotFound, "no model rule at index %d", i)
	}
	s.Models = append(s.Models[:i], s.Models[i+1:]...)
	return nil
}

// RemoveTexture deletes the texture rule at index i
func (s *RuleSet) RemoveTexture(i int) error {
	if i < 0 || i >= len(s.Textures) {
		return errors.Newf(errors.ErrRuleNotFound, "no texture rule at index %d", i)
	}
	s.Textures = append(s.Textures[:i], s.Textures[i+1:]...)
	return nil
}

// MoveModel reorders a model rule from index from to index to, shifting the
// rules in between. Order is semantically significant, so this is the only
// way precedence changes.
func (s *RuleSet) MoveModel(from, to int) error {
	return moveRule(s.Models, from, to)
}

// MoveTexture reorders a texture rule from index from to index to
func (s *RuleSet) MoveTexture(from, to int) error {
	return moveRule(s.Textures, from, to)
}

func moveRule[R any](list []R, from, to int) error {
	if from < 0 || from >= len(list) || to < 0 || to >= len(list) {
		return errors.Newf(errors.ErrRuleNotFound, "move %d -> %d out of range", from, to)
	}
	r := list[from]
	if from < to {
		copy(list[from:], list[from+1:to+1])
	} else {
		copy(list[to+1:], list[to:from])
	}
	list[to] = r
	return nil
}

// SetModelEnabled toggles a model rule without changing its position
func (s *RuleSet) SetModelEnabled(i int, enabled bool) error {
	if i < 0 || i >= len(s.Models) {
		return errors.Newf(errors.ErrRuleNotFound, "no model rule at index %d", i)
	}
	s.Models[i].Enabled = enabled
	return nil
}

// SetTextureEnabled toggles a texture rule without changing its position
func (s *RuleSet) SetTextureEnabled(i int, enabled bool) error {
	if i < 0 || i >= len(s.Textures) {
		return errors.Newf(errors.ErrRuleNotFound, "no texture rule at index %d", i)
	}
	s.Textures[i].Enabled = enabled
	return nil
}

// Merge combines an imported rule set into this one. Replace discards the
// current rules; Append concatenates, current rules first. Imports never
// silently drop rules.
func (s *RuleSet) Merge(in RuleSet, mode MergeMode) error {
	switch mode {
	case MergeReplace:
		s.Models = in.Models
		s.Textures = in.Textures
	case MergeAppend:
		s.Models = append(s.Models, in.Models...)
		s.Textures = append(s.Textures, in.Textures...)
	default:
		return errors.Newf(errors.ErrInvalidInput, "unknown merge mode %q", mode)
	}
	return nil
}
