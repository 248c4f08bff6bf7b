// Package rulestore persists rule sets as YAML documents. The round-trip is
// lossless: every field, including DontChange sentinels and disabled rules,
// survives serialize/deserialize exactly.
package rulestore

import (
	"bytes"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/assetpipe/assetrules/pkg/errors"
	"github.com/assetpipe/assetrules/pkg/logging"
	"github.com/assetpipe/assetrules/pkg/rules"
)

// Version is the current rule set document schema version
const Version = 1

// document is the on-disk shape of a rule set
type document struct {
	Version int           `yaml:"version"`
	Rules   rules.RuleSet `yaml:",inline"`
}

// Load reads a rule set document. A missing file yields an empty set with
// no error. A malformed document yields an empty set AND a non-nil error:
// the caller keeps working with the empty set and surfaces the error for
// logging, never crashing on a corrupt file.
func Load(path string) (rules.RuleSet, error) {
	logger := logging.GetLogger("rulestore")

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		logger.Debug().Str("path", path).Msg("No rule set document, starting empty")
		return rules.RuleSet{}, nil
	}
	if err != nil {
		return rules.RuleSet{}, errors.Wrapf(err, errors.ErrRuleSetParse,
			"cannot read rule set from %s", path)
	}

	set, err := Decode(data)
	if err != nil {
		logger.Warn().Err(err).Str("path", path).Msg("Malformed rule set document, falling back to empty")
		return rules.RuleSet{}, err
	}

	logger.Debug().
		Str("path", path).
		Int("models", len(set.Models)).
		Int("textures", len(set.Textures)).
		Msg("Loaded rule set")
	return set, nil
}

// Decode parses a rule set document from bytes. Decoding is strict:
// unknown keys are a parse error, so junk that happens to be valid YAML
// never silently yields an empty set.
func Decode(data []byte) (rules.RuleSet, error) {
	var doc document
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && err != io.EOF {
		return rules.RuleSet{}, errors.Wrap(err, errors.ErrRuleSetParse, "malformed rule set document")
	}
	if doc.Version > Version {
		return rules.RuleSet{}, errors.Newf(errors.ErrRuleSetParse,
			"rule set document version %d is newer than supported version %d", doc.Version, Version)
	}
	return doc.Rules, nil
}

// Encode serializes a rule set document to bytes
func Encode(set rules.RuleSet) ([]byte, error) {
	data, err := yaml.Marshal(document{Version: Version, Rules: set})
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrRuleSetWrite, "cannot serialize rule set")
	}
	return data, nil
}

// Save writes the rule set document atomically (temp file + rename)
func Save(path string, set rules.RuleSet) error {
	data, err := Encode(set)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrapf(err, errors.ErrRuleSetWrite, "cannot create directory %s", dir)
	}

	tmp, err := os.CreateTemp(dir, ".rules-*.yaml")
	if err != nil {
		return errors.Wrap(err, errors.ErrRuleSetWrite, "cannot create temp file")
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return errors.Wrapf(err, errors.ErrRuleSetWrite, "cannot write %s", tmpName)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return errors.Wrapf(err, errors.ErrRuleSetWrite, "cannot close %s", tmpName)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return errors.Wrapf(err, errors.ErrRuleSetWrite, "cannot replace %s", path)
	}

	logger := logging.GetLogger("rulestore")
	logger.Debug().Str("path", path).Msg("Saved rule set")
	return nil
}

// Import reads a rule set document from path and merges it into set.
// Unlike Load, a malformed import document is strict: the error is returned
// and set is left untouched, so a bad import never eats existing rules.
func Import(set *rules.RuleSet, path string, mode rules.MergeMode) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, errors.ErrRuleSetParse, "cannot read import from %s", path)
	}

	incoming, err := Decode(data)
	if err != nil {
		return err
	}
	if err := incoming.Validate(); err != nil {
		return err
	}

	return set.Merge(incoming, mode)
}
