package output

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/assetpipe/assetrules/pkg/assets"
	"github.com/assetpipe/assetrules/pkg/engine"
	"github.com/assetpipe/assetrules/pkg/rules"
)

// Renderer writes human-readable listings and summaries.
type Renderer struct {
	w     io.Writer
	color bool
}

// NewRenderer creates a renderer writing to w. When color is false all
// styling is suppressed.
func NewRenderer(w io.Writer, color bool) *Renderer {
	return &Renderer{w: w, color: color}
}

func (r *Renderer) styled(status Status, s string) string {
	if !r.color {
		return s
	}
	return StatusStyle(status).Sprint(s)
}

func (r *Renderer) header(s string) string {
	if !r.color {
		return s
	}
	return headerStyle.Render(s)
}

func (r *Renderer) dim(s string) string {
	if !r.color {
		return s
	}
	return dimStyle.Render(s)
}

// RenderRules writes the rule set, one numbered line per rule, grouped
// by kind. Positions are the positions used by the mv command.
func (r *Renderer) RenderRules(set *rules.RuleSet) error {
	if set.Len() == 0 {
		_, err := fmt.Fprintln(r.w, "no rules defined")
		return err
	}
	if len(set.Models) > 0 {
		fmt.Fprintln(r.w, r.header("model rules"))
		for i, rule := range set.Models {
			r.ruleLine(i, rule.Name, rule.Enabled, modelRuleSummary(rule))
		}
	}
	if len(set.Textures) > 0 {
		if len(set.Models) > 0 {
			fmt.Fprintln(r.w)
		}
		fmt.Fprintln(r.w, r.header("texture rules"))
		for i, rule := range set.Textures {
			r.ruleLine(i, rule.Name, rule.Enabled, textureRuleSummary(rule))
		}
	}
	return nil
}

func (r *Renderer) ruleLine(pos int, name string, enabled bool, summary string) {
	marker := r.styled(StatusOK, "on ")
	if !enabled {
		marker = r.styled(StatusDisabled, "off")
		name = r.dim(name)
	}
	fmt.Fprintf(r.w, "  %2d  %s  %-24s %s\n", pos, marker, name, r.dim(summary))
}

func modelRuleSummary(rule rules.ModelRule) string {
	parts := []string{fmt.Sprintf("files=%s", rule.Filters.FileKind)}
	if rule.Filters.ApplyToAllTypes {
		parts[0] = "files=*"
	}
	if rule.Filters.MeshKind != rules.MeshKindAll {
		parts = append(parts, fmt.Sprintf("mesh=%s", rule.Filters.MeshKind))
	}
	return strings.Join(parts, " ")
}

func textureRuleSummary(rule rules.TextureRule) string {
	parts := []string{fmt.Sprintf("kind=%s", rule.Filters.TextureKind)}
	if rule.Filters.ApplyToAllTypes {
		parts[0] = "kind=*"
	}
	if rule.Filters.Alpha != rules.AlphaAll {
		parts = append(parts, fmt.Sprintf("alpha=%s", rule.Filters.Alpha))
	}
	if len(rule.Overrides.Platforms) > 0 {
		names := make([]string, 0, len(rule.Overrides.Platforms))
		for p := range rule.Overrides.Platforms {
			names = append(names, string(p))
		}
		sort.Strings(names)
		parts = append(parts, "platforms="+strings.Join(names, ","))
	}
	return strings.Join(parts, " ")
}

// RenderAssets writes one line per asset plus any scan warnings.
func (r *Renderer) RenderAssets(items []assets.Metadata, warnings []assets.Warning) error {
	for _, m := range items {
		detail := string(m.FileKind)
		if m.Kind == assets.KindTexture {
			detail = fmt.Sprintf("%s %dx%d", m.TextureKind, m.Width, m.Height)
		}
		fmt.Fprintf(r.w, "  %-8s %-48s %s\n", m.Kind, m.Path, r.dim(detail))
	}
	for _, w := range warnings {
		fmt.Fprintf(r.w, "  %s %s: %v\n", r.styled(StatusWarning, "warn"), w.Path, w.Err)
	}
	_, err := fmt.Fprintf(r.w, "%d assets, %d warnings\n", len(items), len(warnings))
	return err
}

// RenderBatchResult writes the outcome of a batch application.
func (r *Renderer) RenderBatchResult(result *engine.BatchResult, dryRun bool) error {
	for _, f := range result.Failed {
		fmt.Fprintf(r.w, "  %s %s: %v\n", r.styled(StatusFailed, "fail"), f.Path, f.Err)
	}
	verb := "modified"
	if dryRun {
		verb = "would modify"
	}
	line := fmt.Sprintf("%d assets considered, %s %d, %d failed",
		result.Attempted, verb, result.Modified, len(result.Failed))
	if len(result.Failed) > 0 {
		line = r.styled(StatusWarning, line)
	} else {
		line = r.styled(StatusOK, line)
	}
	_, err := fmt.Fprintln(r.w, line)
	return err
}
