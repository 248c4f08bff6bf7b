package config

import (
	"strings"
)

// GenerateProjectConfig returns starter content for a project's
// .assetrules.toml: the built-in defaults with every value commented out,
// so uncommenting a line overrides it
func GenerateProjectConfig() string {
	return commentOutConfigValues(GetDefaultsContent())
}

// commentOutConfigValues comments out all assignment lines in TOML content,
// keeping comments, blanks, and section headers as-is
func commentOutConfigValues(content string) string {
	lines := strings.Split(content, "\n")
	var result []string

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)

		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			result = append(result, line)
			continue
		}
		if strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]") {
			result = append(result, line)
			continue
		}

		result = append(result, "# "+line)
	}

	return strings.Join(result, "\n")
}
