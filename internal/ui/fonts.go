package ui

import (
	"bufio"
	"bytes"
	"context"
	"os/exec"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

const fontListTimeout = 2 * time.Second

// systemFontFamilies lists installed font families with fc-list. It returns
// nil when fontconfig is unavailable; the font dialog then falls back to
// its built-in families.
func systemFontFamilies(ctx context.Context) []string {
	ctx, cancel := context.WithTimeout(ctx, fontListTimeout)
	defer cancel()

	out, err := exec.CommandContext(ctx, "fc-list", ":", "family").Output()
	if err != nil {
		log.Debug("fc-list unavailable", "err", err)
		return nil
	}
	return parseFontFamilies(out)
}

// parseFontFamilies reads fc-list family output. Each line may carry
// several comma-separated localized names; the first one is kept.
func parseFontFamilies(out []byte) []string {
	seen := make(map[string]bool)
	var families []string
	scanner := bufio.NewScanner(bytes.NewReader(out))
	for scanner.Scan() {
		name, _, _ := strings.Cut(scanner.Text(), ",")
		name = strings.TrimSpace(strings.ReplaceAll(name, `\-`, "-"))
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		families = append(families, name)
	}
	sort.Slice(families, func(i, j int) bool {
		return strings.ToLower(families[i]) < strings.ToLower(families[j])
	})
	return families
}
