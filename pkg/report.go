package pkg

import (
	"bytes"
	"fmt"
	"math"
	"sort"
	"strings"
	"text/template"
	"unicode/utf8"

	"github.com/fatih/structs"
	"github.com/pkg/errors"
)

const (
	StyleBar      = "bar"
	StyleTemplate = "template"
	StyleGraph    = "graph"

	barWidth    = 50
	graphWidth  = 60
	footerText  = "Stay Safe! Stay home! 💖"
	filledBlock = "▓"
	lightBlock  = "░"
)

// Renderer turns global stats into the gist file content.
type Renderer func(stats GlobalStats) (string, error)

// Style pairs a renderer with the gist file it is published as.
type Style struct {
	Name     string
	FileName string
	Render   Renderer
}

var styles = map[string]Style{
	StyleBar:      {Name: StyleBar, FileName: "status.md", Render: RenderBar},
	StyleTemplate: {Name: StyleTemplate, FileName: "index.yml", Render: RenderTemplate},
	StyleGraph:    {Name: StyleGraph, FileName: "status.txt", Render: RenderGraph},
}

// LookupStyle resolves a configured style name. Unknown names are a configuration problem.
func LookupStyle(name string) (Style, error) {
	style, ok := styles[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		names := make([]string, 0, len(styles))
		for n := range styles {
			names = append(names, n)
		}
		sort.Strings(names)
		return Style{}, &ConfigurationError{
			Reason: fmt.Sprintf("unknown report style %q, expected one of %s", name, strings.Join(names, ", ")),
		}
	}
	return style, nil
}

func FormatReport(stats GlobalStats, style Style) (string, error) {
	if style.Render == nil {
		return "", errors.Errorf("style %q has no renderer", style.Name)
	}
	return style.Render(stats)
}

// BarLengths splits the bar into its recovered and confirmed segments. The ratio is
// recovered/confirmed, not a share of the total; published output depends on it.
func BarLengths(stats GlobalStats) (recoveredLength, confirmedLength int, err error) {
	if stats.TotalConfirmed == 0 {
		return 0, 0, ErrNoConfirmedCases
	}
	ratio := float64(stats.TotalRecovered) / float64(stats.TotalConfirmed)
	confirmedLength = int(math.Floor(barWidth / (ratio + 1)))
	recoveredLength = barWidth - confirmedLength
	return recoveredLength, confirmedLength, nil
}

func RenderBar(stats GlobalStats) (string, error) {
	recoveredLength, confirmedLength, err := BarLengths(stats)
	if err != nil {
		return "", err
	}
	return strings.Repeat(filledBlock, recoveredLength) +
		strings.Repeat(lightBlock, confirmedLength) +
		fmt.Sprintf("\n\n▓ Recovered: %d ░  Confirmed: %d", stats.TotalRecovered, stats.TotalConfirmed), nil
}

var statusTemplate = template.Must(template.New("status").Parse(
	`🦠 COVID-19 Global Status 🌍

😷 Confirmed: {{ .TotalConfirmed }}
😄 Recovered: {{ .TotalRecovered }}

` + footerText))

func RenderTemplate(stats GlobalStats) (string, error) {
	var buf bytes.Buffer
	err := statusTemplate.Execute(&buf, structs.Map(stats))
	if err != nil {
		return "", errors.Wrap(err, "render status template")
	}
	return buf.String(), nil
}

type graphEntry struct {
	label  string
	value  int64
	abbrev string
}

var graphBlocks = []string{"░", "▒", "▓"}

// RenderGraph draws one bar per metric scaled against the largest one, largest first.
func RenderGraph(stats GlobalStats) (string, error) {
	if stats.TotalConfirmed == 0 {
		return "", ErrNoConfirmedCases
	}
	entries := []graphEntry{
		{label: "🤒 Confirmed", value: stats.TotalConfirmed},
		{label: "😵 Deaths", value: stats.TotalDeaths},
		{label: "😄 Recovered", value: stats.TotalRecovered},
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].value > entries[j].value
	})

	maxLblLen := 0
	for i := range entries {
		abbrev, err := AbbreviateNumber(entries[i].value)
		if err != nil {
			return "", errors.Wrapf(err, "abbreviate %s", entries[i].label)
		}
		entries[i].abbrev = abbrev
		if l := utf8.RuneCountInString(entries[i].label) + utf8.RuneCountInString(abbrev) + 2; l > maxLblLen {
			maxLblLen = l
		}
	}
	maxValue := entries[0].value
	graphSpace := graphWidth - maxLblLen

	lines := make([]string, 0, len(entries)+1)
	for i, e := range entries {
		padding := maxLblLen - (utf8.RuneCountInString(e.label) + utf8.RuneCountInString(e.abbrev) + 1)
		barLength := int(math.Floor(float64(e.value) / float64(maxValue) * float64(graphSpace)))
		lines = append(lines, e.label+strings.Repeat(" ", padding)+e.abbrev+" "+strings.Repeat(graphBlocks[i], barLength))
	}
	lines = append(lines, footerText)
	return strings.Join(lines, "\n"), nil
}
