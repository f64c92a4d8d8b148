package args

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
)

// Help groups besides the per-type ones.
const (
	HelpSummary = "summary"
	HelpAll     = "all"
	HelpGeneral = "general"
)

var typeDescriptions = map[DialogType]string{
	TypeCalendar:       "Display calendar dialog",
	TypeEntry:          "Display text entry dialog",
	TypeError:          "Display error dialog",
	TypeInfo:           "Display info dialog",
	TypeFileSelection:  "Display file selection dialog",
	TypeList:           "Display list dialog",
	TypeNotification:   "Display notification",
	TypeProgress:       "Display progress indication dialog",
	TypeQuestion:       "Display question dialog",
	TypeWarning:        "Display warning dialog",
	TypeScale:          "Display scale dialog",
	TypeTextInfo:       "Display text information dialog",
	TypeColorSelection: "Display color selection dialog",
	TypeFontSelection:  "Display font selection dialog",
	TypePassword:       "Display password dialog",
	TypeForms:          "Display forms dialog",
}

func helpGroupFor(flag string) (string, bool) {
	switch flag {
	case "help":
		return HelpSummary, true
	case "help-all":
		return HelpAll, true
	case "help-general":
		return HelpGeneral, true
	}
	group, ok := strings.CutPrefix(flag, "help-")
	if !ok {
		return "", false
	}
	if _, ok := typeFlagNames[group]; ok {
		return group, true
	}
	return "", false
}

// HelpGroups lists the help groups in display order.
func HelpGroups() []string {
	groups := []string{HelpGeneral}
	for _, t := range AllTypes {
		groups = append(groups, t.String())
	}
	return groups
}

// Help renders the help text of one group wrapped to width columns.
func Help(group string, width int) string {
	var b strings.Builder
	switch group {
	case HelpSummary, "":
		writeSummary(&b, width)
	case HelpAll:
		writeSummary(&b, width)
		for _, g := range HelpGroups() {
			b.WriteString("\n")
			writeGroup(&b, g, width)
		}
	default:
		writeGroup(&b, group, width)
	}
	return b.String()
}

func writeSummary(b *strings.Builder, width int) {
	b.WriteString("Usage:\n  zentui [OPTION...]\n\nHelp Options:\n")

	fs := newHelpFlagSet("help")
	fs.Bool("help", false, "Show help options")
	fs.Bool("help-all", false, "Show all help options")
	fs.Bool("help-general", false, "Show general options")
	for _, t := range AllTypes {
		fs.Bool("help-"+t.String(), false, fmt.Sprintf("Show %s options", t))
	}
	b.WriteString(fs.FlagUsagesWrapped(width))

	b.WriteString("\nApplication Options:\n")
	fs = newHelpFlagSet("application")
	for _, t := range AllTypes {
		fs.Bool(t.String(), false, typeDescriptions[t])
	}
	fs.Bool("version", false, "Print version")
	b.WriteString(fs.FlagUsagesWrapped(width))
}

func writeGroup(b *strings.Builder, group string, width int) {
	fs := newHelpFlagSet(group)
	if group == HelpGeneral {
		b.WriteString("General options\n")
		for i := range generalFlags {
			addHelpFlag(fs, &generalFlags[i])
		}
	} else {
		t, ok := typeFlagNames[group]
		if !ok {
			fmt.Fprintf(b, "Unknown help group %q\n", group)
			return
		}
		fmt.Fprintf(b, "%s options\n", strings.TrimPrefix(typeDescriptions[t], "Display "))
		for i := range typeFlags {
			if typeFlags[i].accepts(t) {
				addHelpFlag(fs, &typeFlags[i])
			}
		}
	}
	b.WriteString(fs.FlagUsagesWrapped(width))
}

func newHelpFlagSet(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SortFlags = false
	return fs
}

func addHelpFlag(fs *pflag.FlagSet, spec *flagSpec) {
	switch {
	case spec.repeatable:
		fs.StringArray(spec.name, nil, spec.usage)
	case spec.takesValue:
		fs.String(spec.name, "", spec.usage)
	default:
		fs.Bool(spec.name, false, spec.usage)
	}
}
