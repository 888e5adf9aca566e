package install

import (
	"fmt"
	"strconv"
	"strings"
)

// Messages are the user-facing texts for the installer's dialogs
type Messages struct {
	MultipleFiles   string                      // More than one mod file in a root
	MultipleRoots   func(roots []string) string // More than one candidate root
	LargeModWarning string                      // File or root count over the limit
}

const defaultLargeModWarning = "The mod you're trying to install includes a large number of available files and no installer files!\n\n" +
	"You will be prompted for which files you want to install but be aware that this mod archive might contain a lot of files and folders to choose from. " +
	"You may want to check the mod's description in case there are any special installation instructions you should know about.\n\n" +
	"There's unfortunately nothing the installer can do about this as this can only be resolved by the mod author."

const defaultMultipleFiles = "The mod package or paths you are installing contain multiple mod files!\n\n" +
	"You can individually disable any mod files below to skip installing them or choose Install Selected to continue with all the selected files."

func defaultMultipleRoots(roots []string) string {
	return fmt.Sprintf("The mod package you are installing appears to contain multiple nested mod packages! We found %d mod locations in the archive.\n\n"+
		"You can either cancel now and verify the mod is packaged correctly, or attempt to install all of them together. This will probably cause conflicts!\n\n"+
		"Alternatively, you can select only the paths you want to install from below and choose Install Selected to install mod files from only those folders.", len(roots))
}

// DefaultMessages returns the built-in dialog texts
func DefaultMessages() Messages {
	return Messages{
		MultipleFiles:   defaultMultipleFiles,
		MultipleRoots:   defaultMultipleRoots,
		LargeModWarning: defaultLargeModWarning,
	}
}

// withDefaults fills empty fields from DefaultMessages
func (m Messages) withDefaults() Messages {
	def := DefaultMessages()
	if m.MultipleFiles == "" {
		m.MultipleFiles = def.MultipleFiles
	}
	if m.MultipleRoots == nil {
		m.MultipleRoots = def.MultipleRoots
	}
	if m.LargeModWarning == "" {
		m.LargeModWarning = def.LargeModWarning
	}
	return m
}

// RootsTemplate renders a multiple-roots message from a template.
// {count} expands to the number of roots and {roots} to a newline-separated list.
func RootsTemplate(tmpl string) func([]string) string {
	return func(roots []string) string {
		r := strings.NewReplacer(
			"{count}", strconv.Itoa(len(roots)),
			"{roots}", strings.Join(roots, "\n"),
		)
		return r.Replace(tmpl)
	}
}
