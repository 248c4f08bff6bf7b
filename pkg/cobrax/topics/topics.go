// Package topics adds file-backed help topics to a Cobra application.
// Topics are markdown or plain-text files in an fs.FS; `help <name>`
// shows a topic when no command matches the name.
package topics

import (
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/spf13/cobra"
)

// Topic is one loadable help page.
type Topic struct {
	Name    string
	Format  string // file extension, drives rendering
	Content string
}

// Manager holds the loaded topics and the renderer used to display them.
type Manager struct {
	topics       map[string]*Topic
	renderer     Renderer
	originalHelp func(*cobra.Command, []string)
}

// Load reads every .md and .txt file under root in fsys. The topic name
// is the filename without extension.
func Load(fsys fs.FS, root string) (*Manager, error) {
	m := &Manager{topics: make(map[string]*Topic), renderer: NewGlamourRenderer()}

	err := fs.WalkDir(fsys, root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ext := path.Ext(p)
		if ext != ".md" && ext != ".txt" {
			return nil
		}
		content, err := fs.ReadFile(fsys, p)
		if err != nil {
			return err
		}
		name := strings.TrimSuffix(path.Base(p), ext)
		m.topics[name] = &Topic{Name: name, Format: ext, Content: string(content)}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load help topics: %w", err)
	}
	return m, nil
}

// Get returns a topic by name.
func (m *Manager) Get(name string) (*Topic, bool) {
	t, ok := m.topics[strings.TrimPrefix(name, "--")]
	return t, ok
}

// Names returns all topic names, sorted.
func (m *Manager) Names() []string {
	names := make([]string, 0, len(m.topics))
	for name := range m.topics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Install replaces root's help command with one that also resolves
// topics. `help topics` lists what is available.
func (m *Manager) Install(root *cobra.Command) {
	m.originalHelp = root.HelpFunc()

	helpCmd := &cobra.Command{
		Use:   "help [command or topic]",
		Short: "Help about any command or topic",
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			completions := []string{"topics"}
			for _, c := range root.Commands() {
				if !c.Hidden {
					completions = append(completions, c.Name())
				}
			}
			completions = append(completions, m.Names()...)
			return completions, cobra.ShellCompDirectiveNoFileComp
		},
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) == 0 {
				m.originalHelp(root, nil)
				return
			}
			if args[0] == "topics" {
				m.printIndex(cmd, root.Name())
				return
			}
			if t, ok := m.Get(args[0]); ok {
				cmd.Print(m.renderer.Render(t.Content, t.Format))
				return
			}
			m.originalHelp(root, args)
		},
	}

	for _, c := range root.Commands() {
		if c.Name() == "help" {
			root.RemoveCommand(c)
			break
		}
	}
	root.AddCommand(helpCmd)
}

func (m *Manager) printIndex(cmd *cobra.Command, appName string) {
	names := m.Names()
	if len(names) == 0 {
		cmd.Println("No help topics available.")
		return
	}
	cmd.Println("Available help topics:")
	for _, name := range names {
		cmd.Printf("  %s\n", name)
	}
	cmd.Printf("\nUse '%s help <topic>' to read a topic.\n", appName)
}
