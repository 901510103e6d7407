package theme

import (
	"fmt"
	"os"

	"github.com/a-h/templ"
	"gopkg.in/yaml.v3"
)

// LoadFragments reads fragment files in order. Errors name the file and its
// position in paths.
func LoadFragments(logos Logos, paths ...string) ([]Fragment, error) {
	fragments := make([]Fragment, 0, len(paths))
	for i, p := range paths {
		f, err := LoadFragment(p, logos)
		if err != nil {
			return nil, &FragmentError{Index: i, Source: p, Err: err}
		}
		fragments = append(fragments, f)
	}
	return fragments, nil
}

// LoadFragment reads one YAML fragment file.
func LoadFragment(path string, logos Logos) (Fragment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Fragment{}, err
	}
	f, err := ParseFragment(data, logos)
	if err != nil {
		return Fragment{}, err
	}
	f.Source = path
	return f, nil
}

// ParseFragment decodes a YAML fragment. Only keys present in the document
// are marked set; an explicit null sets the key to its empty value.
//
//	logo: default              # name looked up in logos
//	project:
//	  link: https://github.com/org/repo
//	docsRepositoryBase: https://github.com/org/repo/blob/main/
//	footer:
//	  text: "plain text"       # or {html: "<b>markup</b>"}
//	head:
//	  - {name: description, content: "..."}
//	gitTimestamp: "Last updated on"   # '' or false disables
func ParseFragment(data []byte, logos Logos) (Fragment, error) {
	var f Fragment
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return f, err
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return f, nil
	}
	root := doc.Content[0]
	if isNull(root) {
		return f, nil
	}
	if root.Kind != yaml.MappingNode {
		return f, fmt.Errorf("line %d: fragment must be a mapping", root.Line)
	}

	err := eachKey(root, func(key string, val *yaml.Node) error {
		switch key {
		case "logo":
			return decodeLogo(val, logos, &f.Logo)
		case "project":
			return eachKey(val, func(k string, v *yaml.Node) error {
				if k != "link" {
					return unknownKey("project."+k, v)
				}
				return decodeString(v, &f.ProjectLink)
			})
		case KeyDocsRepositoryBase:
			return decodeString(val, &f.DocsRepositoryBase)
		case "footer":
			return eachKey(val, func(k string, v *yaml.Node) error {
				if k != "text" {
					return unknownKey("footer."+k, v)
				}
				return decodeMarkup(v, &f.FooterText)
			})
		case KeyHead:
			return decodeHead(val, &f.Head)
		case KeyGitTimestamp:
			return decodeTimestamp(val, &f.GitTimestamp)
		default:
			return unknownKey(key, val)
		}
	})
	return f, err
}

func eachKey(node *yaml.Node, fn func(key string, val *yaml.Node) error) error {
	if isNull(node) {
		return nil
	}
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: expected a mapping", node.Line)
	}
	seen := make(map[string]int, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		k := node.Content[i]
		if line, dup := seen[k.Value]; dup {
			return fmt.Errorf("%w: %q (line %d, first on line %d)", ErrDuplicateKey, k.Value, k.Line, line)
		}
		seen[k.Value] = k.Line
		if err := fn(k.Value, node.Content[i+1]); err != nil {
			return err
		}
	}
	return nil
}

func unknownKey(key string, node *yaml.Node) error {
	return fmt.Errorf("%w: %q (line %d)", ErrUnknownKey, key, node.Line)
}

func isNull(node *yaml.Node) bool {
	return node.Kind == yaml.ScalarNode && node.Tag == "!!null"
}

func decodeString(node *yaml.Node, dst *Field[string]) error {
	if isNull(node) {
		*dst = Set("")
		return nil
	}
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: expected a string", node.Line)
	}
	*dst = Set(node.Value)
	return nil
}

func decodeLogo(node *yaml.Node, logos Logos, dst *Field[templ.Component]) error {
	if isNull(node) {
		*dst = Set[templ.Component](nil)
		return nil
	}
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: logo must be a name", node.Line)
	}
	logo, ok := logos[node.Value]
	if !ok {
		return fmt.Errorf("line %d: unknown logo %q", node.Line, node.Value)
	}
	*dst = Set(logo)
	return nil
}

func decodeMarkup(node *yaml.Node, dst *Field[Markup]) error {
	switch {
	case isNull(node):
		*dst = Set(Markup{})
	case node.Kind == yaml.ScalarNode:
		*dst = Set(Text(node.Value))
	case node.Kind == yaml.MappingNode:
		var m Markup
		err := eachKey(node, func(k string, v *yaml.Node) error {
			if v.Kind != yaml.ScalarNode {
				return fmt.Errorf("line %d: footer.text.%s must be a string", v.Line, k)
			}
			switch k {
			case "html":
				m.HTML = v.Value
			case "text":
				m.Text = v.Value
			default:
				return unknownKey("footer.text."+k, v)
			}
			return nil
		})
		if err != nil {
			return err
		}
		if m.HTML != "" && m.Text != "" {
			return fmt.Errorf("line %d: footer.text sets both html and text", node.Line)
		}
		*dst = Set(m)
	default:
		return fmt.Errorf("line %d: footer.text must be a string or {html: ...}", node.Line)
	}
	return nil
}

func decodeHead(node *yaml.Node, dst *Field[[]HeadTag]) error {
	if isNull(node) {
		*dst = Set([]HeadTag{})
		return nil
	}
	if node.Kind != yaml.SequenceNode {
		return fmt.Errorf("line %d: head must be a list", node.Line)
	}
	tags := make([]HeadTag, 0, len(node.Content))
	for _, item := range node.Content {
		var tag HeadTag
		err := eachKey(item, func(k string, v *yaml.Node) error {
			switch k {
			case "name":
				tag.Name = v.Value
			case "content":
				tag.Content = v.Value
			default:
				return unknownKey("head[]."+k, v)
			}
			return nil
		})
		if err != nil {
			return err
		}
		if tag.Name == "" {
			return fmt.Errorf("line %d: head entry without name", item.Line)
		}
		tags = append(tags, tag)
	}
	*dst = Set(tags)
	return nil
}

func decodeTimestamp(node *yaml.Node, dst *Field[GitTimestamp]) error {
	switch {
	case isNull(node):
		*dst = Set(TimestampDisabled())
	case node.Kind == yaml.ScalarNode && node.Tag == "!!bool":
		var on bool
		if err := node.Decode(&on); err != nil {
			return err
		}
		if on {
			*dst = Set(GitTimestamp{})
		} else {
			*dst = Set(TimestampDisabled())
		}
	case node.Kind == yaml.ScalarNode:
		*dst = Set(TimestampLabel(node.Value))
	default:
		return fmt.Errorf("line %d: gitTimestamp must be a string or boolean", node.Line)
	}
	return nil
}
