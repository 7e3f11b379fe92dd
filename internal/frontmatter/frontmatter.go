// Package frontmatter splits markdown files into a metadata block and a body.
//
// Two modes are supported. [Lenient] splits on the first two "---" markers anywhere in the
// text, tolerates malformed blocks by treating the whole file as body, and decodes the block
// as YAML. [Strict] requires delimiter lines and also accepts TOML ("+++") and JSON (";;;")
// blocks.
//
// YAML is decoded through a node walk that only admits the core schema tags, so a file can
// never produce anything other than maps, sequences and scalars.
package frontmatter

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/adrg/frontmatter"
	"gopkg.in/yaml.v3"
)

// Mode selects how front matter is located.
type Mode string

const (
	Lenient Mode = "lenient"
	Strict  Mode = "strict"
)

// Delimiter opens and closes a YAML front matter block.
const Delimiter = "---"

var (
	ErrUnsafeTag   = errors.New("front matter uses a non-plain YAML tag")
	ErrNotMapping  = errors.New("front matter is not a key/value mapping")
	ErrUnknownMode = errors.New("unknown front matter mode")
)

// safeTags is the YAML core schema plus merge keys.
var safeTags = map[string]bool{
	"!!str":       true,
	"!!int":       true,
	"!!float":     true,
	"!!bool":      true,
	"!!null":      true,
	"!!seq":       true,
	"!!map":       true,
	"!!timestamp": true,
	"!!binary":    true,
	"!!merge":     true,
}

// Document is a parsed markdown file.
type Document struct {
	Metadata       Metadata
	Body           string
	HasFrontMatter bool
}

// Parse splits content according to mode. An empty mode means [Lenient].
func Parse(content string, mode Mode) (*Document, error) {
	switch mode {
	case Lenient, "":
		return ParseLenient(content)
	case Strict:
		return ParseStrict(content)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}
}

// ParseLenient splits content on "---" into at most three parts: an empty preamble, the
// metadata block and the body. Content that does not start with the delimiter, or that
// yields fewer than three parts, is returned whole as the body with empty metadata.
func ParseLenient(content string) (*Document, error) {
	doc := &Document{Metadata: Metadata{}, Body: content}
	if !strings.HasPrefix(content, Delimiter) {
		return doc, nil
	}

	parts := strings.SplitN(content, Delimiter, 3)
	if len(parts) < 3 {
		return doc, nil
	}

	meta, err := DecodeYAML([]byte(parts[1]))
	if err != nil {
		return nil, err
	}

	doc.Metadata = meta
	doc.Body = strings.TrimSpace(parts[2])
	doc.HasFrontMatter = true
	return doc, nil
}

// ParseStrict reads a line-delimited YAML ("---"), TOML ("+++") or JSON (";;;") block from
// the start of content. Without a block the whole content is the body.
func ParseStrict(content string) (*Document, error) {
	doc := &Document{Metadata: Metadata{}}
	var decodeErr error

	decode := func(decoder func([]byte) (Metadata, error)) frontmatter.UnmarshalFunc {
		return func(data []byte, v any) error {
			meta, err := decoder(data)
			if err != nil {
				decodeErr = err
				return err
			}
			*(v.(*Metadata)) = meta
			doc.HasFrontMatter = true
			return nil
		}
	}

	formats := []*frontmatter.Format{
		frontmatter.NewFormat(Delimiter, Delimiter, decode(DecodeYAML)),
		frontmatter.NewFormat("+++", "+++", decode(DecodeTOML)),
		frontmatter.NewFormat(";;;", ";;;", decode(DecodeJSON)),
	}

	var meta Metadata
	body, err := frontmatter.Parse(strings.NewReader(content), &meta, formats...)
	if decodeErr != nil {
		return nil, decodeErr
	}
	if err != nil {
		return nil, fmt.Errorf("parse front matter: %w", err)
	}

	if !doc.HasFrontMatter {
		doc.Body = content
		return doc, nil
	}

	if meta != nil {
		doc.Metadata = meta
	}
	doc.Body = strings.TrimSpace(string(body))
	return doc, nil
}

// DecodeYAML decodes a YAML mapping into plain Go values.
//
// Empty or null input yields empty metadata. Any tag outside the core schema fails with
// [ErrUnsafeTag]; a document that is not a mapping fails with [ErrNotMapping].
func DecodeYAML(raw []byte) (Metadata, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(raw, &root); err != nil {
		return nil, fmt.Errorf("parse front matter: %w", err)
	}

	if root.Kind == 0 || len(root.Content) == 0 {
		return Metadata{}, nil
	}

	node := root.Content[0]
	if err := checkTags(node); err != nil {
		return nil, err
	}

	switch {
	case node.Kind == yaml.ScalarNode && node.ShortTag() == "!!null":
		return Metadata{}, nil
	case node.Kind != yaml.MappingNode:
		return nil, fmt.Errorf("%w: got %s", ErrNotMapping, node.ShortTag())
	}

	meta := Metadata{}
	if err := node.Decode(&meta); err != nil {
		return nil, fmt.Errorf("decode front matter: %w", err)
	}
	return meta, nil
}

// DecodeTOML decodes a TOML table into plain Go values.
func DecodeTOML(raw []byte) (Metadata, error) {
	meta := Metadata{}
	if err := toml.Unmarshal(raw, &meta); err != nil {
		return nil, fmt.Errorf("parse front matter: %w", err)
	}
	return meta, nil
}

// DecodeJSON decodes a JSON object into plain Go values.
func DecodeJSON(raw []byte) (Metadata, error) {
	meta := Metadata{}
	if len(bytes.TrimSpace(raw)) == 0 {
		return meta, nil
	}
	if err := json.Unmarshal(raw, &meta); err != nil {
		return nil, fmt.Errorf("parse front matter: %w", err)
	}
	return meta, nil
}

func checkTags(node *yaml.Node) error {
	if node.Kind == yaml.AliasNode {
		return nil
	}
	if node.Kind != yaml.DocumentNode {
		if tag := node.ShortTag(); !safeTags[tag] {
			return fmt.Errorf("%w: %s (line %d)", ErrUnsafeTag, tag, node.Line)
		}
	}
	for _, child := range node.Content {
		if err := checkTags(child); err != nil {
			return err
		}
	}
	return nil
}
