package quiz

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed syllabus.toml
var syllabusTOML []byte

// Syllabus is the certification outline articles are classified against.
type Syllabus struct {
	Name    string   `toml:"name"`
	Code    string   `toml:"code"`
	Domains []Domain `toml:"domains"`
}

type Domain struct {
	Title  string   `toml:"title"`
	Weight int      `toml:"weight"`
	Topics []string `toml:"topics"`
}

// LoadSyllabus parses the built-in SAA syllabus.
func LoadSyllabus() (*Syllabus, error) {
	return ParseSyllabus(syllabusTOML)
}

func ParseSyllabus(data []byte) (*Syllabus, error) {
	var s Syllabus
	if err := toml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing syllabus: %w", err)
	}
	if len(s.Domains) == 0 {
		return nil, fmt.Errorf("syllabus %q has no domains", s.Name)
	}
	return &s, nil
}

// Outline renders the syllabus as a bullet list for prompts.
func (s *Syllabus) Outline() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (%s)\n", s.Name, s.Code)
	for _, d := range s.Domains {
		fmt.Fprintf(&b, "- %s (%d%%)\n", d.Title, d.Weight)
		for _, t := range d.Topics {
			fmt.Fprintf(&b, "  - %s\n", t)
		}
	}
	return b.String()
}
