package rdf

import (
	"bytes"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strings"
)

// localNameRe restricts prefixed names to the unambiguous subset of Turtle's
// PN_LOCAL grammar. Anything else falls back to an angle-bracketed IRI.
var localNameRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_-]*$`)

// serializer carries the per-serialization state: which prefixes were
// actually used and which blank nodes can be inlined.
type serializer struct {
	graph    *Graph
	prefixes []Prefix
	used     map[string]bool
	inline   map[string]bool
}

// Serialize writes the graph as Turtle. Output is deterministic: subjects,
// predicates, and objects are sorted, and only prefixes that appear in the
// body are declared. Blank nodes referenced exactly once are inlined as
// bracketed property lists.
func (g *Graph) Serialize(w io.Writer) error {
	s := &serializer{
		graph:    g,
		prefixes: g.sortedPrefixes(),
		used:     make(map[string]bool),
		inline:   make(map[string]bool),
	}

	refs := make(map[string]int)
	for _, t := range g.triples {
		if t.Object.Kind == TermBlank {
			refs[t.Object.Value]++
		}
	}
	for label, n := range refs {
		if n == 1 {
			s.inline[label] = true
		}
	}

	var body bytes.Buffer
	if err := s.writeBody(&body); err != nil {
		return err
	}

	for _, p := range s.prefixes {
		if !s.used[p.Name] {
			continue
		}
		if _, err := fmt.Fprintf(w, "@prefix %s: <%s> .\n", p.Name, p.IRI); err != nil {
			return err
		}
	}
	if _, err := io.WriteString(w, "\n"); err != nil {
		return err
	}
	_, err := w.Write(body.Bytes())
	return err
}

func (s *serializer) writeBody(w io.Writer) error {
	bySubject := make(map[string][]Triple)
	var order []Term
	seen := make(map[string]struct{})
	for _, t := range s.graph.triples {
		k := t.Subject.key()
		if _, ok := seen[k]; !ok {
			seen[k] = struct{}{}
			order = append(order, t.Subject)
		}
		bySubject[k] = append(bySubject[k], t)
	}

	var subjects []Term
	for _, subj := range order {
		if subj.Kind == TermBlank && s.inline[subj.Value] {
			continue
		}
		subjects = append(subjects, subj)
	}
	sort.Slice(subjects, func(i, j int) bool {
		return s.renderTerm(subjects[i]) < s.renderTerm(subjects[j])
	})

	for i, subj := range subjects {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		props := s.renderProps(bySubject[subj.key()], bySubject, " ;\n    ")
		if _, err := fmt.Fprintf(w, "%s %s .\n", s.renderTerm(subj), props); err != nil {
			return err
		}
	}
	return nil
}

// renderProps renders the predicate-object list of one subject, with
// predicates sorted (rdf:type first) and objects sorted.
func (s *serializer) renderProps(triples []Triple, bySubject map[string][]Triple, sep string) string {
	byPredicate := make(map[string][]Term)
	predicates := make(map[string]Term)
	for _, t := range triples {
		k := t.Predicate.key()
		byPredicate[k] = append(byPredicate[k], t.Object)
		predicates[k] = t.Predicate
	}

	keys := make([]string, 0, len(predicates))
	for k := range predicates {
		keys = append(keys, k)
	}
	typeKey := IRI("http://www.w3.org/1999/02/22-rdf-syntax-ns#type").key()
	sort.Slice(keys, func(i, j int) bool {
		if (keys[i] == typeKey) != (keys[j] == typeKey) {
			return keys[i] == typeKey
		}
		return s.renderTerm(predicates[keys[i]]) < s.renderTerm(predicates[keys[j]])
	})

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		pred := s.renderPredicate(predicates[k])
		objects := byPredicate[k]
		rendered := make([]string, len(objects))
		for i, o := range objects {
			rendered[i] = s.renderObject(o, bySubject)
		}
		sort.Strings(rendered)
		parts = append(parts, pred+" "+strings.Join(rendered, ", "))
	}
	return strings.Join(parts, sep)
}

func (s *serializer) renderObject(t Term, bySubject map[string][]Triple) string {
	if t.Kind == TermBlank && s.inline[t.Value] {
		props := s.renderProps(bySubject[t.key()], bySubject, " ; ")
		if props == "" {
			return "[ ]"
		}
		return "[ " + props + " ]"
	}
	return s.renderTerm(t)
}

func (s *serializer) renderPredicate(t Term) string {
	if t.Kind == TermIRI && t.Value == "http://www.w3.org/1999/02/22-rdf-syntax-ns#type" {
		return "a"
	}
	return s.renderTerm(t)
}

func (s *serializer) renderTerm(t Term) string {
	switch t.Kind {
	case TermIRI:
		return s.renderIRI(t.Value)
	case TermBlank:
		return "_:" + t.Value
	default:
		return s.renderLiteral(t)
	}
}

func (s *serializer) renderIRI(iri string) string {
	best := -1
	for i, p := range s.prefixes {
		if !strings.HasPrefix(iri, p.IRI) {
			continue
		}
		local := iri[len(p.IRI):]
		if !localNameRe.MatchString(local) {
			continue
		}
		if best < 0 || len(p.IRI) > len(s.prefixes[best].IRI) {
			best = i
		}
	}
	if best >= 0 {
		p := s.prefixes[best]
		s.used[p.Name] = true
		return p.Name + ":" + iri[len(p.IRI):]
	}
	return "<" + iri + ">"
}

func (s *serializer) renderLiteral(t Term) string {
	out := `"` + escapeLiteral(t.Value) + `"`
	if t.Lang != "" {
		return out + "@" + t.Lang
	}
	if t.Datatype != "" {
		return out + "^^" + s.renderIRI(t.Datatype)
	}
	return out
}

var literalEscaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	"\n", `\n`,
	"\r", `\r`,
	"\t", `\t`,
)

func escapeLiteral(v string) string {
	return literalEscaper.Replace(v)
}
