package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"pcrsim/core/dna"
)

// record is one template sequence ready for simulation.
type record struct {
	ID  string
	Seq string
}

// loadTemplates resolves the --template argument: a FASTA path (one record
// per entry) or a raw sequence literal.
func loadTemplates(arg string) ([]record, error) {
	if st, err := os.Stat(arg); err == nil && !st.IsDir() {
		f, err := os.Open(arg)
		if err != nil {
			return nil, err
		}
		defer func() { _ = f.Close() }()
		return parseFASTA(f)
	}
	seq, err := dna.Validate(arg)
	if err != nil {
		return nil, fmt.Errorf("template literal: %w", err)
	}
	return []record{{ID: "template", Seq: seq}}, nil
}

// parseFASTA reads one or more records. A headerless file is treated as a
// single unnamed sequence.
func parseFASTA(r io.Reader) ([]record, error) {
	var (
		out []record
		id  string
		seq strings.Builder
	)
	flush := func() error {
		if seq.Len() == 0 {
			if id != "" {
				return fmt.Errorf("fasta: record %q has no sequence", id)
			}
			return nil
		}
		v, err := dna.Validate(seq.String())
		if err != nil {
			name := id
			if name == "" {
				name = "template"
			}
			return fmt.Errorf("fasta: record %q: %w", name, err)
		}
		if id == "" {
			id = "template"
		}
		out = append(out, record{ID: id, Seq: v})
		id = ""
		seq.Reset()
		return nil
	}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 64*1024*1024)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, ">") {
			if err := flush(); err != nil {
				return nil, err
			}
			id = ""
			if fields := strings.Fields(line[1:]); len(fields) > 0 {
				id = fields[0]
			}
			continue
		}
		seq.WriteString(line)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if err := flush(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("fasta: no sequences found")
	}
	return out, nil
}
