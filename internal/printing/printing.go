// Package printing implements a [walker.Visitor] that renders every visited
// entry of a walk as a line of text, keyed by its sequence number, depth,
// frame visit count, type, permission bits, size and full path.
package printing

import (
	"fmt"
	"io"
	"strconv"

	"github.com/desertwitch/treewalk/internal/schema"
	"github.com/desertwitch/treewalk/internal/walker"
	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
	"gopkg.in/yaml.v3"
)

// Record is the rendered information about a single visited entry.
type Record struct {
	Seq        int    `yaml:"seq"`
	Depth      int    `yaml:"depth"`
	VisitCount int    `yaml:"visitCount"`
	Type       string `yaml:"type"`
	Perms      uint32 `yaml:"perms"`
	Size       int64  `yaml:"size"`
	Path       string `yaml:"path"`
}

// Options are the options of a [Printer].
type Options struct {
	// HumanSizes renders sizes in human-readable units instead of bytes.
	HumanSizes bool

	// Keep retains all [Record] in memory, for later retrieval with
	// [Printer.Records] or [Printer.WriteYAML].
	Keep bool

	// Quiet suppresses the rendering of lines, only updating the counters.
	Quiet bool
}

type typeTotals struct {
	entries int
	bytes   int64
}

// Printer is the principal implementation of the printing visitor.
type Printer struct {
	out     io.Writer
	opts    Options
	path    Path
	count   int
	records []Record
	totals  map[schema.EntryType]*typeTotals
}

// NewPrinter returns a pointer to a new [Printer] writing to out.
func NewPrinter(out io.Writer, opts Options) *Printer {
	return &Printer{
		out:    out,
		opts:   opts,
		totals: make(map[schema.EntryType]*typeTotals),
	}
}

// Visit implements [walker.Visitor].
func (p *Printer) Visit(kind walker.Transition, frame walker.Frame, entry *walker.Entry) error {
	switch kind {
	case walker.DirStart:
		p.path.Enter(frame.Name)

	case walker.DirEntry:
		p.count++

		rec := Record{
			Seq:        p.count,
			Depth:      frame.Depth,
			VisitCount: frame.VisitCount,
			Type:       string(entry.Metadata.Type.Label()),
			Perms:      entry.Metadata.Perms,
			Size:       entry.Metadata.Size,
			Path:       p.path.String() + entry.Name,
		}

		p.addTotals(entry.Metadata)

		if p.opts.Keep {
			p.records = append(p.records, rec)
		}

		if !p.opts.Quiet {
			if _, err := io.WriteString(p.out, p.formatRecord(rec)); err != nil {
				return fmt.Errorf("(printing) failed to write: %w", err)
			}
		}

	case walker.DirExit:
		p.path.Exit()
	}

	return nil
}

func (p *Printer) formatRecord(rec Record) string {
	size := strconv.FormatInt(rec.Size, 10)
	if p.opts.HumanSizes && rec.Size >= 0 {
		size = humanize.IBytes(uint64(rec.Size))
	}

	return fmt.Sprintf("%8d %3d %6d %s 0%o %10s %s\n",
		rec.Seq, rec.Depth, rec.VisitCount, rec.Type, rec.Perms, size, rec.Path)
}

func (p *Printer) addTotals(metadata *schema.Metadata) {
	totals, ok := p.totals[metadata.Type]
	if !ok {
		totals = &typeTotals{}
		p.totals[metadata.Type] = totals
	}

	totals.entries++
	totals.bytes += metadata.Size
}

// Count returns the amount of entries that were visited so far.
func (p *Printer) Count() int {
	return p.count
}

// Path returns the currently accumulated path.
func (p *Printer) Path() string {
	return p.path.String()
}

// Records returns the retained [Record], if [Options.Keep] was set.
func (p *Printer) Records() []Record {
	return p.records
}

// WriteYAML writes the retained [Record] as a YAML document.
func (p *Printer) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2) //nolint:mnd

	if err := enc.Encode(p.records); err != nil {
		return fmt.Errorf("(printing) failed to encode yaml: %w", err)
	}

	if err := enc.Close(); err != nil {
		return fmt.Errorf("(printing) failed to close yaml encoder: %w", err)
	}

	return nil
}

// WriteSummary renders a table with the amount of entries and bytes per
// [schema.EntryType] that were visited so far.
func (p *Printer) WriteSummary(w io.Writer) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Type", "Entries", "Size"})

	var total typeTotals

	for typ := schema.TypeUnknown; typ <= schema.TypeSocket; typ++ {
		totals, ok := p.totals[typ]
		if !ok {
			continue
		}

		total.entries += totals.entries
		total.bytes += totals.bytes

		table.Append([]string{
			typ.String(),
			strconv.Itoa(totals.entries),
			humanize.IBytes(uint64(max(totals.bytes, 0))),
		})
	}

	table.SetFooter([]string{
		"Total",
		strconv.Itoa(total.entries),
		humanize.IBytes(uint64(max(total.bytes, 0))),
	})

	table.Render()
}
