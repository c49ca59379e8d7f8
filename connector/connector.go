package connector

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/sirupsen/logrus"

	"github.com/cabify/techdocs/core"
	"github.com/cabify/techdocs/core/convert"
	"github.com/cabify/techdocs/core/normalize"
	"github.com/cabify/techdocs/core/split"
)

// Source is the document-source tag stamped on ingested documents.
const Source = "techdocs"

// Config holds the connector's immutable settings.
type Config struct {
	Bucket      string
	Prefix      string
	BatchSize   int
	DocsBaseURL string
	Mode        split.Mode
}

// Connector converts TechDocs pages from a blob source into section
// documents. A Connector is single-pass and synchronous; run one per
// sync, concurrently if needed.
type Connector struct {
	source    core.BlobSource
	cfg       Config
	converter *convert.Converter
	generic   *normalize.GenericNormalizer
	splitter  *split.Splitter
	log       *logrus.Entry
}

// New creates a Connector reading from the given blob source.
func New(source core.BlobSource, cfg Config) *Connector {
	if cfg.DocsBaseURL == "" {
		cfg.DocsBaseURL = DefaultDocsBaseURL
	}
	return &Connector{
		source:    source,
		cfg:       cfg,
		converter: convert.New(),
		generic:   normalize.New(),
		splitter:  split.New(cfg.Mode),
		log:       logrus.WithField("component", "connector"),
	}
}

// Sync lists the bucket, converts every documentation page modified
// within [start, end] (zero times disable the bound), and emits
// documents in batches. A failing page is logged and skipped; a failing
// emit aborts the sync.
func (c *Connector) Sync(ctx context.Context, start, end time.Time, emit func([]core.Document) error) error {
	objects, err := c.source.List(ctx, c.cfg.Prefix)
	if err != nil {
		return fmt.Errorf("listing objects: %w", err)
	}

	batch := newBatcher(c.cfg.BatchSize)
	for _, obj := range objects {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !IsDocPage(obj.Key) || batch.Seen(obj.Key) {
			continue
		}
		if !start.IsZero() && obj.LastModified.Before(start) {
			continue
		}
		if !end.IsZero() && obj.LastModified.After(end) {
			continue
		}

		c.log.WithField("key", obj.Key).Info("processing page")

		doc, err := c.buildDocument(ctx, obj)
		if err != nil {
			c.log.WithError(err).WithField("key", obj.Key).Error("skipping page")
			continue
		}

		if full := batch.Add(obj.Key, *doc); full != nil {
			if err := emit(full); err != nil {
				return fmt.Errorf("emitting batch: %w", err)
			}
		}
	}

	if rest := batch.Flush(); len(rest) > 0 {
		if err := emit(rest); err != nil {
			return fmt.Errorf("emitting final batch: %w", err)
		}
	}
	return nil
}

// buildDocument converts one page into a Document with anchored sections.
func (c *Connector) buildDocument(ctx context.Context, obj core.ObjectInfo) (*core.Document, error) {
	raw, err := c.source.Download(ctx, obj.Key)
	if err != nil {
		return nil, err
	}
	htmlContent := string(raw)
	pageURL := PageURL(c.cfg.DocsBaseURL, obj.Key)

	res := c.converter.ConvertResult(htmlContent)
	markdown := res.Markdown
	if res.Outcome == convert.OutcomeNoContent {
		// Not a TechDocs-shaped page: degrade to generic conversion.
		c.log.WithField("key", obj.Key).Warn("no content container, using generic conversion")
		markdown, err = c.generic.Normalize(htmlContent)
		if err != nil {
			return nil, fmt.Errorf("generic conversion: %w", err)
		}
	}

	sections := c.splitter.SplitDocument(markdown, htmlContent)
	textSections := make([]core.TextSection, 0, len(sections))
	for _, s := range sections {
		textSections = append(textSections, core.TextSection{
			Link: split.SectionURL(pageURL, s.AnchorID),
			Text: s.Content,
		})
	}

	return &core.Document{
		ID:                 fmt.Sprintf("%s:%s:%s", Source, c.cfg.Bucket, obj.Key),
		Sections:           textSections,
		Source:             Source,
		SemanticIdentifier: semanticIdentifier(htmlContent, obj.Key),
		UpdatedAt:          obj.LastModified,
		Metadata: map[string]string{
			"original_path": obj.Key,
			"doc_path":      DocPath(obj.Key),
		},
	}, nil
}

// semanticIdentifier names the document: the page <title> when present,
// else the doc path, else a root marker.
func semanticIdentifier(htmlContent, key string) string {
	if doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent)); err == nil {
		if title := strings.TrimSpace(doc.Find("title").First().Text()); title != "" {
			return title
		}
	}
	if path := DocPath(key); path != "" {
		return path
	}
	return "Techdocs Root"
}
