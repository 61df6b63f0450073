package report

import (
	"context"
	"fmt"

	"fjacquet/biztrack/internal/ledgererror"
	"fjacquet/biztrack/internal/logging"
	"fjacquet/biztrack/internal/models"

	"golang.org/x/sync/errgroup"
)

// Artifact is a rendered export file that has not been delivered yet.
type Artifact struct {
	Kind Kind
	Name string
	Data []byte
}

// Deliverer hands a rendered artifact to its destination and returns where it ended up.
type Deliverer interface {
	Deliver(ctx context.Context, name string, data []byte) (string, error)
}

// Exporter renders transactions and passes the artifacts to a Deliverer.
type Exporter struct {
	logger    logging.Logger
	delimiter rune
	deliverer Deliverer
}

// NewExporter creates an Exporter. delimiter applies to CSV output only.
func NewExporter(logger logging.Logger, delimiter rune, deliverer Deliverer) *Exporter {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	return &Exporter{
		logger:    logger.WithField(logging.FieldComponent, "exporter"),
		delimiter: delimiter,
		deliverer: deliverer,
	}
}

// Render produces one artifact per kind. Kinds are rendered concurrently from the same
// read-only snapshot; the result keeps the order of kinds. An empty txs is rejected with
// ErrNothingToExport before anything is rendered.
func (e *Exporter) Render(ctx context.Context, kinds []Kind, txs []models.Transaction, meta Meta) ([]Artifact, error) {
	if len(txs) == 0 {
		return nil, ledgererror.ErrNothingToExport
	}
	if len(kinds) == 0 {
		return nil, &ledgererror.ValidationError{Field: "kind", Reason: "at least one kind is required"}
	}

	artifacts := make([]Artifact, len(kinds))
	g, ctx := errgroup.WithContext(ctx)
	for i, kind := range kinds {
		i, kind := i, kind
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			data, err := e.render(kind, txs, meta)
			if err != nil {
				return &ledgererror.ExportError{Kind: string(kind), Err: err}
			}
			artifacts[i] = Artifact{Kind: kind, Name: FileName(kind, meta.GeneratedAt), Data: data}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return artifacts, nil
}

// Export renders and delivers every kind, returning the delivered locations in kind order.
func (e *Exporter) Export(ctx context.Context, kinds []Kind, txs []models.Transaction, meta Meta) ([]string, error) {
	if e.deliverer == nil {
		return nil, fmt.Errorf("exporter has no deliverer configured")
	}

	artifacts, err := e.Render(ctx, kinds, txs, meta)
	if err != nil {
		e.logger.WithError(err).Warn("Export rejected",
			logging.F(logging.FieldCount, len(txs)),
			logging.F(logging.FieldRange, meta.Range.String()))
		return nil, err
	}

	locations := make([]string, 0, len(artifacts))
	for _, a := range artifacts {
		location, err := e.deliverer.Deliver(ctx, a.Name, a.Data)
		if err != nil {
			return locations, &ledgererror.ExportError{Kind: string(a.Kind), Path: a.Name, Err: err}
		}
		e.logger.Info("Exported report",
			logging.F(logging.FieldKind, string(a.Kind)),
			logging.F(logging.FieldOutputFile, location),
			logging.F(logging.FieldCount, len(txs)),
			logging.F(logging.FieldRange, meta.Range.String()))
		locations = append(locations, location)
	}
	return locations, nil
}

func (e *Exporter) render(kind Kind, txs []models.Transaction, meta Meta) ([]byte, error) {
	switch kind {
	case KindCSV:
		return RenderCSV(txs, meta, e.delimiter)
	case KindXLSX:
		return RenderXLSX(txs, meta)
	case KindPDF:
		return RenderPDF(txs, meta)
	default:
		return nil, fmt.Errorf("unsupported export kind: %s", kind)
	}
}
