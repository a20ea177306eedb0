package pokedex

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"log/slog"
)

//go:embed data/pokemon.json
var bundled []byte

// Loader builds a Database.
type Loader interface {
	Load(ctx context.Context) (*Database, error)
}

// LoaderFunc adapts a function to Loader.
type LoaderFunc func(ctx context.Context) (*Database, error)

func (f LoaderFunc) Load(ctx context.Context) (*Database, error) { return f(ctx) }

// DecodeTuples parses a JSON array of tuples and validates every record.
func DecodeTuples(data []byte) ([]Pokemon, error) {
	var tuples []Tuple
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&tuples); err != nil {
		return nil, fmt.Errorf("decoding tuples: %w", err)
	}
	records := make([]Pokemon, 0, len(tuples))
	for _, t := range tuples {
		p := Pokemon(t)
		if err := p.Validate(); err != nil {
			return nil, err
		}
		records = append(records, p)
	}
	return records, nil
}

// EncodeTuples is the inverse of DecodeTuples.
func EncodeTuples(records []Pokemon) ([]byte, error) {
	tuples := make([]Tuple, len(records))
	for i, p := range records {
		tuples[i] = Tuple(p)
	}
	return json.Marshal(tuples)
}

// Embedded loads the dataset bundled into the binary.
func Embedded(logger *slog.Logger) Loader {
	return LoaderFunc(func(_ context.Context) (*Database, error) {
		records, err := DecodeTuples(bundled)
		if err != nil {
			return nil, fmt.Errorf("loading bundled pokedex: %w", err)
		}
		return build(logger, "embedded", records), nil
	})
}

// Fallback tries each loader in order. When all fail it logs and returns an
// empty database so the service can still start.
func Fallback(logger *slog.Logger, loaders ...Loader) Loader {
	return LoaderFunc(func(ctx context.Context) (*Database, error) {
		for i, l := range loaders {
			db, err := l.Load(ctx)
			if err == nil {
				return db, nil
			}
			logger.Warn("pokedex loader failed", "index", i, "error", err)
		}
		logger.Error("all pokedex loaders failed, serving empty database")
		return Empty(), nil
	})
}

func build(logger *slog.Logger, source string, records []Pokemon) *Database {
	db, skipped := NewDatabase(records)
	for _, p := range skipped {
		logger.Warn("skipping pokemon record", "source", source, "name", p.Name, "dex", p.DexNumber)
	}
	logger.Info("pokedex loaded", "source", source, "count", db.Len())
	return db
}
