// Package catalog builds filter trees from YAML schema files and applies them
// to YAML datasets.
package catalog

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

// Catalog is a dataset together with the filters declared for it.
type Catalog struct {
	Records []Record
	Schema  Schema
}

// Load reads the dataset and the schema concurrently.
func Load(ctx context.Context, dataPath, schemaPath string) (*Catalog, error) {
	var c Catalog

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		records, err := readFile(ctx, dataPath, DecodeRecords)
		if err != nil {
			return fmt.Errorf("loading data: %w", err)
		}

		c.Records = records
		return nil
	})

	g.Go(func() error {
		schema, err := readFile(ctx, schemaPath, DecodeSchema)
		if err != nil {
			return fmt.Errorf("loading filters: %w", err)
		}

		c.Schema = schema
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &c, nil
}

func readFile[T any](ctx context.Context, path string, decode func(io.Reader) (T, error)) (T, error) {
	var zero T

	if err := ctx.Err(); err != nil {
		return zero, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return zero, err
	}

	v, err := decode(bytes.NewReader(data))
	if err != nil {
		return zero, fmt.Errorf("%s: %w", path, err)
	}

	return v, nil
}

// DecodeRecords decodes a YAML (or JSON) list of records. An empty document
// is an empty dataset.
func DecodeRecords(r io.Reader) ([]Record, error) {
	var records []Record
	if err := yaml.NewDecoder(r).Decode(&records); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decoding records: %w", err)
	}

	return records, nil
}

// DecodeSchema decodes and validates a schema, rejecting unknown keys.
func DecodeSchema(r io.Reader) (Schema, error) {
	var s Schema

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	if err := dec.Decode(&s); err != nil {
		if errors.Is(err, io.EOF) {
			return Schema{}, errors.New("empty schema")
		}
		return Schema{}, fmt.Errorf("decoding schema: %w", err)
	}

	if err := s.Validate(); err != nil {
		return Schema{}, err
	}

	return s, nil
}
