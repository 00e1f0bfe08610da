// Copyright (c) 2026 Setrini Inmobiliaria. All rights reserved.

package locality

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
)

// maxDatasetBytes bounds a remote dataset body. The national file is a few MB.
const maxDatasetBytes = 64 << 20

// # Wire Format

// Dataset is the raw document: { "localidades": [...] }.
type Dataset struct {
	Localidades []RawRecord `json:"localidades"`
}

// RawRecord is one dataset row. Wire names follow the source dataset.
type RawRecord struct {
	ID           RecordID     `json:"id"`
	Nombre       string       `json:"nombre"`
	Provincia    *RawDivision `json:"provincia,omitempty"`
	Departamento *RawDivision `json:"departamento,omitempty"`
}

// RawDivision is a province or department as it appears on the wire.
type RawDivision struct {
	ID     RecordID `json:"id"`
	Nombre string   `json:"nombre"`
}

// RecordID accepts both "06028010000" and 6028010000. Any other JSON value
// decodes to an empty ID, which excludes the record from the index.
type RecordID string

// UnmarshalJSON implements [json.Unmarshaler].
func (id *RecordID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)

	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var text string
		if err := json.Unmarshal(data, &text); err != nil {
			return err
		}
		*id = RecordID(text)
		return nil
	}

	var number json.Number
	if err := json.Unmarshal(data, &number); err != nil {
		*id = ""
		return nil
	}
	*id = RecordID(number.String())
	return nil
}

func (record RawRecord) provinceName() string {
	if record.Provincia == nil {
		return ""
	}
	return record.Provincia.Nombre
}

func (record RawRecord) toLocality(id string) Locality {
	return Locality{
		ID:         id,
		Name:       record.Nombre,
		Province:   record.Provincia.toDivision(),
		Department: record.Departamento.toDivision(),
	}
}

func (division *RawDivision) toDivision() *Division {
	if division == nil {
		return nil
	}
	return &Division{ID: string(division.ID), Name: division.Nombre}
}

// # Dataset Collaborators

// Source fetches the raw locality dataset.
type Source interface {
	Fetch(context context.Context) (*Dataset, error)
}

// NewSource picks an [HTTPSource] for http(s) locations and a [FileSource] otherwise.
func NewSource(location string) Source {
	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		return &HTTPSource{URL: location}
	}
	return &FileSource{Path: location}
}

// FileSource reads the dataset from the local filesystem.
type FileSource struct {
	Path string
}

// Fetch reads and decodes the file at Path.
func (source *FileSource) Fetch(context context.Context) (*Dataset, error) {
	if err := context.Err(); err != nil {
		return nil, err
	}

	file, err := os.Open(source.Path)
	if err != nil {
		return nil, fmt.Errorf("locality_file_open_failed: %w", err)
	}
	defer file.Close()

	return decodeDataset(file)
}

// HTTPSource downloads the dataset from a static URL.
type HTTPSource struct {
	URL    string
	Client *http.Client
}

// Fetch performs a GET on URL. Any non-2xx status is an error.
func (source *HTTPSource) Fetch(context context.Context) (*Dataset, error) {
	request, err := http.NewRequestWithContext(context, http.MethodGet, source.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("locality_http_request_invalid: %w", err)
	}
	request.Header.Set("Accept", "application/json")

	client := source.Client
	if client == nil {
		client = http.DefaultClient
	}

	response, err := client.Do(request)
	if err != nil {
		return nil, fmt.Errorf("locality_http_fetch_failed: %w", err)
	}
	defer response.Body.Close()

	if response.StatusCode < 200 || response.StatusCode > 299 {
		return nil, fmt.Errorf("locality_http_fetch_failed: unexpected status %d", response.StatusCode)
	}

	return decodeDataset(io.LimitReader(response.Body, maxDatasetBytes))
}

func decodeDataset(reader io.Reader) (*Dataset, error) {
	var dataset Dataset
	if err := json.NewDecoder(reader).Decode(&dataset); err != nil {
		return nil, fmt.Errorf("locality_dataset_decode_failed: %w", err)
	}
	return &dataset, nil
}
